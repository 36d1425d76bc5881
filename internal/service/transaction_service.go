package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

const (
	msgMissingFields  = "Please fill all required fields"
	msgAmountPositive = "Amount must be greater than 0"
	msgInvalidType    = "Transaction type must be income or expense"
	msgEmptyUpdate    = "Nothing to update"
	msgDateRange      = "startDate must not be after endDate"
	msgTxNotFound     = "Transaction not found"
	msgFieldEmpty     = "Updated fields must not be empty"
	msgMissingOwner   = "Authentication required"
)

// TransactionService handles transaction business logic. Every operation is scoped to the
// owning user.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// CreateTransaction validates and stores a transaction owned by transaction.UserID.
func (s *TransactionService) CreateTransaction(ctx context.Context, transaction Transaction) (*Transaction, error) {
	if transaction.UserID == "" {
		return nil, &Error{Kind: ErrUnauthorized, Message: msgMissingOwner}
	}

	title := strings.TrimSpace(transaction.Title)
	category := strings.TrimSpace(transaction.Category)
	if title == "" || category == "" || transaction.Date.IsZero() || transaction.Type == TransactionTypeUnknown {
		return nil, validationError(msgMissingFields)
	}
	if !transaction.Amount.GreaterThan(decimal.Zero) {
		return nil, validationError(msgAmountPositive)
	}
	if !transaction.Type.valid() {
		return nil, validationError(msgInvalidType)
	}

	row, err := s.storage.Transactions.Insert(ctx, &docstore.TransactionCreate{
		UserID:          transaction.UserID,
		Title:           title,
		Amount:          transaction.Amount,
		TransactionType: transaction.Type.String(),
		Category:        category,
		Description:     strings.TrimSpace(transaction.Description),
		Date:            transaction.Date,
	})
	if err != nil {
		return nil, fromStorage(err, msgTxNotFound)
	}

	created := transactionFromStorage(row)
	return &created, nil
}

// ListTransactions returns the user's transactions in insertion order.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, validationError(msgDateRange)
	}

	storageFilter := &docstore.TransactionFilter{
		UserID:    userID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}
	if filter.Type != nil {
		if !filter.Type.valid() {
			return nil, validationError(msgInvalidType)
		}
		txType := filter.Type.String()
		storageFilter.TransactionType = &txType
	}

	rows, err := s.storage.Transactions.List(ctx, storageFilter)
	if err != nil {
		return nil, fromStorage(err, msgTxNotFound)
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}
	return convertedTransactions, nil
}

// UpdateTransaction applies patch to the transaction if userID owns it. A transaction owned by
// someone else is reported as not found and left unchanged.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id, userID string, patch TransactionPatch) (*Transaction, error) {
	if patch.empty() {
		return nil, validationError(msgEmptyUpdate)
	}

	update := &docstore.TransactionUpdate{
		Amount: patch.Amount,
		Date:   patch.Date,
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, validationError(msgFieldEmpty)
		}
		update.Title = &title
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, validationError(msgFieldEmpty)
		}
		update.Category = &category
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		update.Description = &description
	}
	if patch.Amount != nil && !patch.Amount.GreaterThan(decimal.Zero) {
		return nil, validationError(msgAmountPositive)
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, validationError(msgFieldEmpty)
	}
	if patch.Type != nil {
		if !patch.Type.valid() {
			return nil, validationError(msgInvalidType)
		}
		txType := patch.Type.String()
		update.TransactionType = &txType
	}

	row, err := s.storage.Transactions.UpdateOwned(ctx, id, userID, update)
	if err != nil {
		return nil, fromStorage(err, msgTxNotFound)
	}

	updated := transactionFromStorage(row)
	return &updated, nil
}

// DeleteTransaction removes the transaction if userID owns it.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id, userID string) error {
	if err := s.storage.Transactions.DeleteOwned(ctx, id, userID); err != nil {
		return fromStorage(err, msgTxNotFound)
	}
	return nil
}
