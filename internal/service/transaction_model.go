package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

// TransactionType represents a transaction type in the service layer.
type TransactionType int8

const (
	TransactionTypeUnknown TransactionType = iota
	TransactionTypeIncome
	TransactionTypeExpense
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeIncome:
		return "income"
	case TransactionTypeExpense:
		return "expense"
	default:
		return "unknown"
	}
}

func (t TransactionType) valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType accepts the wire names "income" and "expense".
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "income":
		return TransactionTypeIncome, true
	case "expense":
		return TransactionTypeExpense, true
	default:
		return TransactionTypeUnknown, false
	}
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          string
	UserID      string
	Title       string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionFilter narrows a listing. Nil fields do not filter.
type TransactionFilter struct {
	Type      *TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionPatch holds the fields of an update. Nil fields keep their stored value.
type TransactionPatch struct {
	Title       *string
	Amount      *decimal.Decimal
	Type        *TransactionType
	Category    *string
	Description *string
	Date        *time.Time
}

func (p *TransactionPatch) empty() bool {
	return p.Title == nil && p.Amount == nil && p.Type == nil &&
		p.Category == nil && p.Description == nil && p.Date == nil
}

func transactionFromStorage(row *docstore.Transaction) Transaction {
	txType, _ := ParseTransactionType(row.TransactionType)
	return Transaction{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Amount:      row.Amount,
		Type:        txType,
		Category:    row.Category,
		Description: row.Description,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
