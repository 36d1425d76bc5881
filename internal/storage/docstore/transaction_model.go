package docstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const transactionsCollection = "transactions"

// Transaction is a transaction record owned by exactly one user.
type Transaction struct {
	ID              string
	UserID          string
	Title           string
	Amount          decimal.Decimal
	TransactionType string
	Category        string
	Description     string
	Date            time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          string
	Title           string
	Amount          decimal.Decimal
	TransactionType string
	Category        string
	Description     string
	Date            time.Time
}

// TransactionFilter specifies filters for listing one user's transactions. Date bounds are
// inclusive.
type TransactionFilter struct {
	UserID          string
	TransactionType *string
	StartDate       *time.Time
	EndDate         *time.Time
}

// TransactionUpdate holds the fields to change. Nil fields are left as stored.
type TransactionUpdate struct {
	Title           *string
	Amount          *decimal.Decimal
	TransactionType *string
	Category        *string
	Description     *string
	Date            *time.Time
}

// ITransactionTable defines the transaction storage operations. Update and delete are scoped to
// the owner: a document owned by someone else behaves as if it did not exist.
//
//go:generate mockery --name ITransactionTable --inpackage --with-expecter --filename mock_ITransactionTable.go
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	UpdateOwned(ctx context.Context, id string, userID string, update *TransactionUpdate) (*Transaction, error)
	DeleteOwned(ctx context.Context, id string, userID string) error
}
