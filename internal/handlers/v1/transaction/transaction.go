package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/service"
)

const dateOnly = "2006-01-02"

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction id"`
	User            string  `json:"user" doc:"Owner user id"`
	Title           string  `json:"title" doc:"Short title"`
	Amount          float64 `json:"amount" doc:"Positive amount"`
	TransactionType string  `json:"transactionType" enum:"income,expense" doc:"income or expense"`
	Category        string  `json:"category" doc:"Free-form category"`
	Description     string  `json:"description" doc:"Optional description"`
	Date            string  `json:"date" doc:"RFC3339 date of the transaction"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt       string  `json:"updatedAt" doc:"RFC3339 last update time"`
}

func toAPITransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID,
		User:            tx.UserID,
		Title:           tx.Title,
		Amount:          tx.Amount.InexactFloat64(),
		TransactionType: tx.Type.String(),
		Category:        tx.Category,
		Description:     tx.Description,
		Date:            tx.Date.Format(time.RFC3339),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       tx.UpdatedAt.Format(time.RFC3339),
	}
}

// parseDate accepts an RFC3339 timestamp or a calendar date. isDateOnly reports the latter.
func parseDate(field, value string) (parsed time.Time, isDateOnly bool, err error) {
	if parsed, err = time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), false, nil
	}
	if parsed, err = time.Parse(dateOnly, value); err == nil {
		return parsed, true, nil
	}
	return time.Time{}, false, huma.NewError(http.StatusBadRequest, "invalid "+field+", expected RFC3339 or YYYY-MM-DD", err)
}

func parseTransactionType(value string) (service.TransactionType, error) {
	txType, ok := service.ParseTransactionType(value)
	if !ok {
		return service.TransactionTypeUnknown, huma.NewError(http.StatusBadRequest, "Transaction type must be income or expense")
	}
	return txType, nil
}
