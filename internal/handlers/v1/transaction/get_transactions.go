package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// GetTransactionsInput is the Huma input for listing the caller's transactions.
type GetTransactionsInput struct {
	TransactionType string `query:"transactionType" doc:"Only income or only expense"`
	StartDate       string `query:"startDate" doc:"Inclusive lower bound, RFC3339 or YYYY-MM-DD"`
	EndDate         string `query:"endDate" doc:"Inclusive upper bound, RFC3339 or YYYY-MM-DD"`
}

// GetTransactionsOutput is the Huma output. The body is a bare array.
type GetTransactionsOutput struct {
	Body []Transaction
}

type transactionLister interface {
	ListTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]service.Transaction, error)
}

// GetTransactionsHandler handles GET /api/v1/getTransaction.
type GetTransactionsHandler struct {
	TransactionService transactionLister
}

func NewGetTransactionsHandler(svc transactionLister) *GetTransactionsHandler {
	return &GetTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *GetTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transactions",
		Method:      http.MethodGet,
		Path:        "/api/v1/getTransaction",
		Summary:     "List transactions",
		Description: "Returns the authenticated user's transactions in insertion order.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseGetTransactionsInput builds the filter. A calendar endDate covers that whole day.
func parseGetTransactionsInput(input *GetTransactionsInput) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	if input.TransactionType != "" {
		txType, err := parseTransactionType(input.TransactionType)
		if err != nil {
			return filter, err
		}
		filter.Type = &txType
	}
	if input.StartDate != "" {
		start, _, err := parseDate("startDate", input.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if input.EndDate != "" {
		end, isDateOnly, err := parseDate("endDate", input.EndDate)
		if err != nil {
			return filter, err
		}
		if isDateOnly {
			end = end.Add(24*time.Hour - time.Millisecond)
		}
		filter.EndDate = &end
	}

	return filter, nil
}

func (h *GetTransactionsHandler) handle(ctx context.Context, input *GetTransactionsInput) (*GetTransactionsOutput, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := parseGetTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, err := h.TransactionService.ListTransactions(ctx, userID, filter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(ctx, err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	body := make([]Transaction, len(transactions))
	for i, tx := range transactions {
		body[i] = toAPITransaction(tx)
	}
	return &GetTransactionsOutput{Body: body}, nil
}
