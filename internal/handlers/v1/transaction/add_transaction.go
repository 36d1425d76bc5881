package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// AddTransactionBody is the request body for adding a transaction.
type AddTransactionBody struct {
	Title           string  `json:"title" doc:"Short title"`
	Amount          float64 `json:"amount" exclusiveMinimum:"0" doc:"Positive amount"`
	TransactionType string  `json:"transactionType" enum:"income,expense" doc:"income or expense"`
	Category        string  `json:"category" doc:"Free-form category"`
	Description     string  `json:"description,omitempty" doc:"Optional description"`
	Date            string  `json:"date" doc:"RFC3339 timestamp or YYYY-MM-DD"`
}

// AddTransactionInput is the Huma input for adding a transaction.
type AddTransactionInput struct {
	Body AddTransactionBody
}

type AddTransactionResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}

// AddTransactionOutput is the Huma output for adding a transaction.
type AddTransactionOutput struct {
	Body AddTransactionResponse
}

type transactionAdder interface {
	CreateTransaction(ctx context.Context, transaction service.Transaction) (*service.Transaction, error)
}

// AddTransactionHandler handles POST /api/v1/addTransaction.
type AddTransactionHandler struct {
	TransactionService transactionAdder
}

func NewAddTransactionHandler(svc transactionAdder) *AddTransactionHandler {
	return &AddTransactionHandler{TransactionService: svc}
}

// Register registers the add transaction endpoint with the Huma API.
func (h *AddTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-transaction",
		Method:        http.MethodPost,
		Path:          "/api/v1/addTransaction",
		DefaultStatus: http.StatusCreated,
		Summary:       "Add transaction",
		Description:   "Creates a transaction owned by the authenticated user.",
		Tags:          []string{"Transactions"},
	}, h.handle)
}

func parseAddTransactionInput(input *AddTransactionInput) (service.Transaction, error) {
	txType, err := parseTransactionType(input.Body.TransactionType)
	if err != nil {
		return service.Transaction{}, err
	}
	date, _, err := parseDate("date", input.Body.Date)
	if err != nil {
		return service.Transaction{}, err
	}

	return service.Transaction{
		Title:       input.Body.Title,
		Amount:      decimal.NewFromFloat(input.Body.Amount),
		Type:        txType,
		Category:    input.Body.Category,
		Description: input.Body.Description,
		Date:        date,
	}, nil
}

func (h *AddTransactionHandler) handle(ctx context.Context, input *AddTransactionInput) (*AddTransactionOutput, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	transaction, err := parseAddTransactionInput(input)
	if err != nil {
		return nil, err
	}
	transaction.UserID = userID

	var stopTimer func()
	if logData := logging.GetLogData(ctx); logData != nil {
		stopTimer = logData.AddTiming("addTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, transaction)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(ctx, err)
	}

	return &AddTransactionOutput{Body: AddTransactionResponse{
		Success:     true,
		Message:     "Transaction added successfully",
		Transaction: toAPITransaction(*created),
	}}, nil
}
