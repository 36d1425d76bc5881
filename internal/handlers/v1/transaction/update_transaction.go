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

// UpdateTransactionBody holds the fields to change. Omitted fields keep their value.
type UpdateTransactionBody struct {
	Title           *string  `json:"title,omitempty" doc:"Short title"`
	Amount          *float64 `json:"amount,omitempty" exclusiveMinimum:"0" doc:"Positive amount"`
	TransactionType *string  `json:"transactionType,omitempty" enum:"income,expense" doc:"income or expense"`
	Category        *string  `json:"category,omitempty" doc:"Free-form category"`
	Description     *string  `json:"description,omitempty" doc:"Description"`
	Date            *string  `json:"date,omitempty" doc:"RFC3339 timestamp or YYYY-MM-DD"`
}

type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction id"`
	Body UpdateTransactionBody
}

type UpdateTransactionResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}

type UpdateTransactionOutput struct {
	Body UpdateTransactionResponse
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id, userID string, patch service.TransactionPatch) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /api/v1/updateTransaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/api/v1/updateTransaction/{id}",
		Summary:     "Update transaction",
		Description: "Changes the given fields of one of the authenticated user's transactions.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionPatch, error) {
	body := input.Body
	patch := service.TransactionPatch{
		Title:       body.Title,
		Category:    body.Category,
		Description: body.Description,
	}

	if body.Amount != nil {
		amount := decimal.NewFromFloat(*body.Amount)
		patch.Amount = &amount
	}
	if body.TransactionType != nil {
		txType, err := parseTransactionType(*body.TransactionType)
		if err != nil {
			return patch, err
		}
		patch.Type = &txType
	}
	if body.Date != nil {
		date, _, err := parseDate("date", *body.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}

	return patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	patch, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		logData.AddData("transactionID", input.ID)
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	updated, err := h.TransactionService.UpdateTransaction(ctx, input.ID, userID, patch)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(ctx, err)
	}

	return &UpdateTransactionOutput{Body: UpdateTransactionResponse{
		Success:     true,
		Message:     "Transaction updated successfully",
		Transaction: toAPITransaction(*updated),
	}}, nil
}
