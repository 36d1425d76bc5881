package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction id"`
}

type DeleteTransactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DeleteTransactionOutput struct {
	Body DeleteTransactionResponse
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id, userID string) error
}

// DeleteTransactionHandler handles DELETE /api/v1/deleteTransaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/v1/deleteTransaction/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", input.ID)
	}
	if err := h.TransactionService.DeleteTransaction(ctx, input.ID, userID); err != nil {
		return nil, apierror.From(ctx, err)
	}

	return &DeleteTransactionOutput{Body: DeleteTransactionResponse{
		Success: true,
		Message: "Transaction deleted successfully",
	}}, nil
}
