package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

type StatusResponse struct {
	Success bool `json:"success"`
}

type StatusOutput struct {
	Body StatusResponse
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the liveness and readiness probes.
type Handler struct {
	Store pinger
}

func NewHandler(store pinger) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness probe",
		Description: "Always succeeds while the process is serving.",
		Tags:        []string{"Status"},
	}, h.health)

	huma.Register(api, huma.Operation{
		OperationID: "ready",
		Method:      http.MethodGet,
		Path:        "/ready",
		Summary:     "Readiness probe",
		Description: "Succeeds when the document store answers a ping.",
		Tags:        []string{"Status"},
	}, h.ready)
}

func (h *Handler) health(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: StatusResponse{Success: true}}, nil
}

func (h *Handler) ready(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	if err := h.Store.Ping(ctx); err != nil {
		if logData := logging.GetLogData(ctx); logData != nil {
			logData.AddData("pingError", err.Error())
		}
		return nil, huma.NewError(http.StatusServiceUnavailable, "Service temporarily unavailable", err)
	}
	return &StatusOutput{Body: StatusResponse{Success: true}}, nil
}
