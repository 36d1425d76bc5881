package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// RegisterBody is the request body for creating a user.
type RegisterBody struct {
	Name     string `json:"name" doc:"Display name"`
	Email    string `json:"email" doc:"Login email"`
	Password string `json:"password" doc:"At least 6 characters"`
}

// RegisterInput is the Huma input for registering.
type RegisterInput struct {
	Body RegisterBody
}

type RegisterOutput struct {
	Body AuthResponse
}

type registerer interface {
	Register(ctx context.Context, name, email, password string) (*service.AuthResult, error)
}

// RegisterHandler handles POST /api/auth/register.
type RegisterHandler struct {
	AuthService registerer
}

func NewRegisterHandler(svc registerer) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

// Register registers the register endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/auth/register",
		Summary:     "Register",
		Description: "Creates a user and returns it together with a bearer token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("registerMs")
	}
	result, err := h.AuthService.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.From(ctx, err)
	}

	if logData != nil {
		logData.AddData("userID", result.User.ID)
	}

	return &RegisterOutput{Body: AuthResponse{
		Success: true,
		Message: "User created successfully",
		User:    toAPIUser(result.User),
		Token:   result.Token,
	}}, nil
}
