package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type LoginBody struct {
	Email    string `json:"email" doc:"Login email"`
	Password string `json:"password" doc:"Password"`
}

// LoginInput is the Huma input for logging in.
type LoginInput struct {
	Body LoginBody
}

type LoginOutput struct {
	Body AuthResponse
}

type authenticator interface {
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// LoginHandler handles POST /api/auth/login.
type LoginHandler struct {
	AuthService authenticator
}

func NewLoginHandler(svc authenticator) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Description: "Checks the credentials and returns the user with a bearer token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("loginMs")
	}
	result, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		// unknown email and wrong password must look the same
		return nil, apierror.From(ctx, err, apierror.NotFoundAsUnauthorized())
	}

	if logData != nil {
		logData.AddData("userID", result.User.ID)
	}

	return &LoginOutput{Body: AuthResponse{
		Success: true,
		Message: "Welcome back, " + result.User.Name,
		User:    toAPIUser(result.User),
		Token:   result.Token,
	}}, nil
}
