package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type AllUsersInput struct {
	ID string `path:"id" doc:"User id to leave out"`
}

// AllUsersOutput is the Huma output. The body is a bare array.
type AllUsersOutput struct {
	Body []Contact
}

type userLister interface {
	ListOtherUsers(ctx context.Context, excludeID string) ([]service.User, error)
}

// AllUsersHandler handles GET /api/auth/allUsers/{id}.
type AllUsersHandler struct {
	AuthService userLister
}

func NewAllUsersHandler(svc userLister) *AllUsersHandler {
	return &AllUsersHandler{AuthService: svc}
}

func (h *AllUsersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "all-users",
		Method:      http.MethodGet,
		Path:        "/api/auth/allUsers/{id}",
		Summary:     "List other users",
		Description: "Returns every user except the given one, oldest first.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *AllUsersHandler) handle(ctx context.Context, input *AllUsersInput) (*AllUsersOutput, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}

	users, err := h.AuthService.ListOtherUsers(ctx, input.ID)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("userCount", len(users))
	}

	body := make([]Contact, len(users))
	for i, u := range users {
		body[i] = Contact{ID: u.ID, Name: u.Name, Email: u.Email, AvatarImage: u.AvatarImage}
	}
	return &AllUsersOutput{Body: body}, nil
}
