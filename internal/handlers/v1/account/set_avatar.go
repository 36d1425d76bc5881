package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/auth"
	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type SetAvatarInput struct {
	ID   string `path:"id" doc:"User id, must be the caller"`
	Body struct {
		Image string `json:"image" doc:"Avatar image payload"`
	}
}

type SetAvatarResponse struct {
	IsSet bool   `json:"isSet"`
	Image string `json:"image"`
}

type SetAvatarOutput struct {
	Body SetAvatarResponse
}

type avatarSetter interface {
	SetAvatar(ctx context.Context, callerID, userID, imageData string) (*service.Avatar, error)
}

// SetAvatarHandler handles PUT /api/auth/setAvatar/{id}.
type SetAvatarHandler struct {
	AuthService avatarSetter
}

func NewSetAvatarHandler(svc avatarSetter) *SetAvatarHandler {
	return &SetAvatarHandler{AuthService: svc}
}

func (h *SetAvatarHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-avatar",
		Method:      http.MethodPut,
		Path:        "/api/auth/setAvatar/{id}",
		Summary:     "Set avatar",
		Description: "Stores the caller's avatar image.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *SetAvatarHandler) handle(ctx context.Context, input *SetAvatarInput) (*SetAvatarOutput, error) {
	callerID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	avatar, err := h.AuthService.SetAvatar(ctx, callerID, input.ID, input.Body.Image)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}

	return &SetAvatarOutput{Body: SetAvatarResponse{IsSet: avatar.IsSet, Image: avatar.Image}}, nil
}
