package account

import (
	"github.com/carson-networks/expense-tracker/internal/service"
)

// User is the API response model for a user account. It has no password field.
type User struct {
	ID               string `json:"id" doc:"User id"`
	Name             string `json:"name" doc:"Display name"`
	Email            string `json:"email" doc:"Login email"`
	IsAvatarImageSet bool   `json:"isAvatarImageSet" doc:"Whether an avatar was chosen"`
	AvatarImage      string `json:"avatarImage" doc:"Avatar image payload"`
}

// Contact is the reduced user shape returned by allUsers.
type Contact struct {
	ID          string `json:"id" doc:"User id"`
	Name        string `json:"name" doc:"Display name"`
	Email       string `json:"email" doc:"Login email"`
	AvatarImage string `json:"avatarImage" doc:"Avatar image payload"`
}

// AuthResponse is the body of a successful register or login.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token" doc:"Bearer token for the Authorization header"`
}

func toAPIUser(u service.User) User {
	return User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		IsAvatarImageSet: u.IsAvatarImageSet,
		AvatarImage:      u.AvatarImage,
	}
}
