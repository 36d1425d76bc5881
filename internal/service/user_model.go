package service

import (
	"time"

	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

// User is a user as exposed by the service layer. It never carries the password hash.
type User struct {
	ID               string
	Name             string
	Email            string
	AvatarImage      string
	IsAvatarImageSet bool
	CreatedAt        time.Time
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  User
	Token string
}

type Avatar struct {
	IsSet bool
	Image string
}

func userFromStorage(row *docstore.User) User {
	return User{
		ID:               row.ID,
		Name:             row.Name,
		Email:            row.Email,
		AvatarImage:      row.AvatarImage,
		IsAvatarImageSet: row.IsAvatarImageSet,
		CreatedAt:        row.CreatedAt,
	}
}
