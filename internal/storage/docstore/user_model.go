package docstore

import (
	"context"
	"time"
)

const usersCollection = "users"

// User is a document of the users collection. Password holds the bcrypt hash and is empty on
// reads that project it away.
type User struct {
	ID               string    `bson:"_id"`
	Name             string    `bson:"name"`
	Email            string    `bson:"email"`
	Password         string    `bson:"password,omitempty"`
	AvatarImage      string    `bson:"avatarImage"`
	IsAvatarImageSet bool      `bson:"isAvatarImageSet"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

// UserCreate is the input for inserting a new user.
type UserCreate struct {
	Name         string
	Email        string
	PasswordHash string
}

// IUserTable defines the user storage operations.
//
//go:generate mockery --name IUserTable --inpackage --with-expecter --filename mock_IUserTable.go
type IUserTable interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	SetAvatar(ctx context.Context, id string, image string) (*User, error)
	ListExcept(ctx context.Context, excludeID string) ([]*User, error)
}
