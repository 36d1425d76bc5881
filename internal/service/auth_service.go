package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

const (
	minPasswordLength = 6
	// bcrypt rejects longer input.
	maxPasswordBytes  = 72

	msgEmptyFields    = "Please enter all fields"
	msgInvalidEmail   = "Please enter a valid email address"
	msgShortPassword  = "Password should be at least 6 characters"
	msgLongPassword   = "Password should be at most 72 bytes"
	msgUserExists     = "User already exists"
	msgBadCredentials = "Incorrect email or password"
	msgNoImage        = "No image data provided"
	msgUserNotFound   = "User not found"
	msgInternal       = "Something went wrong!"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type tokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService handles registration, login and the user profile operations.
type AuthService struct {
	storage  *storage.Storage
	tokens   tokenIssuer
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(store *storage.Storage, tokens tokenIssuer) *AuthService {
	return &AuthService{storage: store, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// Register validates the input, stores the user with a bcrypt hash and signs a token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, validationError(msgEmptyFields)
	}
	if !emailPattern.MatchString(email) {
		return nil, validationError(msgInvalidEmail)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, validationError(msgShortPassword)
	}
	if len(password) > maxPasswordBytes {
		return nil, validationError(msgLongPassword)
	}

	_, err := s.storage.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, &Error{Kind: ErrConflict, Message: msgUserExists}
	case !errors.Is(err, docstore.ErrNotFound):
		return nil, fromStorage(err, msgUserNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, &Error{Kind: ErrInternal, Message: msgInternal, Cause: err}
	}

	row, err := s.storage.Users.Insert(ctx, &docstore.UserCreate{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, docstore.ErrDuplicateKey) {
			return nil, &Error{Kind: ErrConflict, Message: msgUserExists, Cause: err}
		}
		return nil, fromStorage(err, msgUserNotFound)
	}

	return s.issue(row)
}

// Login checks the credentials. An unknown email and a wrong password fail with the same
// message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError(msgEmptyFields)
	}

	row, err := s.storage.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			// Unknown emails pay the same bcrypt cost as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		}
		return nil, fromStorage(err, msgBadCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(password)); err != nil {
		return nil, &Error{Kind: ErrUnauthorized, Message: msgBadCredentials}
	}

	return s.issue(row)
}

// SetAvatar stores imageData as the avatar of userID. Callers may only change their own avatar.
func (s *AuthService) SetAvatar(ctx context.Context, callerID, userID, imageData string) (*Avatar, error) {
	if strings.TrimSpace(imageData) == "" {
		return nil, validationError(msgNoImage)
	}
	if userID == "" || userID != callerID {
		return nil, &Error{Kind: ErrNotFound, Message: msgUserNotFound}
	}

	row, err := s.storage.Users.SetAvatar(ctx, userID, imageData)
	if err != nil {
		return nil, fromStorage(err, msgUserNotFound)
	}

	return &Avatar{IsSet: row.IsAvatarImageSet, Image: row.AvatarImage}, nil
}

// ListOtherUsers returns every user except excludeID, oldest first.
func (s *AuthService) ListOtherUsers(ctx context.Context, excludeID string) ([]User, error) {
	rows, err := s.storage.Users.ListExcept(ctx, excludeID)
	if err != nil {
		return nil, fromStorage(err, msgUserNotFound)
	}

	users := make([]User, len(rows))
	for i, row := range rows {
		users[i] = userFromStorage(row)
	}
	return users, nil
}

func (s *AuthService) issue(row *docstore.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(row.ID)
	if err != nil {
		return nil, &Error{Kind: ErrInternal, Message: msgInternal, Cause: err}
	}
	return &AuthResult{User: userFromStorage(row), Token: token}, nil
}

func (s *AuthService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.hashCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
