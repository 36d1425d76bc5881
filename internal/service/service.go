package service

import (
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Auth        *AuthService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage and token issuer.
func NewService(store *storage.Storage, tokens tokenIssuer) *Service {
	return &Service{
		Auth:        NewAuthService(store, tokens),
		Transaction: NewTransactionService(store),
	}
}
