package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

const DefaultDatabase = "expense_tracker"

type Storage struct {
	Client       *mongo.Client
	DB           *mongo.Database
	Users        docstore.IUserTable
	Transactions docstore.ITransactionTable
}

// NewStorage creates the client without waiting for the server; use Ping to check reachability.
func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	opts := options.Client().
		ApplyURI(env.Mongo.URI).
		SetServerSelectionTimeout(env.Mongo.ServerSelectionTimeout).
		SetSocketTimeout(env.Mongo.SocketTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("storage: connect: %w", err)
	}

	db := client.Database(DatabaseFromURI(env.Mongo.URI))

	return &Storage{
		Client:       client,
		DB:           db,
		Users:        docstore.NewUsersTable(db),
		Transactions: docstore.NewTransactionsTable(db),
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.Client == nil {
		return fmt.Errorf("storage: ping: %w", docstore.ErrUnavailable)
	}
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("storage: ping: %w: %w", docstore.ErrUnavailable, err)
	}
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

// DatabaseFromURI returns the database named in the URI path, or DefaultDatabase.
func DatabaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return DefaultDatabase
}
