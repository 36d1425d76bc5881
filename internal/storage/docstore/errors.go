package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound     = errors.New("docstore: document not found")
	ErrDuplicateKey = errors.New("docstore: duplicate key")
	// ErrUnavailable covers network failures, timeouts and server selection errors.
	ErrUnavailable = errors.New("docstore: store unavailable")
)

// classify wraps a driver error with op and, where one applies, the matching sentinel. The
// driver error stays in the chain.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicateKey, err)
	case mongo.IsTimeout(err),
		mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
