package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
)

func TestError_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("op: %w", docstore.ErrDuplicateKey)
	err := fmt.Errorf("wrapped: %w", &Error{Kind: ErrConflict, Message: "User already exists", Cause: cause})

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, docstore.ErrDuplicateKey)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "User already exists", Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Empty(t, Message(errors.New("plain")))
}

func TestFromStorage(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{fmt.Errorf("op: %w", docstore.ErrNotFound), ErrNotFound},
		{fmt.Errorf("op: %w", docstore.ErrDuplicateKey), ErrConflict},
		{fmt.Errorf("op: %w", docstore.ErrUnavailable), ErrUnavailable},
		{errors.New("anything else"), ErrInternal},
	}
	for _, tc := range tests {
		t.Run(tc.kind.Error(), func(t *testing.T) {
			err := fromStorage(tc.err, "gone")
			assert.ErrorIs(t, err, tc.kind)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.Equal(t, "gone", Message(fromStorage(fmt.Errorf("op: %w", docstore.ErrNotFound), "gone")))
}
