package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify(t *testing.T) {
	const op = "storage/docstore/Test"

	assert.NoError(t, classify(op, nil))

	err := classify(op, mongo.ErrNoDocuments)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), op)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	err = classify(op, dup)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	var we mongo.WriteException
	assert.True(t, errors.As(err, &we), "driver error stays in the chain")

	err = classify(op, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrUnavailable)

	err = classify(op, mongo.ErrClientDisconnected)
	assert.ErrorIs(t, err, ErrUnavailable)

	err = classify(op, errors.New("boom"))
	assert.False(t, errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrUnavailable))
	assert.Equal(t, op+": boom", err.Error())
}

func TestDecimal128RoundTrip(t *testing.T) {
	for _, s := range []string{"12.5", "0.01", "1999999.99", "100"} {
		d128, err := toDecimal128(decimal.RequireFromString(s))
		require.NoError(t, err)

		back, err := fromDecimal128(d128)
		require.NoError(t, err)
		assert.True(t, back.Equal(decimal.RequireFromString(s)), s)
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, validID("not-an-id"))
	assert.False(t, validID(""))
}
