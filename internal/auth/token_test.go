package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(at time.Time) *Issuer {
	issuer := NewIssuer("test-secret", "expense-tracker", time.Hour)
	issuer.now = func() time.Time { return at }
	return issuer
}

func TestIssueAndParse(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	userID, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParse_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := newTestIssuer(issuedAt).Issue("user-1")
	require.NoError(t, err)

	later := newTestIssuer(issuedAt.Add(2 * time.Hour))
	_, err = later.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := newTestIssuer(time.Now()).Issue("user-1")
	require.NoError(t, err)

	other := NewIssuer("other-secret", "expense-tracker", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongIssuer(t *testing.T) {
	token, err := NewIssuer("test-secret", "someone-else", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = newTestIssuer(time.Now()).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "expense-tracker",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestIssuer(time.Now()).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := newTestIssuer(time.Now()).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
