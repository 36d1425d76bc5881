package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const parseLeeway = 5 * time.Second

// Issuer signs and verifies the HS256 bearer tokens handed out on register and login.
// It holds no mutable state and is shared by every request.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token whose subject is userID.
func (i *Issuer) Issue(userID string) (string, error) {
	const op = "auth.Issuer.Issue"

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns the user id it was issued for.
func (i *Issuer) Parse(tokenString string) (string, error) {
	const op = "auth.Issuer.Parse"

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(parseLeeway),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claims.Subject, nil
}
