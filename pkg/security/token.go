package security

import (
	"errors"
	"fmt"
	"time"

	"bitwise74/reelhub-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an auth token stays valid
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for every token that can't be trusted:
// bad signature, wrong algorithm, malformed, missing claims or expired.
// The underlying reason stays wrapped for logging only.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the identity that expires after the configured TTL
func (t *Tokens) Issue(id model.Identity) (string, error) {
	if id.ID == "" {
		return "", errors.New("no user ID provided")
	}

	now := t.now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:       id.ID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})

	s, err := tok.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token, %w", err)
	}

	return s, nil
}

// Verify checks the signature and expiry of s and returns the identity it
// carries. Every failure wraps ErrInvalidToken.
func (t *Tokens) Verify(s string) (model.Identity, error) {
	var c claims

	tok, err := jwt.ParseWithClaims(s, &c, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w, %w", ErrInvalidToken, err)
	}

	if !tok.Valid || c.ID == "" {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{ID: c.ID, Username: c.Username}, nil
}
