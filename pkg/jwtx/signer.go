package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when an HS256 signer or verifier is built
// without a key. An unset signing key is a configuration defect.
var ErrMissingSecret = errors.New("jwtx: signing secret is not set")

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a process-wide symmetric secret.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be non-empty.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns claims into a compact signed JWT.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	if err := claims.ValidateShape(); err != nil {
		return "", err
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}
