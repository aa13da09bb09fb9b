package jwtx

import (
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the validity window of an access token. The token
// store record for a token shares the same window.
const DefaultAccessTokenTTL = time.Hour

// TokenTypeAccess is the type discriminator carried by access tokens.
const TokenTypeAccess = "access_token"

// Claims are the assertions embedded in an access token.
type Claims struct {
	jwt.RegisteredClaims

	// ClientID duplicates the subject; older consumers read it directly.
	ClientID string `json:"client_id"`

	// Type distinguishes access tokens from any future token kinds.
	Type string `json:"type"`
}

// NewAccessClaims builds claims for subject valid for ttl from now. Both
// timestamps are whole seconds so that exp - iat is exactly ttl.
func NewAccessClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	iat := now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(ttl.Truncate(time.Second))),
			ID:        idx.New().String(),
		},
		ClientID: subject,
		Type:     TokenTypeAccess,
	}
}

// ValidateShape checks the invariants every token we sign must hold: a
// subject, the access type discriminator and exp strictly after iat.
func (c *Claims) ValidateShape() error {
	if c.Subject == "" || c.Type != TokenTypeAccess {
		return ErrInvalidClaim
	}
	if c.IssuedAt == nil || c.ExpiresAt == nil || !c.ExpiresAt.After(c.IssuedAt.Time) {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryWithLeeway reports ErrExpired once now is past exp + leeway.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	return nil
}

// TTL is the validity window encoded in the claims.
func (c *Claims) TTL() time.Duration {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}
