package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp.
	Leeway time.Duration

	// Now overrides the clock used for exp checks. Nil means time.Now.
	Now func() time.Time
}

// Verification failures. ErrExpired is only ever returned for tokens whose
// signature verified; everything that cannot be trusted is one of the others.
var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates tokens produced by an HS256Signer with the same secret.
type HS256Verifier struct {
	key  []byte
	opts VerifyOptions
}

// NewVerifierHS256 creates a verifier for the given secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256Verifier{key: key, opts: opts}, nil
}

// Verify checks signature, expiry and shape and returns the claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Now != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(v.opts.Now))
	}
	parser := jwt.NewParser(parserOpts...)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if err := claims.ValidateShape(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// classify maps golang-jwt's error tree onto our sentinels. The library only
// validates claims after the signature passed, so an expired result is
// always for an authentic token.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrInvalidClaim
	}
}
