package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// TokenService is the token lifecycle engine: it issues tokens for valid
// credentials, authenticates presented tokens and revokes them.
type TokenService struct {
	Credentials Credentials
	Signer      jwtx.Signer
	Verifier    jwtx.Verifier
	Tokens      store.Tokens

	Issuer string

	// TTL is the validity window for both the token and its record. It is
	// rounded down to whole seconds; zero means jwtx.DefaultAccessTokenTTL.
	TTL time.Duration

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) ttl() time.Duration {
	ttl := s.TTL.Truncate(time.Second)
	if ttl <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return ttl
}

// Issue exchanges client credentials for a fresh bearer token. The token is
// only returned once its record has been stored.
func (s *TokenService) Issue(ctx context.Context, clientID, clientSecret string) (*domain.IssuedToken, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}
	l := slogx.FromContext(ctx).With(slog.String("client_id", clientID))

	if !s.Credentials.Verify(ctx, clientID, clientSecret) {
		l.Info("token request rejected: invalid credentials")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	ttl := s.ttl()
	claims := jwtx.NewAccessClaims(clientID, ttl, s.Issuer, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign token", slog.Any("error", err))
		return nil, newError(KindServerError, err)
	}

	rec := domain.TokenRecord{
		ClientID:  clientID,
		IssuedAt:  now.UTC(),
		ExpiresAt: now.UTC().Add(ttl),
	}
	if err := s.Tokens.Put(ctx, token, rec, ttl); err != nil {
		l.Error("failed to store token record", slog.Any("error", err))
		return nil, newError(KindServerError, err)
	}

	l.Info("token issued",
		slog.String("jti", claims.ID),
		slog.Duration("ttl", ttl),
	)
	return &domain.IssuedToken{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
		ExpiresIn:   int64(ttl / time.Second),
	}, nil
}

// Authenticate resolves a presented token into the identity it was issued
// to. The stored record is consulted before the signature: a token without
// a record is dead no matter what it claims.
func (s *TokenService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	l := slogx.FromContext(ctx).With(slog.String("token_fp", cryptox.FingerprintToken(token)))

	rec, err := s.Tokens.Get(ctx, token)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrTokenNotFoundOrExpired
	case err != nil:
		l.Error("token store lookup failed", slog.Any("error", err))
		return nil, newError(KindServerError, err)
	}

	claims, err := s.Verifier.Verify(token)
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		if derr := s.Tokens.Delete(ctx, token); derr != nil {
			l.Warn("failed to remove expired token record", slog.Any("error", derr))
		}
		return nil, newError(KindTokenExpired, err)
	case err != nil:
		l.Warn("token failed verification", slog.Any("error", err))
		return nil, newError(KindTokenInvalid, err)
	}

	if claims.Subject != rec.ClientID {
		l.Warn("token subject does not match record owner",
			slog.String("subject", claims.Subject),
			slog.String("owner", rec.ClientID),
		)
		return nil, &AuthError{Kind: KindTokenInvalid, Err: errors.New("subject mismatch")}
	}

	return &domain.Identity{
		ClientID: claims.Subject,
		Claims:   claims,
		Record:   rec,
	}, nil
}

// Revoke removes the token's record. Revoking an unknown or already revoked
// token succeeds; only a store failure is reported.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Tokens.Delete(ctx, token); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke token",
			slog.String("token_fp", cryptox.FingerprintToken(token)),
			slog.Any("error", err),
		)
		return newError(KindServerError, err)
	}
	return nil
}
