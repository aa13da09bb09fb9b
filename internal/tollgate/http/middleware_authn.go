package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// Authenticator resolves a bearer token into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

type ctxKey int

const (
	identityKey ctxKey = iota
	tokenKey
)

var (
	errHeaderMissing = &service.AuthError{
		Kind:    service.KindMissingToken,
		Title:   "Authorization header missing",
		Message: "Please provide Authorization header with Bearer token",
	}
	errTokenMissing = &service.AuthError{
		Kind:    service.KindMissingToken,
		Title:   "Token missing",
		Message: "Please provide a valid JWT token",
	}
)

// IdentityFromContext returns the identity attached by AuthnMiddleware.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// TokenFromContext returns the raw bearer token attached by AuthnMiddleware.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

// AuthnMiddleware rejects requests without a live bearer token and attaches
// the identity and token to the request context for those that have one.
func AuthnMiddleware(auth Authenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, present := httpx.ExtractBearer(r.Header.Get("Authorization"))
			if !present {
				errHeaderMissing.WriteError(w)
				return
			}
			if token == "" {
				errTokenMissing.WriteError(w)
				return
			}

			identity, err := auth.Authenticate(ctx, token)
			if err != nil {
				ae := service.AsAuthError(err)
				slogx.FromContext(ctx).Info("request rejected",
					"kind", ae.Kind.String(),
					"path", r.URL.Path,
				)
				ae.WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, identityKey, identity)
			ctx = context.WithValue(ctx, tokenKey, token)
			ctx = httpx.WithUserID(ctx, identity.ClientID)
			ctx = slogx.WithAttrs(ctx, "client_id", identity.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
