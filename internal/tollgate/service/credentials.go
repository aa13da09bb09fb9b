package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// Credentials decides whether a client id and secret pair is valid.
type Credentials interface {
	Verify(ctx context.Context, clientID, clientSecret string) bool
}

// CredentialVerifier checks credentials against the client registry.
type CredentialVerifier struct {
	Clients store.Clients
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// burnHash spends one argon2 comparison on secret. Unknown ids must cost the
// same as wrong secrets.
func burnHash(secret string) {
	dummyOnce.Do(func() {
		dummyHash, _ = cryptox.HashSecret("tollgate-unknown-client")
	})
	if dummyHash != "" {
		_ = cryptox.VerifySecret(secret, dummyHash)
	}
}

// Verify reports whether the secret matches the registered client. Any
// lookup failure is logged and reported as a mismatch.
func (v *CredentialVerifier) Verify(ctx context.Context, clientID, clientSecret string) bool {
	if clientID == "" || clientSecret == "" {
		return false
	}
	l := slogx.FromContext(ctx)

	client, err := v.Clients.GetClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.Error("client lookup failed", slog.String("client_id", clientID), slog.Any("error", err))
		}
		burnHash(clientSecret)
		return false
	}

	if err := cryptox.VerifySecret(clientSecret, client.SecretHash); err != nil {
		if !errors.Is(err, cryptox.ErrSecretMismatch) {
			l.Error("stored secret hash unusable", slog.String("client_id", clientID), slog.Any("error", err))
		}
		return false
	}
	return true
}
