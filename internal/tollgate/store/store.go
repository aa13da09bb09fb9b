package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
)

var (
	// ErrNotFound means the row or record does not exist. For tokens this
	// covers both "never issued" and "already expired or revoked".
	ErrNotFound = errors.New("store: not found")

	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable wraps any failure to reach the backing store, including
	// per-operation timeouts.
	ErrUnavailable = errors.New("store: unavailable")
)

// Clients is the registry of client credentials.
type Clients interface {
	// GetClientByID returns ErrNotFound for an unknown id.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// CreateClient returns ErrAlreadyExists when the id is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// ListClients returns every client ordered by creation time.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// DeleteClient returns ErrNotFound for an unknown id.
	DeleteClient(ctx context.Context, id string) error

	IsEmpty(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Tokens holds one record per live token, keyed by the raw token string.
type Tokens interface {
	// Put stores rec under token and expires it after ttl. ttl must be positive.
	Put(ctx context.Context, token string, rec domain.TokenRecord, ttl time.Duration) error

	// Get returns ErrNotFound once the record has expired or been deleted.
	Get(ctx context.Context, token string) (domain.TokenRecord, error)

	// Delete is idempotent.
	Delete(ctx context.Context, token string) error

	Ping(ctx context.Context) error
	Close() error
}
