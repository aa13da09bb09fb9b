package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("client already exists")
	ErrClientIDFormat = errors.New("client id must not contain ':' ',' or whitespace")
	ErrSeedFormat     = errors.New("seed clients must look like id:secret,id:secret")
)

// ClientSeed is a client id and plaintext secret to register.
type ClientSeed struct {
	ID     string
	Secret string
}

// DevSeedClients is the sample registry used for local development.
var DevSeedClients = []ClientSeed{
	{ID: "client_id_1", Secret: "client_secret_1"},
	{ID: "client_id_2", Secret: "client_secret_2"},
	{ID: "client_id_3", Secret: "client_secret_3"},
	{ID: "workshop_client", Secret: "workshop_secret_123"},
}

// ParseSeedClients parses "id:secret,id:secret". The secret is everything
// after the first colon.
func ParseSeedClients(s string) ([]ClientSeed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var seeds []ClientSeed
	for entry := range strings.SplitSeq(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, secret, ok := strings.Cut(entry, ":")
		if !ok || id == "" || secret == "" {
			return nil, fmt.Errorf("%w: %q", ErrSeedFormat, entry)
		}
		seeds = append(seeds, ClientSeed{ID: id, Secret: secret})
	}
	return seeds, nil
}

// ClientService manages the client registry.
type ClientService struct {
	Clients store.Clients
}

func validClientID(id string) bool {
	return id != "" && !strings.ContainsAny(id, ": ,\t\r\n")
}

// AddClient registers a client. An empty id gets a generated ULID and an
// empty secret gets a generated 256-bit secret. The plaintext secret is
// returned once and never stored.
func (s *ClientService) AddClient(ctx context.Context, id, secret string) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	if id == "" {
		id = idx.New().String()
	}
	if !validClientID(id) {
		return domain.Client{}, "", ErrClientIDFormat
	}

	if secret == "" {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			l.Error("failed to generate client secret", slog.Any("error", err))
			return domain.Client{}, "", err
		}
		secret = generated
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		l.Error("failed to hash client secret", slog.Any("error", err))
		return domain.Client{}, "", err
	}

	c := domain.Client{ID: id, SecretHash: hash}
	if err := s.Clients.CreateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Client{}, "", ErrClientExists
		}
		l.Error("failed to create client", slog.String("client_id", id), slog.Any("error", err))
		return domain.Client{}, "", err
	}

	created, err := s.Clients.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, "", err
	}

	l.Info("client registered", slog.String("client_id", id))
	return created, secret, nil
}

// ListClients returns every registered client.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Clients.ListClients(ctx)
}

// RemoveClient deletes a client. Tokens already issued to it stay valid
// until they expire or are revoked.
func (s *ClientService) RemoveClient(ctx context.Context, id string) error {
	if err := s.Clients.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	slogx.FromContext(ctx).Info("client removed", slog.String("client_id", id))
	return nil
}

// Seed registers seeds when the registry is empty and reports how many
// clients were added. A registry that already has clients is left alone.
func (s *ClientService) Seed(ctx context.Context, seeds []ClientSeed) (int, error) {
	empty, err := s.Clients.IsEmpty(ctx)
	if err != nil {
		return 0, err
	}
	if !empty || len(seeds) == 0 {
		return 0, nil
	}

	added := 0
	for _, seed := range seeds {
		if _, _, err := s.AddClient(ctx, seed.ID, seed.Secret); err != nil {
			if errors.Is(err, ErrClientExists) {
				continue
			}
			return added, fmt.Errorf("seed client %q: %w", seed.ID, err)
		}
		added++
	}

	slogx.FromContext(ctx).Info("client registry seeded", slog.Int("clients", added))
	return added, nil
}
