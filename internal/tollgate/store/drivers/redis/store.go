// Package redis stores token records in Redis with server-side expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/domain"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	goredis "github.com/redis/go-redis/v9"
)

// Defaults applied by New for zero-valued Options fields.
const (
	DefaultKeyPrefix = "jwt:"
	DefaultOpTimeout = 2 * time.Second
)

// ErrInvalidTTL is returned by Put for a non-positive ttl. A record without
// expiry would outlive its token.
var ErrInvalidTTL = errors.New("redis: ttl must be positive")

// Options configures the connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	OpTimeout time.Duration
}

// Store implements store.Tokens.
type Store struct {
	rdb     *goredis.Client
	prefix  string
	timeout time.Duration
}

var _ store.Tokens = (*Store)(nil)

// New connects to Redis and pings it. The returned error wraps
// store.ErrUnavailable when the server cannot be reached.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOpTimeout
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.OpTimeout,
		ReadTimeout:  opts.OpTimeout,
		WriteTimeout: opts.OpTimeout,
		MaxRetries:   1,
	})

	s := &Store{rdb: rdb, prefix: opts.KeyPrefix, timeout: opts.OpTimeout}
	if err := s.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) key(token string) string { return s.prefix + token }

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: redis %s: %w", store.ErrUnavailable, op, err)
}

// Put writes the record with SET EX so value and expiry land atomically.
func (s *Store) Put(ctx context.Context, token string, rec domain.TokenRecord, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: encode record: %w", err)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.rdb.Set(ctx, s.key(token), b, ttl).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, token string) (domain.TokenRecord, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	b, err := s.rdb.Get(ctx, s.key(token)).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return domain.TokenRecord{}, store.ErrNotFound
	case err != nil:
		return domain.TokenRecord{}, unavailable("get", err)
	}

	var rec domain.TokenRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.TokenRecord{}, fmt.Errorf("redis: decode record: %w", err)
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return unavailable("del", err)
	}
	return nil
}

// TTL reports the remaining server-side lifetime of the record.
func (s *Store) TTL(ctx context.Context, token string) (time.Duration, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	d, err := s.rdb.TTL(ctx, s.key(token)).Result()
	if err != nil {
		return 0, unavailable("ttl", err)
	}
	if d < 0 {
		return 0, store.ErrNotFound
	}
	return d, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Store) Close() error { return s.rdb.Close() }
