package service_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/redis"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("service-test-secret")

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type harness struct {
	tokens   *service.TokenService
	clients  *service.ClientService
	registry *sqlite.Store
	store    *redis.Store
	mr       *miniredis.Miniredis
	clock    *clock
}

func newHarness(t *testing.T, ttl time.Duration) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations())
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	rs, err := redis.New(ctx, redis.Options{Addr: mr.Addr(), OpTimeout: 500 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	clk := &clock{now: time.Now().UTC()}

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Issuer: "tollgate", Now: clk.Now})
	require.NoError(t, err)

	clients := &service.ClientService{Clients: db}
	_, err = clients.Seed(ctx, service.DevSeedClients)
	require.NoError(t, err)

	return &harness{
		tokens: &service.TokenService{
			Credentials: &service.CredentialVerifier{Clients: db},
			Signer:      signer,
			Verifier:    verifier,
			Tokens:      rs,
			Issuer:      "tollgate",
			TTL:         ttl,
			Now:         clk.Now,
		},
		clients:  clients,
		registry: db,
		store:    rs,
		mr:       mr,
		clock:    clk,
	}
}
