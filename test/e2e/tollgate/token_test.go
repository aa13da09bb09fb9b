//go:build e2e

package tollgate_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tollgate/pkg/tollsdk"
)

// TestWorkshopFlow walks the sample client through issue, use and logout.
func TestWorkshopFlow(t *testing.T) {
	client := setupTollgate(t)
	ctx := t.Context()

	tok, err := client.IssueToken(ctx, workshopClientID, workshopClientSecret)
	require.NoError(t, err)
	assertTokenResponse(t, tok, time.Hour)

	session := client.NewSession(tok.AccessToken, tok.ExpiresIn)

	data, err := session.GetData(ctx)
	require.NoError(t, err)
	require.Equal(t, workshopClientID, data.User.Subject)
	require.Equal(t, workshopClientID, data.User.ClientID)
	require.Equal(t, "access_token", data.User.Type)
	require.Equal(t, workshopClientID, data.Token.ClientID)
	require.Equal(t, int64(time.Hour/time.Millisecond), data.Token.ExpiresAt-data.Token.IssuedAt)
	require.NotEmpty(t, data.Data)

	require.NoError(t, session.Logout(ctx))

	_, err = session.GetData(ctx)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindTokenNotFoundOrExpired)

	// Logging out twice: the token no longer has a record.
	err = session.Logout(ctx)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindTokenNotFoundOrExpired)
}

func TestInvalidCredentials(t *testing.T) {
	client := setupTollgate(t)
	ctx := t.Context()

	_, err := client.IssueToken(ctx, workshopClientID, "wrong")
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindInvalidCredentials)

	_, err = client.IssueToken(ctx, "nobody", workshopClientSecret)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindInvalidCredentials)

	_, err = client.IssueToken(ctx, "", "")
	assertKind(t, err, http.StatusBadRequest, tollsdk.KindMissingCredentials)
}

func TestTokensAreIndependent(t *testing.T) {
	client := setupTollgate(t)
	ctx := t.Context()

	first, err := client.Authenticate(ctx, "client_id_1", "client_secret_1")
	require.NoError(t, err)
	second, err := client.Authenticate(ctx, "client_id_1", "client_secret_1")
	require.NoError(t, err)
	require.NotEqual(t, first.AccessToken(), second.AccessToken())

	require.NoError(t, first.Logout(ctx))

	_, err = second.GetData(ctx)
	require.NoError(t, err, "revoking one token must not affect another")
}

func TestTokenExpiresWithRecord(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a token to expire")
	}

	cfg := testConfig(t)
	cfg.TokenTTL = 2 * time.Second
	client := startApp(t, cfg)
	ctx := t.Context()

	session, err := client.Authenticate(ctx, "client_id_2", "client_secret_2")
	require.NoError(t, err)

	_, err = session.GetData(ctx)
	require.NoError(t, err)

	time.Sleep(3 * time.Second)

	_, err = session.GetData(ctx)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindTokenNotFoundOrExpired)
}

func TestForgedToken(t *testing.T) {
	client := setupTollgate(t)
	ctx := t.Context()

	cfg := testConfig(t)
	cfg.JWTSecret = "another-secret"
	other := startApp(t, cfg)

	// A token signed by a different deployment has no record here.
	foreign, err := other.Authenticate(ctx, workshopClientID, workshopClientSecret)
	require.NoError(t, err)

	_, err = client.NewSession(foreign.AccessToken(), 60).GetData(ctx)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindTokenNotFoundOrExpired)

	_, err = client.NewSession("not-a-jwt", 60).GetData(ctx)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindTokenNotFoundOrExpired)
}

func TestSeededClientsFromEnvironment(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "prod"
	cfg.SeedClients = "svc-a:alpha,svc-b:beta"
	client := startApp(t, cfg)
	ctx := t.Context()

	_, err := client.IssueToken(ctx, "svc-a", "alpha")
	require.NoError(t, err)

	// Outside of dev the sample clients are not seeded.
	_, err = client.IssueToken(ctx, workshopClientID, workshopClientSecret)
	assertKind(t, err, http.StatusUnauthorized, tollsdk.KindInvalidCredentials)
}

func TestTokenEndpointRateLimit(t *testing.T) {
	client := setupTollgate(t)
	ctx := t.Context()

	var limited bool
	for range 15 {
		_, err := client.IssueToken(ctx, "client_id_3", "client_secret_3")
		if err != nil {
			assertKind(t, err, http.StatusTooManyRequests, tollsdk.KindRateLimited)
			limited = true
			break
		}
	}
	require.True(t, limited, "token endpoint should be rate limited")
}
