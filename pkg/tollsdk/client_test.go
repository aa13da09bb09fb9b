package tollsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("client_id") == "" || r.Header.Get("client_secret") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Missing client_id or client_secret in headers",
				"kind":  KindMissingCredentials,
			})
			return
		}
		if r.Header.Get("client_secret") != "right" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid credentials",
				"kind":  KindInvalidCredentials,
			})
			return
		}
		writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600})
	})

	mux.HandleFunc("GET /data", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "Token invalid or expired",
				"message": "revoked",
				"kind":    KindTokenNotFoundOrExpired,
			})
			return
		}
		writeJSON(w, http.StatusOK, DataResponse{
			Message: "ok",
			User:    TokenClaims{Subject: "svc", ClientID: "svc", Type: "access_token"},
			Token:   TokenMetadata{ClientID: "svc", IssuedAt: 1000, ExpiresAt: 3601000},
			Data:    json.RawMessage(`[{"id":1}]`),
		})
	})

	mux.HandleFunc("POST /oauth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Token revoked"})
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{Status: "OK", App: "tollgate"})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "degraded",
			Checks: &HealthChecks{Database: "ok", TokenStore: "error: down"},
		})
	})

	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func asError(t *testing.T, err error) *Error {
	t.Helper()
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr), "expected *tollsdk.Error, got %T", err)
	return apiErr
}

func TestSessionFlow(t *testing.T) {
	srv := newFakeServer(t)
	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	session, err := c.Authenticate(ctx, "svc", "right")
	require.NoError(t, err)
	require.Equal(t, "tok", session.AccessToken())
	require.False(t, session.Expired())

	data, err := session.GetData(ctx)
	require.NoError(t, err)
	require.Equal(t, "svc", data.User.ClientID)
	require.Equal(t, int64(3601000), data.Token.ExpiresAt)
	require.JSONEq(t, `[{"id":1}]`, string(data.Data))

	require.NoError(t, session.Logout(ctx))
}

func TestIssueToken_Errors(t *testing.T) {
	srv := newFakeServer(t)
	c := NewClient(srv.URL)

	_, err := c.IssueToken(context.Background(), "svc", "wrong")
	apiErr := asError(t, err)
	require.True(t, apiErr.Unauthorized())
	require.Equal(t, KindInvalidCredentials, apiErr.Kind)
	require.Equal(t, "Invalid credentials", apiErr.Title)

	_, err = c.IssueToken(context.Background(), "", "")
	apiErr = asError(t, err)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, KindMissingCredentials, apiErr.Kind)
}

func TestGetData_RejectedToken(t *testing.T) {
	srv := newFakeServer(t)
	c := NewClient(srv.URL)

	_, err := c.NewSession("stale", 60).GetData(context.Background())
	apiErr := asError(t, err)
	require.Equal(t, KindTokenNotFoundOrExpired, apiErr.Kind)
	require.Equal(t, "tollgate: 401 Token invalid or expired: revoked", apiErr.Error())
}

func TestHealthEndpoints(t *testing.T) {
	srv := newFakeServer(t)
	c := NewClient(srv.URL)
	ctx := context.Background()

	health, err := c.GetHealth(ctx)
	require.NoError(t, err)
	require.Equal(t, "tollgate", health.App)

	_, err = c.GetReadiness(ctx)
	apiErr := asError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	_, err = c.GetLiveness(ctx)
	apiErr = asError(t, err)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "Bad Gateway", apiErr.Title)
	require.Equal(t, KindServerError, apiErr.Kind)
}

func TestSession_Expired(t *testing.T) {
	c := NewClient("http://unused")
	require.True(t, c.NewSession("tok", 0).Expired())
	require.False(t, c.NewSession("tok", 60).Expired())
}
