package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollsdk"
)

// Pinger is anything that can report whether its backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

// HealthHandler godoc
//
//	@Summary		Health check
//	@Description	Always answers 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tollsdk.StatusResponse	"status, timestamp, app"
//	@Router			/health [get].
func HealthHandler(app string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, tollsdk.StatusResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			App:       app,
		})
	}
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns uptime and version. Always 200 if the process is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tollsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, tollsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the client database and the token store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tollsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	tollsdk.HealthResponse	"one or more dependencies are down"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, database, tokenStore Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status, code := "ok", http.StatusOK
		check := func(p Pinger) string {
			if err := p.Ping(ctx); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
				return "error: " + err.Error()
			}
			return "ok"
		}

		checks := &tollsdk.HealthChecks{
			Database:   check(database),
			TokenStore: check(tokenStore),
		}

		httpx.WriteJSON(w, code, tollsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
