package httpx

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows cross-origin calls from origins. An empty list or a single "*"
// allows any origin, which is what browser-based workshop clients expect.
// The credential headers used by the token endpoint are always allowed.
func CORS(origins []string) Middleware {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization", "Content-Type",
			"client_id", "client-id", "client_secret", "client-secret",
		},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After", "WWW-Authenticate"},
		MaxAge:         600,
	})
	return c.Handler
}
