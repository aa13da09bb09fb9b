package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"

	_ "github.com/aussiebroadwan/tollgate/api/tollgate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultAppName is reported by GET /health.
const DefaultAppName = "tollgate"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	appName      string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	database   Pinger
	tokenStore Pinger

	TokenService *service.TokenService
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AppName      string
	BuildVersion string
	CORSOrigins  []string
	Logger       *slog.Logger

	// Database and TokenStore back the readiness probe.
	Database   Pinger
	TokenStore Pinger
}

func NewRouter(opts RouterOptions) *Router {
	if opts.AppName == "" {
		opts.AppName = DefaultAppName
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		appName:      opts.AppName,
		buildVersion: opts.BuildVersion,
		startTime:    time.Now(),
		logger:       opts.Logger,
		database:     opts.Database,
		tokenStore:   opts.TokenStore,
	}

	// Logging wraps CORS so preflight requests are logged too.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(opts.CORSOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth()
	r.registerData()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.HandleFunc("/", NotFoundHandler)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tollgate Token Service API
//	@version		0.1.0
//	@description	Issues, validates and revokes short-lived HS256 bearer tokens for registered clients.
//	@description	Every token has a server-side record; revoking the record kills the token immediately.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tollgate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from /oauth/token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth() {
	// POST /oauth/token - strict limit by IP and presented client id
	r.Mux.Handle("POST /oauth/token",
		httpx.Chain(&TokenHandler{TokenService: r.TokenService},
			httpx.RateLimitByIPAndHeader(httpx.StrictLimit, clientIDHeaders...),
		),
	)

	// POST /oauth/logout - authenticated, moderate limit per client
	r.Mux.Handle("POST /oauth/logout",
		httpx.Chain(&LogoutHandler{TokenService: r.TokenService},
			AuthnMiddleware(r.TokenService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerData() {
	r.Mux.Handle("GET /data",
		httpx.Chain(http.HandlerFunc(DataHandler),
			AuthnMiddleware(r.TokenService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.appName), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.database, r.tokenStore),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
