package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/tollgate/internal/tollgate/http"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/redis"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	startupTimeout = 10 * time.Second
)

// Application encapsulates the token service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     *sqlite.Store
	tokens *redis.Store

	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	tokenService  *service.TokenService
	clientService *service.ClientService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application with every dependency connected. Both the
// client registry and the token store are pinged before New returns.
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET: %w", jwtx.ErrMissingSecret)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: cfg.AppName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	ctx = slogx.WithContext(ctx, app.logger)

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initKeys(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initTokenStore(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	if err := app.seedClients(ctx); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router, for serving from a custom listener.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("tollgate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.closeStores()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server and closes the stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tollgate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("tollgate stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if err := app.tokens.Close(); err != nil {
		app.logger.Error("error closing token store", "error", err)
		errs = append(errs, err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) initKeys() error {
	secret := []byte(app.cfg.JWTSecret)

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("failed to initialize signer: %w", err)
	}

	verifier, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{
		Issuer: app.cfg.Issuer,
		Leeway: app.cfg.ClockSkew,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize verifier: %w", err)
	}

	app.signer, app.verifier = signer, verifier
	return nil
}

// OpenDatabase opens the client registry file and applies migrations. The
// server and the admin CLI share it.
func OpenDatabase(ctx context.Context, file string) (*sqlite.Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", file)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenDatabase(ctx, app.cfg.DatabaseFile)
	if err != nil {
		return err
	}

	app.db = db
	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initTokenStore connects to Redis; New fails if the first ping does.
func (app *Application) initTokenStore(ctx context.Context) error {
	tokens, err := redis.New(ctx, app.cfg.RedisOptions())
	if err != nil {
		return fmt.Errorf("failed to connect token store: %w", err)
	}

	app.tokens = tokens
	app.logger.Info("token store connected", "addr", app.cfg.RedisAddr, "db", app.cfg.RedisDB)
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Credentials: &service.CredentialVerifier{Clients: app.db},
		Signer:      app.signer,
		Verifier:    app.verifier,
		Tokens:      app.tokens,
		Issuer:      app.cfg.Issuer,
		TTL:         app.cfg.TokenTTL,
	}
	app.clientService = &service.ClientService{Clients: app.db}
}

func (app *Application) seedClients(ctx context.Context) error {
	seeds, err := app.cfg.Seeds()
	if err != nil {
		return err
	}
	if _, err := app.clientService.Seed(ctx, seeds); err != nil {
		return fmt.Errorf("failed to seed clients: %w", err)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.RouterOptions{
		AppName:      app.cfg.AppName,
		BuildVersion: BuildVersion,
		CORSOrigins:  app.cfg.CORSAllowedOrigins,
		Logger:       app.logger,
		Database:     app.db,
		TokenStore:   app.tokens,
	})
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
