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

	httpapi "github.com/aussiebroadwan/frontauth/internal/providerstub/http"
	"github.com/aussiebroadwan/frontauth/internal/providerstub/service"
	"github.com/aussiebroadwan/frontauth/pkg/jwtx"
	"github.com/aussiebroadwan/frontauth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the provider stub: the in-memory service, its HTTP
// router and the housekeeping worker.
type Application struct {
	cfg    Config
	logger *slog.Logger

	signer *jwtx.EdDSASigner

	service             *service.Service
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "providerstub",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := InitSigner(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.signer = signer

	app.initServices()
	if err := app.seed(); err != nil {
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler, for serving the stub in-process.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Service returns the in-memory provider state.
func (app *Application) Service() *service.Service {
	return app.service
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("provider stub starting", "port", app.cfg.Port, "issuer", app.cfg.Issuer, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down provider stub...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	app.logger.Info("provider stub stopped")
	return nil
}

func (app *Application) initServices() {
	app.service = service.New(service.Options{
		Signer:       app.signer,
		Issuer:       app.cfg.Issuer,
		Pepper:       app.cfg.Pepper,
		Logger:       app.logger,
		MultiSession: app.cfg.MultiSession,
	})

	app.housekeepingService = service.NewHousekeepingService(
		app.service,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	if app.cfg.SessionRetention > 0 {
		app.housekeepingService.Retention = app.cfg.SessionRetention
	}
}

// seed creates the configured startup user, if any.
func (app *Application) seed() error {
	if app.cfg.SeedEmail == "" {
		return nil
	}

	u, err := app.service.CreateUser(service.UserSpec{
		EmailAddress: app.cfg.SeedEmail,
		Password:     app.cfg.SeedPassword,
		TOTP:         app.cfg.SeedTOTP,
	})
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	attrs := []any{"user_id", u.ID, "email", app.cfg.SeedEmail}
	if u.TOTPSecret != "" {
		attrs = append(attrs, "totp_secret", u.TOTPSecret, "backup_codes", u.BackupCodes)
	}
	app.logger.Info("seeded user", attrs...)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.service,
		jwtx.JWKS{Keys: []jwtx.JWK{app.signer.PublicJWK()}},
		BuildVersion,
		app.logger,
	)
	router.AttemptLimit = app.cfg.AttemptLimit
	router.DefaultLimit = app.cfg.DefaultLimit
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
