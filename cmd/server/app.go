package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ukp-platform/ukp-api/internal/api"
	"github.com/ukp-platform/ukp-api/internal/config"
	"github.com/ukp-platform/ukp-api/internal/health"
	"github.com/ukp-platform/ukp-api/internal/platform/postgres"
	"github.com/ukp-platform/ukp-api/internal/service"
	"github.com/ukp-platform/ukp-api/internal/service/audit"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry    *prometheus.Registry
	health      api.HealthChecker
	authn       *auth.Resolver
	auditTrail  *audit.Resolver
	userService service.UserService

	closers []func() error
}

// newApplication wires stores, strategies and services over an open
// database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: newRegistry(),
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	auditStore := postgres.NewPostgresAuditStore(db, logger)

	dbStrategy, err := audit.NewDatabaseStrategy(auditStore, logger)
	if err != nil {
		return nil, err
	}
	app.auditTrail, err = audit.NewResolver(cfg.IsProduction(), logger, audit.NewConsoleStrategy(logger), dbStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit trail: %w", err)
	}
	logger.Info("audit trail initialized", "provider", app.auditTrail.Active().Name())

	revocations, err := app.revocationStore(ctx)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewTokenSigner(cfg.Security().JWTSecret, auth.DefaultTokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
	local, err := auth.NewLocalStrategy(userStore, auth.LocalOptions{
		Signer:         signer,
		Revocations:    revocations,
		Hasher:         hasher,
		BootstrapAdmin: !cfg.IsProduction(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local auth: %w", err)
	}
	app.authn = auth.NewResolver(local)

	app.userService, err = service.NewUserService(userStore, db, hasher, app.auditTrail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user service: %w", err)
	}

	migrator, err := postgres.NewMigrator(db)
	if err != nil {
		return nil, err
	}
	metrics, err := health.NewMetrics(app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register health metrics: %w", err)
	}
	app.health = health.NewService(cfg, health.NewTCPProber(), postgres.NewSchemaChecker(db, migrator), metrics, logger)

	return app, nil
}

// revocationStore selects the token revocation backend from configuration.
func (app *application) revocationStore(ctx context.Context) (auth.RevocationStore, error) {
	if app.config.Security().RevocationStore != config.RevocationStoreRedis {
		app.logger.Warn("token revocations are held in memory and not shared between instances")
		return auth.NewMemoryRevocationStore(), nil
	}

	store, err := auth.NewRedisRevocationStore(ctx, app.config.RedisAddr(), app.config.Cache().Password, 0, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize revocation store: %w", err)
	}
	app.closers = append(app.closers, store.Close)
	return store, nil
}

// cleanup releases resources acquired by newApplication. The database is
// owned by the caller.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("cleanup failed", "error", err)
		}
	}
	app.closers = nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
