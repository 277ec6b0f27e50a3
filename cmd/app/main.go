package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inventoria-app/inventoria/internal/audit"
	"github.com/inventoria-app/inventoria/internal/backup"
	"github.com/inventoria-app/inventoria/internal/bootstrap"
	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/config"
	"github.com/inventoria-app/inventoria/internal/database"
	"github.com/inventoria-app/inventoria/internal/database/memory"
	"github.com/inventoria-app/inventoria/internal/database/postgres"
	"github.com/inventoria-app/inventoria/internal/database/schema"
	"github.com/inventoria-app/inventoria/internal/export"
	"github.com/inventoria-app/inventoria/internal/handler"
	"github.com/inventoria-app/inventoria/internal/inventory"
	"github.com/inventoria-app/inventoria/internal/report"
	"github.com/inventoria-app/inventoria/internal/repository"
	"github.com/inventoria-app/inventoria/internal/server"
	"github.com/inventoria-app/inventoria/internal/settings"
	"github.com/inventoria-app/inventoria/internal/user"
)

const (
	shutdownTimeout = 10 * time.Second
	connMaxIdle     = 5 * time.Minute
	connMaxLife     = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	for _, warning := range warnings {
		slog.Warn(warning)
	}
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, health, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	seeder := bootstrap.NewSeeder(store)
	if err := seeder.Seed(ctx); err != nil {
		slog.Error("Failed to seed store", "error", err)
		os.Exit(1)
	}

	guard := concurrency.NewGuard()
	auditLog := audit.NewLogger(store.Transactions(), store.Users(), slog.Default())

	inventoryService := inventory.NewService(store.Items(), store.Categories(), auditLog, guard)
	userService := user.NewService(store.Users(), store.Transactions(), auditLog, guard)
	reportService := report.NewService(store, guard)
	exportService := export.NewService(store, guard)

	// Replay services run inside the import's exclusive section, so they
	// take no guard of their own.
	replayInventory := inventory.NewService(store.Items(), store.Categories(), auditLog, nil)
	replayUsers := user.NewService(store.Users(), store.Transactions(), auditLog, nil)
	backupService := backup.NewService(store, guard, seeder, replayInventory, replayUsers)

	settingsStore := settings.NewStore(cfg.ExpiresSoonDays)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, health,
		inventoryService, userService, reportService, backupService, exportService, settingsStore)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// openStore builds the configured storage backend. The returned cleanup
// closes any underlying pool and is safe to call on every path.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, handler.HealthChecker, func(), error) {
	if cfg.StorageBackend == config.StoragePostgres {
		pool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, connMaxIdle, connMaxLife)
		if err != nil {
			return nil, nil, func() {}, err
		}
		if err := schema.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, func() {}, err
		}
		return postgres.NewStore(pool), pool, pool.Close, nil
	}

	slog.Info("Using in-memory store; data is lost on restart")
	return memory.NewStore(), nil, func() {}, nil
}
