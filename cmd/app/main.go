package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/monarchbot/arise/internal/concurrency"
	"github.com/monarchbot/arise/internal/config"
	"github.com/monarchbot/arise/internal/database"
	"github.com/monarchbot/arise/internal/database/postgres"
	"github.com/monarchbot/arise/internal/logger"
	"github.com/monarchbot/arise/internal/player"
	"github.com/monarchbot/arise/internal/server"
	"github.com/monarchbot/arise/internal/worker"
	"github.com/monarchbot/arise/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		false,
	))

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString, migrations.FS); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(connString, cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repo := postgres.NewPlayerRepository(dbPool)
	leases := concurrency.NewLeaseManager(cfg.LockTTL)

	playerService := player.NewService(repo, player.Options{
		CacheSize: cfg.PlayerCacheSize,
		CacheTTL:  cfg.PlayerCacheTTL,
		Leases:    leases,
	})

	maintenance := worker.NewMaintenanceWorker(repo, leases, cfg.MaintenanceInterval)
	maintenance.Start(context.Background())

	trustedProxies := splitCSV(os.Getenv("TRUSTED_PROXIES"))
	srv := server.NewServer(cfg.Port, cfg.APIKey, trustedProxies, dbPool, playerService, repo)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case sig := <-sc:
		slog.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	maintenance.Stop(ctx)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
