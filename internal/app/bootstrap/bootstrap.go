package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ballotengine "tallyard/contexts/election-operations/ballot-engine"
	ballotpostgres "tallyard/contexts/election-operations/ballot-engine/adapters/postgres"
	electionservice "tallyard/contexts/election-operations/election-service"
	electionpostgres "tallyard/contexts/election-operations/election-service/adapters/postgres"
	"tallyard/internal/platform/config"
	"tallyard/internal/platform/db"
	"tallyard/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	database *db.Database
	logger   *slog.Logger
}

// WorkerApp advances election statuses on a timer so elections cross
// start/end boundaries even when no read traffic triggers a refresh.
type WorkerApp struct {
	database     *db.Database
	elections    electionservice.Module
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	electionModule, ballotModule := buildModules(database, logger)
	server := httpserver.New(
		electionModule,
		ballotModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		cfg.RefreshOnRead,
	)
	return &APIApp{
		server:   server,
		database: database,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	electionModule, _ := buildModules(database, logger)
	return &WorkerApp{
		database:     database,
		elections:    electionModule,
		pollInterval: cfg.StatusRefreshInterval,
		logger:       logger,
	}, nil
}

func buildModules(database *db.Database, logger *slog.Logger) (electionservice.Module, ballotengine.Module) {
	electionRepo := electionpostgres.NewRepository(database.DB, logger)
	electionModule := electionservice.NewModule(electionservice.Dependencies{
		Elections: electionRepo,
		Audit:     electionRepo,
		Clock:     electionpostgres.SystemClock{},
		IDGen:     electionpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	ballotRepo := ballotpostgres.NewRepository(database.DB, logger)
	ballotModule := ballotengine.NewModule(ballotengine.Dependencies{
		Ballots:   ballotRepo,
		Directory: ballotRepo,
		Audit:     ballotRepo,
		Clock:     ballotpostgres.SystemClock{},
		IDGen:     ballotpostgres.UUIDGenerator{},
		Logger:    logger,
	})
	return electionModule, ballotModule
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.database != nil {
		return a.database.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.elections.Handler.RefreshStatusesHandler(ctx); err != nil {
			w.logger.Error("status refresh tick failed",
				"event", "bootstrap_status_refresh_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.database != nil {
		return w.database.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
