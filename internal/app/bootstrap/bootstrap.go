package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	actionservice "smartspace/contexts/engagement/action-service"
	actionpostgres "smartspace/contexts/engagement/action-service/adapters/postgres"
	actionworkers "smartspace/contexts/engagement/action-service/application/workers"
	userservice "smartspace/contexts/identity-access/user-service"
	userpostgres "smartspace/contexts/identity-access/user-service/adapters/postgres"
	elementservice "smartspace/contexts/spatial-catalog/element-service"
	elementpostgres "smartspace/contexts/spatial-catalog/element-service/adapters/postgres"
	"smartspace/internal/platform/config"
	"smartspace/internal/platform/db"
	"smartspace/internal/platform/httpserver"
	"smartspace/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  actionworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := migrateAll(pg); err != nil {
		return nil, err
	}

	userRepo := userpostgres.NewRepository(pg.DB, logger)
	userModule := userservice.NewModule(userservice.Dependencies{
		Repository:     userRepo,
		HomeSmartspace: cfg.HomeSmartspace,
		Logger:         logger,
	})

	elementRepo := elementpostgres.NewRepository(pg.DB, logger)
	elementModule := elementservice.NewModule(elementservice.Dependencies{
		Repository:       elementRepo,
		Users:            elementUserDirectory{userDirectory{users: userRepo}},
		Clock:            elementpostgres.SystemClock{},
		ExpiryReversible: cfg.ElementExpiryReversible,
		Logger:           logger,
	})

	actionRepo := actionpostgres.NewRepository(pg.DB, logger)
	actionModule := actionservice.NewModule(actionservice.Dependencies{
		Repository: actionRepo,
		Users:      actionUserDirectory{userDirectory{users: userRepo}},
		Elements:   elementDirectory{elements: elementRepo},
		Scores:     playerScores{users: userRepo},
		Clock:      actionpostgres.SystemClock{},
		Logger:     logger,
	})

	server := httpserver.New(userModule, elementModule, actionModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := actionpostgres.Migrate(pg.DB); err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	actionRepo := actionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: actionworkers.OutboxRelay{
			Outbox:    actionRepo,
			Publisher: kafka,
			Clock:     actionpostgres.SystemClock{},
			Topic:     "smartspace.action.committed",
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: time.Duration(cfg.OutboxPollSeconds) * time.Second,
		logger:       logger,
	}, nil
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
	if a.postgres != nil {
		return a.postgres.Close()
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
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func migrateAll(pg *db.Postgres) error {
	if err := userpostgres.Migrate(pg.DB); err != nil {
		return err
	}
	if err := elementpostgres.Migrate(pg.DB); err != nil {
		return err
	}
	return actionpostgres.Migrate(pg.DB)
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
