package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/painel-crm/painel-crm/internal/app"
	"github.com/painel-crm/painel-crm/internal/events"
	jobmetrics "github.com/painel-crm/painel-crm/internal/jobs"
	"github.com/painel-crm/painel-crm/internal/platform/cache"
	"github.com/painel-crm/painel-crm/internal/upstream"
	"github.com/painel-crm/painel-crm/internal/users"
	"github.com/painel-crm/painel-crm/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	backend := upstream.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)
	usersRepo := users.NewRepository(backend)
	eventsRepo := events.NewRepository(backend)
	eventsService := events.NewService(eventsRepo, users.NewDirectory(usersRepo), logger, cfg.Location())

	metrics := jobmetrics.NewMetrics(nil)
	processor := jobs.NewExportProcessor(eventsService, redisClient, cfg.ExportDir, metrics, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskEventsExportCSV, Handler: processor.Handle},
			{Type: jobs.TaskExportCleanup, Handler: processor.Cleanup},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: jobs.NewExportCleanupTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
