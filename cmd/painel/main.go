package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/painel-crm/painel-crm/internal/app"
	"github.com/painel-crm/painel-crm/internal/audit"
	"github.com/painel-crm/painel-crm/internal/auth"
	"github.com/painel-crm/painel-crm/internal/clients"
	"github.com/painel-crm/painel-crm/internal/events"
	"github.com/painel-crm/painel-crm/internal/forms"
	"github.com/painel-crm/painel-crm/internal/guard"
	"github.com/painel-crm/painel-crm/internal/navigation"
	"github.com/painel-crm/painel-crm/internal/observability"
	"github.com/painel-crm/painel-crm/internal/platform/cache"
	"github.com/painel-crm/painel-crm/internal/platform/db"
	"github.com/painel-crm/painel-crm/internal/shared"
	"github.com/painel-crm/painel-crm/internal/upstream"
	"github.com/painel-crm/painel-crm/internal/users"
	"github.com/painel-crm/painel-crm/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	var pool *pgxpool.Pool
	if cfg.PGDSN != "" {
		pool, err = db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
	} else {
		logger.Warn("PG_DSN not set, gateway audit trail disabled")
	}

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

	sessionManager := shared.NewSessionManager(redisClient, "painel_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	backend := upstream.NewClient(cfg.BackendURL, cfg.BackendTimeout, logger)
	auditLogger := audit.NewLogger(pool)

	authService := auth.NewService(backend)
	authHandler := auth.NewHandler(logger, authService, sessionManager, auditLogger)

	guardMW := guard.Middleware{Logger: logger, TokenExpired: auth.TokenExpired}

	usersRepo := users.NewRepository(backend)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, guardMW)

	clientsRepo := clients.NewRepository(backend)
	clientsService := clients.NewService(clientsRepo, logger)
	clientsHandler := clients.NewHandler(logger, clientsService, guardMW)

	eventsRepo := events.NewRepository(backend)
	eventsService := events.NewService(eventsRepo, users.NewDirectory(usersRepo), logger, cfg.Location())

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	exporter := jobs.NewExporter(asynqClient, redisClient, logger)
	eventsHandler := events.NewHandler(logger, eventsService, guardMW, exporter, auditLogger)

	formsRepo := forms.NewRepository(backend)
	formsService := forms.NewService(formsRepo)
	formsHandler := forms.NewHandler(logger, formsService, guardMW)

	navigationHandler := navigation.NewHandler(logger, guardMW)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		CSRFManager:       csrfManager,
		AuthHandler:       authHandler,
		UsersHandler:      usersHandler,
		ClientsHandler:    clientsHandler,
		EventsHandler:     eventsHandler,
		FormsHandler:      formsHandler,
		NavigationHandler: navigationHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
