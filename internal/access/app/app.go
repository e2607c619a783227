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

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/gateway"
	httpapi "github.com/aussiebroadwan/lounge/internal/access/http"
	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/internal/access/store"
	"github.com/aussiebroadwan/lounge/internal/access/store/drivers/sqlite"
	"github.com/aussiebroadwan/lounge/pkg/httpx"
	"github.com/aussiebroadwan/lounge/pkg/jwtx"
	"github.com/aussiebroadwan/lounge/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the access engine, its scheduler and the HTTP API.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	gateway  gateway.ChannelGateway
	verifier *jwtx.HS256
	redis    *redis.Client

	settingsService *service.SettingsService
	ledgerService   *service.LedgerService
	tokenService    *service.TokenService
	queueService    *service.QueueService
	scheduler       *service.Scheduler

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "access-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	verifier, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT verifier: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the scheduler and HTTP server and blocks until shutdown is requested
func (app *Application) Run() error {
	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	app.logger.Info("access service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
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

// Shutdown drains HTTP, stops the scheduler and then closes the store, so
// no job or request touches a closed database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down access service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.scheduler.Stop(); err != nil {
		app.logger.Error("scheduler did not stop cleanly", "error", err)
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("access service stopped")
	return nil
}

// initDatabase opens the store and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices builds the engine services and the scheduler
func (app *Application) initServices() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	settings, err := service.NewSettingsService(app.db, app.cfg.Engine())
	if err != nil {
		return err
	}
	if err := settings.Load(ctx); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	app.settingsService = settings

	app.ledgerService = &service.LedgerService{
		Store:  app.db,
		Policy: domain.RedeemPolicy(app.cfg.RedeemPolicy),
	}
	app.tokenService = &service.TokenService{
		Store:    app.db,
		Settings: settings,
		Ledger:   app.ledgerService,
	}
	app.queueService = &service.QueueService{Store: app.db}

	if app.cfg.TelegramBotToken != "" {
		app.gateway = gateway.NewTelegram(app.cfg.TelegramAPIURL, app.cfg.TelegramBotToken)
		app.logger.Info("telegram gateway enabled")
	} else {
		app.gateway = gateway.NewLog()
		app.logger.Warn("TELEGRAM_BOT_TOKEN not set, channel actions are only logged")
	}

	loc, err := time.LoadLocation(app.cfg.SchedulerTimezone)
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone: %w", err)
	}

	sched, err := service.NewScheduler(
		app.ledgerService,
		app.queueService,
		settings,
		app.gateway,
		app.logger.With("component", "scheduler"),
		service.SchedulerConfig{
			CleanupSchedule:       app.cfg.CleanupSchedule,
			Retention:             time.Duration(app.cfg.RetentionDays) * 24 * time.Hour,
			Location:              loc,
			StopTimeout:           app.cfg.JobStopTimeout,
			RunOnStart:            app.cfg.RunOnStart,
			PremiumChannelID:      app.cfg.PremiumChannelID,
			FreeChannelID:         app.cfg.FreeChannelID,
			AdmissionMode:         domain.AdmissionMode(app.cfg.AdmissionMode),
			InviteLinkExpireHours: app.cfg.InviteLinkExpireHours,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	app.scheduler = sched
	return nil
}

// limiters picks the rate limit backend. Redis shares buckets across
// replicas; without it each process limits on its own.
func (app *Application) limiters() httpx.LimiterFactory {
	if app.cfg.RedisAddr == "" {
		return httpx.MemoryLimiters
	}
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})
	app.logger.Info("redis rate limiting enabled", "addr", app.cfg.RedisAddr)
	return httpx.RedisLimiters(app.redis)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		app.limiters(),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.LedgerService = app.ledgerService
	router.QueueService = app.queueService
	router.SettingsService = app.settingsService
	router.Scheduler = app.scheduler
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
