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

	"transferadmin/api"
	"transferadmin/auth"
	"transferadmin/calling"
	"transferadmin/config"
	"transferadmin/db"
	"transferadmin/db/mongo"
	"transferadmin/db/postgres"
	"transferadmin/db/redis"
	"transferadmin/form"
	"transferadmin/handlers"
	"transferadmin/logging"
	"transferadmin/models"
	"transferadmin/repository"
	"transferadmin/routes"
	"transferadmin/utils"
	"transferadmin/views"
)

const sessionTTL = 7 * 24 * time.Hour

func main() {
	// Load config from .env or environment
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sessionRepo repository.SessionRepository
	var conn db.DB

	switch db.StoreType(cfg.SessionStore) {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL, cfg.MigrationsPath); err != nil {
			fatal(logger, "migrations failed", err)
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(ctx); err != nil {
			fatal(logger, "postgres connect failed", err)
		}
		conn = pg
		sessionRepo = repository.NewPostgresSessionRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(ctx); err != nil {
			fatal(logger, "mongo connect failed", err)
		}
		conn = mg
		mongoRepo := repository.NewMongoSessionRepo(mg.Client)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			fatal(logger, "mongo session indexes", err)
		}
		sessionRepo = mongoRepo

	case db.Redis:
		rd := redis.NewRedisDB(cfg.RedisURL)
		if err := rd.Connect(ctx); err != nil {
			fatal(logger, "redis connect failed", err)
		}
		conn = rd
		sessionRepo = repository.NewRedisSessionRepo(rd.Client, sessionTTL)

	default:
		sessionRepo = repository.NewMemorySessionRepo()
	}
	if conn != nil {
		defer func() {
			if err := conn.Disconnect(context.Background()); err != nil {
				logger.Error("disconnect failed", "error", err)
			}
		}()
	}

	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET not set; sessions will not survive a restart")
	}
	sealer, err := auth.NewSealer(cfg.SessionSecret)
	if err != nil {
		fatal(logger, "session sealer", err)
	}
	sessions := auth.NewManager(sessionRepo, sealer, cfg.CookieSecure)

	if cfg.CallsWebhookSecret == "" {
		logger.Warn("CALLS_WEBHOOK_SECRET not set; incoming call notifications will be refused")
	}

	renderer, err := views.New()
	if err != nil {
		fatal(logger, "templates", err)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	pages := handlers.NewPages(client, renderer, logger)

	hub := calling.NewHub(calling.HubOptions{
		Countdown: cfg.CallCountdown,
		Logger:    logger,
		OnTimeout: func(c models.Caller) {
			logger.Info("call rang out without an answer", "caller_id", c.ID, "caller", c.Name)
		},
	})
	defer hub.Close()

	reports := &handlers.ReportHandler{
		Pages:           pages,
		PDF:             utils.ChromePDF{Settle: 500 * time.Millisecond},
		CurrencyUnit:    cfg.CurrencyUnit,
		CurrencySubunit: cfg.CurrencySubunit,
	}
	if cfg.R2.Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, utils.R2Options{
			Bucket:          cfg.R2.Bucket,
			AccountID:       cfg.R2.AccountID,
			PublicURL:       cfg.R2.PublicURL,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
		})
		if err != nil {
			fatal(logger, "r2 uploader", err)
		}
		reports.Archive = uploader
	}

	router := routes.SetupRoutes(routes.Handlers{
		Pages:        pages,
		Auth:         &handlers.AuthHandler{Pages: pages},
		Dashboard:    &handlers.DashboardHandler{Pages: pages},
		Users:        &handlers.UserHandler{Pages: pages},
		Admins:       &handlers.AdminHandler{Pages: pages},
		Blogs:        &handlers.BlogHandler{Pages: pages, Images: form.ImageRules{MaxBytes: cfg.MaxImageBytes}},
		Templates:    &handlers.TemplateHandler{Pages: pages},
		Translations: &handlers.TranslationHandler{Pages: pages, Locales: cfg.TranslationLocales},
		Settings:     &handlers.SettingHandler{Pages: pages},
		Map:          &handlers.MapHandler{Pages: pages, APIKey: cfg.MapsAPIKey},
		Reports:      reports,
		Calls:        &handlers.CallHandler{Pages: pages, Hub: hub},
	}, sessions, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		CallsSecret:    cfg.CallsWebhookSecret,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server running", "port", cfg.Port, "session_store", cfg.SessionStore, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
