// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/keyurm111/eloska-luxe-showcase/internal/admin"
	"github.com/keyurm111/eloska-luxe-showcase/internal/auth"
	"github.com/keyurm111/eloska-luxe-showcase/internal/category"
	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/export"
	"github.com/keyurm111/eloska-luxe-showcase/internal/health"
	"github.com/keyurm111/eloska-luxe-showcase/internal/inquiry"
	"github.com/keyurm111/eloska-luxe-showcase/internal/middleware"
	"github.com/keyurm111/eloska-luxe-showcase/internal/newsletter"
	"github.com/keyurm111/eloska-luxe-showcase/internal/notify"
	"github.com/keyurm111/eloska-luxe-showcase/internal/product"
	"github.com/keyurm111/eloska-luxe-showcase/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)
	core.SetDevelopment(cfg.IsDevelopment())

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized", "endpoint", cfg.Otel.Endpoint)
	}

	db, err := core.NewDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	logger.Info("mongo connected",
		"database", cfg.Mongo.Database,
		"max_pool_size", cfg.Mongo.MaxPoolSize,
	)

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb.Enabled() {
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Warn("redis not configured, using in-process rate limits")
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "HS256", "ttl", jwtManager.TTL())

	adminRepo := admin.NewRepository(db.DB)
	productInquiryRepo := inquiry.NewRepository(db.DB, inquiry.ProductKind)
	normalInquiryRepo := inquiry.NewRepository(db.DB, inquiry.NormalKind)
	newsletterRepo := newsletter.NewRepository(db.DB)
	productRepo := product.NewRepository(db.DB)
	categoryRepo := category.NewRepository(db.DB)

	for _, repo := range []indexer{
		adminRepo,
		productInquiryRepo,
		normalInquiryRepo,
		newsletterRepo,
		productRepo,
		categoryRepo,
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	transports, err := notify.BuildTransports(ctx, cfg.Mail, cfg.AWS)
	if err != nil {
		return err
	}
	renderer, err := notify.NewRenderer()
	if err != nil {
		return err
	}
	dispatcher := notify.NewDispatcher(notify.DispatcherConfig{
		From:       cfg.Mail.From,
		Recipients: cfg.Mail.Recipients(),
		Timeout:    cfg.Mail.Timeout,
		Workers:    cfg.Mail.Workers,
		QueueSize:  cfg.Mail.QueueSize,
	}, renderer, transports, logger)
	dispatcher.Start()
	logger.Info("notification dispatcher started",
		"channels", strings.Join(dispatcher.Channels(), ","),
		"workers", cfg.Mail.Workers,
		"queue_size", cfg.Mail.QueueSize,
		"recipients", len(cfg.Mail.Recipients()),
	)

	var archiver export.Archiver
	if cfg.Export.Bucket != "" {
		awsCfg, awsErr := core.LoadAWSConfig(ctx, cfg.AWS)
		if awsErr != nil {
			return awsErr
		}
		archiver = export.NewS3Archiver(awsCfg, cfg.Export.Bucket, cfg.Export.Prefix)
		logger.Info("export archive enabled", "bucket", cfg.Export.Bucket)
	}
	exporter := export.NewExporter(cfg.Export, archiver, logger)

	adminSvc := admin.NewService(adminRepo)
	authSvc := auth.NewService(jwtManager, adminSvc, rdb.Raw(), logger)
	authHandler := auth.NewHandler(authSvc)

	productInquirySvc := inquiry.NewService(inquiry.ProductKind, productInquiryRepo)
	normalInquirySvc := inquiry.NewService(inquiry.NormalKind, normalInquiryRepo)
	newsletterSvc := newsletter.NewService(newsletterRepo)
	productSvc := product.NewService(productRepo)
	categorySvc := category.NewService(categoryRepo)

	redisDep := health.Dependency{Name: "redis", Optional: true}
	if rdb.Enabled() {
		redisDep.Checker = rdb
	}
	healthHandler := health.NewHandler(
		cfg.App.Environment,
		health.Dependency{Name: "mongo", Checker: db},
		redisDep,
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Counters: map[string]admin.StatusCounter{
			"productInquiries": productInquirySvc,
			"normalInquiries":  normalInquirySvc,
			"newsletter":       newsletterSvc,
			"products":         productSvc,
			"categories":       categorySvc,
		},
		DBPing:     db.Ping,
		DBStats:    db.Stats,
		RedisPing:  rdb.Ping,
		RedisStats: rdb.PoolStats,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(chimw.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(
		middleware.NewRateLimiter(rdb.Raw(), middleware.RateLimitConfig{
			Scope:      "global",
			Limit:      middleware.LimitFromConfig(cfg.RateLimit),
			BypassFunc: isHealthCheck,
		}).Handler,
	)

	submitLimiter := middleware.NewRateLimiter(rdb.Raw(), middleware.RateLimitConfig{
		Scope: "submit",
		Limit: middleware.LimitFromConfig(cfg.Submit),
	}).Handler
	loginLimiter := middleware.NewRateLimiter(rdb.Raw(), middleware.RateLimitConfig{
		Scope: "login",
		Limit: middleware.LimitFromConfig(cfg.Submit),
	}).Handler

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)

	router.Route("/api", func(r chi.Router) {
		healthHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
		adminHandler.RegisterRoutes(r, authenticator)

		inquiry.NewHandler(productInquirySvc, dispatcher, exporter).
			RegisterRoutes(r, authenticator, submitLimiter)
		inquiry.NewHandler(normalInquirySvc, dispatcher, exporter).
			RegisterRoutes(r, authenticator, submitLimiter)
		newsletter.NewHandler(newsletterSvc, dispatcher, exporter).
			RegisterRoutes(r, authenticator, submitLimiter)
		product.NewHandler(productSvc).
			RegisterRoutes(r, authenticator, optionalAuth)
		category.NewHandler(categorySvc).
			RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("notification dispatcher shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(shutdownCtx); err != nil {
		logger.Error("mongo close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func isHealthCheck(r *http.Request) bool {
	switch r.URL.Path {
	case "/api/healthz", "/api/livez", "/api/readyz":
		return true
	}
	return false
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
