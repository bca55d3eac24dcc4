package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/config"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/handler"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/middleware"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/cache"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/memory"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/postgres"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/sheets"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/storage"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the state store
	stateRepo, closeStore := openStateRepository(ctx, cfg)
	defer closeStore()

	// Optional snapshot cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer redisCache.Close()
		stateRepo = cache.NewStateRepository(stateRepo, redisCache, cfg.CacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("State cache enabled")
	}

	// Optional backup storage
	var backupRepo domain.BackupRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3BackupRepository(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize backup storage")
		}
		backupRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Backup storage enabled")
	}

	// Real-time updates
	hub := websocket.NewHub()
	defer hub.CloseAll()

	// Initialize services
	stateService := service.NewStateService(stateRepo)
	stateService.SetEventPublisher(hub)
	projectionService := service.NewProjectionService(stateRepo)
	dashboardService := service.NewDashboardService(stateRepo)
	backupService := service.NewBackupService(stateRepo, backupRepo)
	backupService.SetEventPublisher(hub)

	// Scheduled backups
	if cfg.BackupSchedule != "" {
		scheduler, err := service.NewBackupScheduler(backupService, log.Logger, service.BackupSchedulerConfig{
			Schedule: cfg.BackupSchedule,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backup scheduler")
		}
		if err := scheduler.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start backup scheduler")
		}
		defer scheduler.Stop()
	}

	// Rate limiting for API routes
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Bound request bodies
	e.Use(echomiddleware.BodyLimit("1M"))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"backend": cfg.StoreBackend,
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, handler.Handlers{
		State:      handler.NewStateHandler(stateService),
		Projection: handler.NewProjectionHandler(projectionService),
		Summary:    handler.NewSummaryHandler(dashboardService),
		Backup:     handler.NewBackupHandler(backupService),
		GAS:        handler.NewGASHandler(stateService),
		WebSocket:  handler.NewWebSocketHandler(hub, stateService, cfg.CORSOrigins),
	}, middleware.RateLimitMiddleware(rateLimiter))

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStateRepository builds the configured store and returns its cleanup func
func openStateRepository(ctx context.Context, cfg *config.Config) (domain.StateRepository, func()) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ping database")
		}
		repo := postgres.NewStateRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare database schema")
		}
		log.Info().Msg("Connected to database")
		return repo, pool.Close

	case config.BackendMock:
		log.Warn().Msg("Using in-memory mock data; changes are lost on restart")
		return memory.NewMockStateRepository(), func() {}

	default:
		log.Info().Msg("Using Google Sheets backend")
		return sheets.NewStateRepository(cfg.GASEndpoint, cfg.GASTimeout), func() {}
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
