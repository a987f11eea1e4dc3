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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/triplebook/triplebook/internal/core/ports"
	"github.com/triplebook/triplebook/internal/core/services"
	"github.com/triplebook/triplebook/internal/handlers"
	"github.com/triplebook/triplebook/internal/middleware"
	"github.com/triplebook/triplebook/internal/platform/config"
	"github.com/triplebook/triplebook/internal/remote/httpdoc"
	"github.com/triplebook/triplebook/internal/remote/memdoc"
	"github.com/triplebook/triplebook/internal/repositories/database/sqlite"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	var logger *slog.Logger
	if cfg.IsProduction {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open database", slog.String("path", cfg.DatabasePath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing database", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("Database ready", slog.String("path", cfg.DatabasePath))

	repos := sqlite.NewRepositoryProvider(db)

	// The remote document store backs multi-device sync. Without a configured
	// remote the in-memory store keeps everything on this device.
	var remote ports.RemoteStore
	if cfg.RemoteURL != "" {
		remote = httpdoc.NewClient(cfg.RemoteURL, cfg.RemoteToken)
		logger.Info("Remote sync enabled", slog.String("url", cfg.RemoteURL))
	} else {
		remote = memdoc.NewStore()
	}

	container := services.NewServiceContainer(repos, remote)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background sync loop runs for the lifetime of the process.
	go container.Sync.Run(ctx, cfg.SyncInterval)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	ipLimiter := limiter.New(memory.NewStore(), limiter.Rate{
		Period: cfg.RateLimitPeriod,
		Limit:  cfg.RateLimitCount,
	})
	r.Use(middleware.RateLimit(ipLimiter))

	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
