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

	"github.com/SscSPs/hr_memo_app/internal/core/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/handlers"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/SscSPs/hr_memo_app/internal/platform/config"
	"github.com/SscSPs/hr_memo_app/internal/platform/migrations"
	"github.com/SscSPs/hr_memo_app/internal/platform/telemetry"
	"github.com/SscSPs/hr_memo_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/hr_memo_app/internal/repositories/memory"
	"github.com/SscSPs/hr_memo_app/internal/utils"
	"github.com/SscSPs/hr_memo_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
)

// @title HR Memo Backend API
// @version 1.0
// @description Memorandum validation workflow and employee accounts.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := telemetry.Init(ctx, telemetry.Options{
		Enabled:             cfg.OTelEnabled,
		Stdout:              cfg.OTelStdout,
		OTLPMetricsEndpoint: cfg.OTLPMetricsEndpoint,
		ServiceName:         "hr_backend",
		ServiceVersion:      cfg.TelemetryServiceVersion,
	}); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	repos, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return err
		}
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	var events portssvc.EventTracker
	if posthogClient.IsInitialized() {
		events = posthogClient
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, events)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.PosthogMiddleware(posthogClient)); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStorage builds the repositories for the configured driver. Postgres is migrated up first.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	maxWait := database.DefaultConnectTimeout
	if !cfg.EnableDBCheck {
		maxWait = time.Second
	}
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, maxWait)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations...")
	if err := migrations.Run(cfg.DatabaseURL, cfg.MigrationsPath, migrations.Up, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
