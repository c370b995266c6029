package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/retailops/retail-suite/internal/adapters/events"
	"github.com/retailops/retail-suite/internal/adapters/remote"
	"github.com/retailops/retail-suite/internal/bootstrap"
	"github.com/retailops/retail-suite/internal/core/services"
	"github.com/retailops/retail-suite/internal/handlers"
	"github.com/retailops/retail-suite/internal/middleware"
	"github.com/retailops/retail-suite/internal/repositories/database/pgsql"
	"github.com/retailops/retail-suite/pkg/config"
	"github.com/retailops/retail-suite/pkg/database"
)

// @title Sales Service API
// @version 1.0
// @description Sales capture service. Orchestrates product stock checks and accounting postings.

// @host localhost:8080
// @BasePath /api
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := bootstrap.RunMigrations(logger, cfg.DatabaseURL, "file://migrations/sales"); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	productClient := remote.NewProductClient(cfg.ProductServiceURL, cfg.RemoteTimeout)
	defer productClient.Close()
	ledgerClient := remote.NewLedgerClient(cfg.AccountingServiceURL, cfg.RemoteTimeout)
	defer ledgerClient.Close()

	saleService := services.NewSaleService(
		pgsql.NewPgxSaleRepository(dbPool),
		productClient,
		remote.NewRetryingLedgerGateway(ledgerClient),
		events.NewLogSink(),
	)

	handlers.RegisterHealthRoutes(r, dbPool)
	api := r.Group("/api", middleware.RateLimit(ipLimiter))
	handlers.RegisterSaleRoutes(api, saleService)

	logger.Info("Sales service starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
