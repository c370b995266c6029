package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/retailops/retail-suite/internal/bootstrap"
	"github.com/retailops/retail-suite/internal/core/services"
	"github.com/retailops/retail-suite/internal/handlers"
	"github.com/retailops/retail-suite/internal/middleware"
	"github.com/retailops/retail-suite/internal/repositories/database/pgsql"
	"github.com/retailops/retail-suite/pkg/config"
	"github.com/retailops/retail-suite/pkg/database"
)

// @title Product Service API
// @version 1.0
// @description Warehouse product catalog and stock service.

// @host localhost:8081
// @BasePath /api/warehouse
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

	if err := bootstrap.RunMigrations(logger, cfg.DatabaseURL, "file://migrations/product"); err != nil {
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

	productService := services.NewProductService(pgsql.NewPgxProductRepository(dbPool))

	handlers.RegisterHealthRoutes(r, dbPool)
	api := r.Group("/api/warehouse")
	handlers.RegisterProductRoutes(api, productService)

	logger.Info("Product service starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
