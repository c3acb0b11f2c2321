package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resort-pms/service-pricing/internal/application"
	"github.com/resort-pms/service-pricing/internal/config"
	"github.com/resort-pms/service-pricing/internal/events"
	"github.com/resort-pms/service-pricing/internal/handler"
	"github.com/resort-pms/service-pricing/internal/pkg/database"
	"github.com/resort-pms/service-pricing/internal/pkg/health"
	"github.com/resort-pms/service-pricing/internal/pkg/kafka"
	"github.com/resort-pms/service-pricing/internal/pkg/logger"
	"github.com/resort-pms/service-pricing/internal/pkg/middleware"
	"github.com/resort-pms/service-pricing/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-pricing")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-pricing",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&repository.RoomTypeModel{},
		&repository.AnnualBaseRateModel{},
		&repository.SeasonalRateModel{},
		&repository.RateOverrideModel{},
		&repository.RestrictionModel{},
		&repository.SeasonSettingsModel{},
		&repository.SeasonAssignmentModel{},
		&repository.MealPlanModel{},
		&repository.ActivityModel{},
		&repository.PricingConfigModel{},
		&repository.PackageConfigModel{},
		&repository.PromotionModel{},
		&repository.SurchargeModel{},
		&repository.TaxModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Initialize Kafka producer and event publisher
	kafkaProducer := kafka.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = kafkaProducer.Close() }()
	publisher := events.NewPublisher(kafkaProducer, log)

	// Initialize repositories
	roomTypeRepo := repository.NewGormRoomTypeRepository(db)
	rateRepo := repository.NewGormRateRepository(db)
	overrideRepo := repository.NewGormOverrideRepository(db)
	restrictionRepo := repository.NewGormRestrictionRepository(db)
	seasonRepo := repository.NewGormSeasonRepository(db)
	catalogRepo := repository.NewGormCatalogRepository(db)
	adjustmentRepo := repository.NewGormAdjustmentRepository(db)

	// Initialize application services
	rateService := application.NewRateService(
		roomTypeRepo,
		rateRepo,
		overrideRepo,
		restrictionRepo,
		seasonRepo,
		log,
	)
	quoteService := application.NewQuoteService(rateService, adjustmentRepo, seasonRepo, log)
	packageService := application.NewPackageService(roomTypeRepo, rateRepo, seasonRepo, catalogRepo, log)
	bulkService := application.NewBulkService(roomTypeRepo, rateRepo, publisher, log)
	catalogService := application.NewCatalogService(
		roomTypeRepo,
		catalogRepo,
		seasonRepo,
		adjustmentRepo,
		publisher,
		log,
	)

	// Initialize HTTP handlers
	rateHandler := handler.NewRateHandler(rateService, quoteService, packageService)
	bulkHandler := handler.NewBulkHandler(bulkService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-pricing")
	healthHandler.RegisterRoutes(router)

	// Register routes
	rateHandler.RegisterRoutes(&router.RouterGroup)
	bulkHandler.RegisterRoutes(&router.RouterGroup)
	catalogHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-pricing...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-pricing stopped")
}
