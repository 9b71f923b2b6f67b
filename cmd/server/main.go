package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/autoparts/backend/internal/application/catalog"
	diagnosisapp "github.com/autoparts/backend/internal/application/diagnosis"
	identityapp "github.com/autoparts/backend/internal/application/identity"
	orderapp "github.com/autoparts/backend/internal/application/order"
	reportapp "github.com/autoparts/backend/internal/application/report"
	"github.com/autoparts/backend/internal/infrastructure/auth"
	"github.com/autoparts/backend/internal/infrastructure/cache"
	"github.com/autoparts/backend/internal/infrastructure/config"
	infradiagnosis "github.com/autoparts/backend/internal/infrastructure/diagnosis"
	"github.com/autoparts/backend/internal/infrastructure/logger"
	"github.com/autoparts/backend/internal/infrastructure/persistence"
	"github.com/autoparts/backend/internal/infrastructure/storage"
	"github.com/autoparts/backend/internal/interfaces/http/handler"
	"github.com/autoparts/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting autoparts backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	db, err := persistence.NewPostgres(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	// Reset codes live in Redis when available, in memory otherwise
	var resetCodes identityapp.ResetCodeStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		resetCodes = cache.NewRedisResetCodeStore(client)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		memStore := cache.NewInMemoryResetCodeStore()
		defer memStore.Close()
		resetCodes = memStore
	}

	// Image storage backend
	var images catalogapp.ImageStorage
	switch cfg.Storage.Backend {
	case "s3":
		images, err = storage.NewS3ImageStorage(&cfg.Storage, log)
	default:
		images, err = storage.NewLocalImageStorage(cfg.Storage.LocalDir, cfg.Storage.BaseURL, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Damage diagnosis subprocess
	var detector diagnosisapp.Detector
	if cfg.Diagnosis.Enabled {
		detector, err = infradiagnosis.NewSubprocessDetector(&cfg.Diagnosis, log)
		if err != nil {
			log.Fatal("Failed to initialize diagnosis detector", zap.Error(err))
		}
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewBcryptHasher()
	authService := identityapp.NewAuthService(userRepo, hasher, jwtService, resetCodes, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, images, log)
	checkoutService := orderapp.NewCheckoutService(txScope, log)
	orderService := orderapp.NewService(orderRepo, log)
	reportService := reportapp.NewService(reportRepo, log)

	engine := router.New(cfg, jwtService, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Products:  handler.NewProductHandler(productService),
		Orders:    handler.NewOrderHandler(checkoutService, orderService),
		Users:     handler.NewUserHandler(userService),
		Reports:   handler.NewReportHandler(reportService),
		Diagnosis: handler.NewDiagnosisHandler(detector),
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped")
}
