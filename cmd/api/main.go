package main

// @title Structure Inspection API
// @version 1.0.0
// @description Сервис учёта обследований зданий: структура, этажи, помещения и рейтинги компонентов.
// @description
// @description Основные возможности:
// @description - Пошаговое заполнение структуры и выдача 17-символьного идентификационного номера
// @description - Рейтинги конструктивных и неконструктивных компонентов помещений
// @description - Пакетное обновление рейтингов, синхронно и через Redis Streams
// @description - Прогресс заполнения и отправка структуры
// @description - Статистика по аккаунту

// @contact.name API Support
// @contact.email support@structure-inspection.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/structure-inspection/docs"
	"github.com/structure-inspection/internal/config"
	httpDelivery "github.com/structure-inspection/internal/delivery/http"
	"github.com/structure-inspection/internal/delivery/http/handler"
	"github.com/structure-inspection/internal/domain/repository"
	"github.com/structure-inspection/internal/pkg/logger"
	"github.com/structure-inspection/internal/repository/cache"
	"github.com/structure-inspection/internal/repository/postgres"
	redisRepo "github.com/structure-inspection/internal/repository/redis"
	"github.com/structure-inspection/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "structure-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Structure Inspection API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("identity_counter", cfg.Identity.CounterEnabled),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	structureRepo := postgres.NewStructureRepository(db)
	statsRepo := postgres.NewStatsRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	// Без счётчика номер выдаётся сканом максимума по префиксу
	var sequenceCounter repository.SequenceCounter
	if cfg.Identity.CounterEnabled {
		sequenceCounter = cache.NewSequenceCounter(redisClient)
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	identityUC := usecase.NewIdentityUseCase(
		structureRepo,
		sequenceCounter,
		cfg.Identity.MaxAllocAttempts,
		log,
	)

	structureUC := usecase.NewStructureUseCase(
		structureRepo,
		cacheRepo,
		identityUC,
		log,
		cfg.Cache.StructureCacheTTL,
		cfg.Identity.GeohashPrecision,
	)

	ratingUC := usecase.NewRatingUseCase(structureUC, streamRepo, log)

	statsUC := usecase.NewStatsUseCase(
		statsRepo,
		cacheRepo,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	structureHandler := handler.NewStructureHandler(structureUC, log)
	ratingHandler := handler.NewRatingHandler(ratingUC, log)
	identityHandler := handler.NewIdentityHandler(identityUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		structureHandler,
		ratingHandler,
		identityHandler,
		statsHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
