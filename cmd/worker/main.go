package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/structure-inspection/internal/config"
	"github.com/structure-inspection/internal/domain/repository"
	"github.com/structure-inspection/internal/pkg/logger"
	"github.com/structure-inspection/internal/repository/cache"
	"github.com/structure-inspection/internal/repository/postgres"
	redisRepo "github.com/structure-inspection/internal/repository/redis"
	"github.com/structure-inspection/internal/usecase"
	"github.com/structure-inspection/internal/worker"
	"github.com/structure-inspection/internal/worker/rating"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "structure-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bulk Rating Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	structureRepo := postgres.NewStructureRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	var sequenceCounter repository.SequenceCounter
	if cfg.Identity.CounterEnabled {
		sequenceCounter = cache.NewSequenceCounter(redisClient)
	}

	// 6. Initialize use cases
	identityUC := usecase.NewIdentityUseCase(structureRepo, sequenceCounter, cfg.Identity.MaxAllocAttempts, log)
	structureUC := usecase.NewStructureUseCase(
		structureRepo,
		cacheRepo,
		identityUC,
		log,
		cfg.Cache.StructureCacheTTL,
		cfg.Identity.GeohashPrecision,
	)
	ratingUC := usecase.NewRatingUseCase(structureUC, streamRepo, log)

	// 7. Initialize workers
	bulkWorker := rating.NewBulkRatingWorker(
		streamRepo,
		ratingUC,
		worker.ConsumerConfig{
			Group:      cfg.Worker.ConsumerGroup,
			BatchSize:  cfg.Worker.BatchSize,
			MaxRetries: cfg.Worker.MaxRetries,
		},
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(bulkWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
