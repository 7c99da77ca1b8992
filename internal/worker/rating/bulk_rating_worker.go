package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза после ошибки чтения
	retryBackoff    = 200 * time.Millisecond // базовая пауза между повторами
)

// BulkApplier - применение пакета рейтингов (RatingUseCase)
type BulkApplier interface {
	ApplyBulkEvent(ctx context.Context, event *domain.BulkRatingEvent) (*domain.BulkResult, error)
}

// BulkRatingWorker применяет пакеты рейтингов из stream:structure:ratings:bulk
type BulkRatingWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	applier    BulkApplier
}

// NewBulkRatingWorker создает новый BulkRatingWorker
func NewBulkRatingWorker(
	streamRepo repository.StreamRepository,
	applier BulkApplier,
	cfg worker.ConsumerConfig,
	logger *zap.Logger,
) *BulkRatingWorker {
	return &BulkRatingWorker{
		BaseWorker: worker.NewBaseWorker("bulk-rating", cfg, logger),
		streamRepo: streamRepo,
		applier:    applier,
	}
}

// Start запускает воркер
func (w *BulkRatingWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BulkRatingWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.BatchSize()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamBulkRatings, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Sleep(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает одну пачку сообщений.
// Возвращает количество прочитанных сообщений.
func (w *BulkRatingWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamBulkRatings,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.BatchSize(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	acked := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			acked = append(acked, msg.ID)
			continue
		}

		done, ok := w.apply(ctx, event)
		if !ok {
			// остановка во время повторов: сообщение остаётся в pending до повторной доставки
			logger.Info("Bulk rating update interrupted, leaving message pending",
				zap.String("message_id", msg.ID),
				zap.String("structure_id", event.StructureID.String()))
			continue
		}

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamBulkRatingsDone, done); err != nil {
			logger.Error("Failed to publish done event",
				zap.String("structure_id", event.StructureID.String()),
				zap.Error(err))
		}
		acked = append(acked, msg.ID)
	}

	if len(acked) == 0 {
		return len(messages), nil
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamBulkRatings, w.ConsumerGroup(), acked); err != nil {
		// Не критично - сообщения останутся в pending
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

// apply применяет пакет с повторами при временных ошибках и собирает done-событие.
// false - воркер остановлен во время паузы между повторами, итога нет.
func (w *BulkRatingWorker) apply(ctx context.Context, event *domain.BulkRatingEvent) (*domain.BulkRatingDoneEvent, bool) {
	logger := w.Logger().With(zap.String("structure_id", event.StructureID.String()))
	done := &domain.BulkRatingDoneEvent{StructureID: event.StructureID}

	var (
		result *domain.BulkResult
		err    error
	)
	for attempt := 0; attempt <= w.MaxRetries(); attempt++ {
		if attempt > 0 {
			if !w.Sleep(ctx, retryBackoff*time.Duration(attempt)) {
				return nil, false
			}
			logger.Warn("Retrying bulk rating update", zap.Int("attempt", attempt), zap.Error(err))
		}

		result, err = w.applier.ApplyBulkEvent(ctx, event)
		if err == nil || !retryable(err) {
			break
		}
	}

	if err != nil {
		logger.Error("Bulk rating update failed", zap.Error(err))
		done.Error = errorCode(err)
		return done, true
	}

	done.UpdatedFloors = result.UpdatedFloors
	done.UpdatedFlats = result.UpdatedFlats
	done.Errors = result.Errors
	return done, true
}

// retryable - ошибки инфраструктуры (5xx и неизвестные) повторяются, ошибки данных - нет
func retryable(err error) bool {
	appErr, ok := apperrors.As(err)
	if !ok {
		return true
	}
	return appErr.StatusCode >= 500
}

func errorCode(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.Code
	}
	return apperrors.ErrInternalServer.Code
}

// parseMessage разбирает JSON из сообщения
func parseMessage(msg domain.StreamMessage) (*domain.BulkRatingEvent, error) {
	var event domain.BulkRatingEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
