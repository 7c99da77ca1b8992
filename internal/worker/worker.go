package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Worker интерфейс для всех воркеров
type Worker interface {
	// Start запускает воркер и блокируется до остановки
	Start(ctx context.Context) error

	// Stop останавливает воркер
	Stop() error

	// Name возвращает имя воркера
	Name() string
}

// ConsumerConfig - параметры чтения из consumer group
type ConsumerConfig struct {
	Group      string
	BatchSize  int
	MaxRetries int
}

// BaseWorker содержит общую логику stream-воркеров
type BaseWorker struct {
	name     string
	consumer string
	cfg      ConsumerConfig
	logger   *zap.Logger
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewBaseWorker создает новый BaseWorker. Имя consumer - hostname-pid,
// чтобы несколько реплик читали одну группу без пересечений.
func NewBaseWorker(name string, cfg ConsumerConfig, logger *zap.Logger) *BaseWorker {
	hostname, _ := os.Hostname()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &BaseWorker{
		name:     name,
		consumer: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		cfg:      cfg,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Stop останавливает воркер; повторный вызов безопасен
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Sleep ждёт d. false - если за это время пришёл Stop или отменён ctx.
func (w *BaseWorker) Sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-w.stopChan:
		return false
	case <-ctx.Done():
		return false
	}
}

// ConsumerGroup возвращает имя consumer group
func (w *BaseWorker) ConsumerGroup() string {
	return w.cfg.Group
}

// ConsumerName возвращает имя consumer внутри группы
func (w *BaseWorker) ConsumerName() string {
	return w.consumer
}

// BatchSize - сколько сообщений читать за раз
func (w *BaseWorker) BatchSize() int {
	return w.cfg.BatchSize
}

// MaxRetries - повторы при временной ошибке обработки сообщения
func (w *BaseWorker) MaxRetries() int {
	return w.cfg.MaxRetries
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
