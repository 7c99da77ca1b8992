package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
)

// MockStructureRepository is a mock of StructureRepository
type MockStructureRepository struct {
	mock.Mock
}

func (m *MockStructureRepository) Create(ctx context.Context, s *domain.Structure) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Structure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Structure), args.Error(1)
}

func (m *MockStructureRepository) Save(ctx context.Context, s *domain.Structure) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStructureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStructureRepository) List(ctx context.Context, filter repository.StructureFilter) ([]*domain.Structure, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Structure), args.Int(1), args.Error(2)
}

func (m *MockStructureRepository) ExistsIdentityNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockStructureRepository) ListIdentityNumbersByPrefix(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStructureRepository) ListByGeohashPrefixes(ctx context.Context, ownerID uuid.UUID, prefixes []string, limit int) ([]*domain.Structure, error) {
	args := m.Called(ctx, ownerID, prefixes, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Structure), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStructure(ctx context.Context, id uuid.UUID) (*domain.Structure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Structure), args.Error(1)
}

func (m *MockCacheRepository) SetStructure(ctx context.Context, s *domain.Structure, ttl time.Duration) error {
	args := m.Called(ctx, s, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateStructure(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context, ownerID uuid.UUID) (*domain.Statistics, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, ownerID uuid.UUID, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, ownerID, stats, ttl)
	return args.Error(0)
}

// missCache - кеш, который всегда промахивается и принимает запись
func missCache() *MockCacheRepository {
	m := &MockCacheRepository{}
	m.On("GetStructure", mock.Anything, mock.Anything).Return(nil, nil)
	m.On("SetStructure", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.On("InvalidateStructure", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return m
}

// MockSequenceCounter is a mock of SequenceCounter
type MockSequenceCounter struct {
	mock.Mock
}

func (m *MockSequenceCounter) Next(ctx context.Context, prefix string, seed repository.SeedFunc) (int, error) {
	args := m.Called(ctx, prefix, seed)
	return args.Int(0), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStatistics(ctx context.Context, ownerID uuid.UUID) (*domain.Statistics, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func ptrFloat64(f float64) *float64 {
	return &f
}

func ptrInt(i int) *int {
	return &i
}
