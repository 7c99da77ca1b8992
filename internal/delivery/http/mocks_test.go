package http_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
)

type MockStructureRepository struct {
	mock.Mock
}

func (m *MockStructureRepository) Create(ctx context.Context, s *domain.Structure) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Structure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Structure), args.Error(1)
}

func (m *MockStructureRepository) Save(ctx context.Context, s *domain.Structure) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStructureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
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

// nopCache - кеш, который всегда промахивается
type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (nopCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (nopCache) Delete(context.Context, string) error {
	return nil
}

func (nopCache) GetStructure(context.Context, uuid.UUID) (*domain.Structure, error) {
	return nil, nil
}

func (nopCache) SetStructure(context.Context, *domain.Structure, time.Duration) error {
	return nil
}

func (nopCache) InvalidateStructure(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (nopCache) GetStats(context.Context, uuid.UUID) (*domain.Statistics, error) {
	return nil, nil
}

func (nopCache) SetStats(context.Context, uuid.UUID, *domain.Statistics, time.Duration) error {
	return nil
}

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
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	return m.Called(ctx, stream, group, messageIDs).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

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
