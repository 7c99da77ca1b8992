package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/identity"
	"github.com/structure-inspection/internal/usecase/dto"
)

// IdentityUseCase - выдача и проверка идентификационных номеров
type IdentityUseCase struct {
	structureRepo repository.StructureRepository
	counter       repository.SequenceCounter
	logger        *zap.Logger
	maxAttempts   int
	now           func() time.Time
}

// NewIdentityUseCase создает IdentityUseCase. counter может быть nil -
// тогда порядковый номер берётся сканом существующих номеров.
func NewIdentityUseCase(
	structureRepo repository.StructureRepository,
	counter repository.SequenceCounter,
	maxAttempts int,
	logger *zap.Logger,
) *IdentityUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &IdentityUseCase{
		structureRepo: structureRepo,
		counter:       counter,
		logger:        logger,
		maxAttempts:   maxAttempts,
		now:           time.Now,
	}
}

// Assign выдаёт новый номер для дескриптора локации. Занятый номер
// перезапрашивается не более maxAttempts раз.
func (uc *IdentityUseCase) Assign(ctx context.Context, loc identity.Location) (identity.Identity, error) {
	prefix, err := identity.Prefix(loc)
	if err != nil {
		return identity.Identity{}, err
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		seq := uc.NextSequence(ctx, prefix)

		id, err := identity.Encode(loc, seq)
		if err != nil {
			return identity.Identity{}, err
		}

		exists, err := uc.structureRepo.ExistsIdentityNumber(ctx, id.Number)
		if err != nil {
			uc.logger.Error("Failed to check identity number", zap.String("number", id.Number), zap.Error(err))
			return identity.Identity{}, apperrors.ErrDatabaseError
		}
		if !exists {
			uc.logger.Info("Identity number assigned",
				zap.String("number", id.Number),
				zap.Int("attempt", attempt))
			return id, nil
		}

		uc.logger.Warn("Identity number already taken, retrying",
			zap.String("number", id.Number),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", uc.maxAttempts))
	}

	return identity.Identity{}, apperrors.ErrDuplicateIdentity.WithDetails(map[string]interface{}{
		"prefix":   prefix,
		"attempts": uc.maxAttempts,
	})
}

// NextSequence - следующий порядковый номер для префикса.
// Порядок: атомарный счётчик, скан максимума, псевдономер из времени.
// Сбой не возвращается вызывающему, а логируется как деградация.
func (uc *IdentityUseCase) NextSequence(ctx context.Context, prefix string) int {
	if uc.counter != nil {
		seq, err := uc.counter.Next(ctx, prefix, func(ctx context.Context) (int, error) {
			next, err := uc.scanNext(ctx, prefix)
			if err != nil {
				return 0, err
			}
			return next - 1, nil
		})
		if err == nil && seq >= 1 && seq <= identity.MaxSequence {
			return seq
		}
		uc.logger.Warn("Sequence counter unavailable, falling back to scan",
			zap.String("prefix", prefix),
			zap.Int("sequence", seq),
			zap.Error(err))
	}

	seq, err := uc.scanNext(ctx, prefix)
	if err == nil {
		return seq
	}

	fallback := identity.FallbackSequence(uc.now())
	uc.logger.Warn("Sequence resolution failed, using timestamp fallback",
		zap.String("prefix", prefix),
		zap.Int("fallback_sequence", fallback),
		zap.Error(err))
	return fallback
}

// scanNext - максимум среди номеров с префиксом плюс один
func (uc *IdentityUseCase) scanNext(ctx context.Context, prefix string) (int, error) {
	numbers, err := uc.structureRepo.ListIdentityNumbersByPrefix(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("scan identity numbers: %w", err)
	}
	return identity.NextSequence(prefix, numbers)
}

// Decode разбирает номер на поля без сверки с таблицами кодов
func (uc *IdentityUseCase) Decode(number string) (*dto.IdentityResponse, error) {
	c, err := identity.Decode(number)
	if err != nil {
		return nil, err
	}

	return &dto.IdentityResponse{
		IdentityNumber:   number,
		Components:       c,
		TypesOfStructure: identity.TypeName(c.TypeCode),
	}, nil
}

// CheckAvailable проверяет длину номера и что его не носит ни одна структура
func (uc *IdentityUseCase) CheckAvailable(ctx context.Context, number string) (*dto.IdentityCheckResponse, error) {
	number = identity.Normalize(number)

	c, err := identity.Decode(number)
	if err != nil {
		return nil, err
	}

	exists, err := uc.structureRepo.ExistsIdentityNumber(ctx, number)
	if err != nil {
		uc.logger.Error("Failed to check identity number", zap.String("number", number), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if exists {
		return nil, apperrors.ErrDuplicateIdentity.WithDetails(map[string]interface{}{
			"identity_number": number,
		})
	}

	return &dto.IdentityCheckResponse{
		IdentityNumber: number,
		Components:     c,
		Available:      true,
	}, nil
}
