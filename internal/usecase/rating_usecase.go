package usecase

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/validator"
	"github.com/structure-inspection/internal/usecase/dto"
)

// RatingUseCase - запись рейтингов: одно помещение или пакет
type RatingUseCase struct {
	structures *StructureUseCase
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

// NewRatingUseCase создает RatingUseCase. streamRepo нужен только для EnqueueBulk.
func NewRatingUseCase(
	structures *StructureUseCase,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *RatingUseCase {
	return &RatingUseCase{
		structures: structures,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// checkRatings проверяет диапазон каждого рейтинга в группе
func checkRatings(group map[string]domain.ComponentUpdate) error {
	names := make([]string, 0, len(group))
	for name, u := range group {
		if u.Rating != nil && !domain.ValidRating(*u.Rating) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return apperrors.ErrInvalidRating.WithDetails(map[string]interface{}{
		"components": names,
	})
}

// unknownComponents - имена, которых нет в группе
func unknownComponents(group map[string]domain.ComponentUpdate, known []string) []string {
	var unknown []string
	for name := range group {
		found := false
		for _, k := range known {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// UpdateFlatRatings перезаписывает указанные компоненты помещения и пересчитывает
// производные поля помещения целиком
func (uc *RatingUseCase) UpdateFlatRatings(
	ctx context.Context,
	ownerID, structureID, floorID, flatID uuid.UUID,
	req dto.FlatRatingsRequest,
) (*dto.FlatRatingsResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.ErrInvalidRequest.WithMessage("no rating groups supplied")
	}
	if err := checkRatings(req.Structural); err != nil {
		return nil, err
	}
	if err := checkRatings(req.NonStructural); err != nil {
		return nil, err
	}

	unknown := append(
		unknownComponents(req.Structural, domain.StructuralComponents),
		unknownComponents(req.NonStructural, domain.NonStructuralComponents)...,
	)
	if len(unknown) > 0 {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"unknown_components": unknown,
		})
	}

	s, err := uc.structures.load(ctx, ownerID, structureID)
	if err != nil {
		return nil, err
	}

	floor := s.FindFloor(floorID)
	if floor == nil {
		return nil, apperrors.ErrFloorNotFound
	}
	flat := floor.FindFlat(flatID)
	if flat == nil {
		return nil, apperrors.ErrFlatNotFound
	}

	res := flat.ApplyRatings(req.FlatRatingUpdate, uc.structures.now())
	s.Status = domain.StatusRatingsInProgress

	if err := uc.structures.save(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Debug("Flat ratings updated",
		zap.String("structure_id", structureID.String()),
		zap.String("flat_id", flatID.String()),
		zap.Strings("applied", res.Applied))

	return &dto.FlatRatingsResponse{
		Flat:    flat,
		Applied: res.Applied,
	}, nil
}

// validateBulk проверяет все рейтинги пакета до применения
func validateBulk(floors []domain.BulkFloorUpdate) error {
	for _, fu := range floors {
		for _, flu := range fu.Flats {
			if err := checkRatings(flu.Structural); err != nil {
				return err
			}
			if err := checkRatings(flu.NonStructural); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplyBulk применяет пакет и сохраняет структуру один раз. Ненайденные
// этажи и помещения попадают в errors, успешные обновления сохраняются.
func (uc *RatingUseCase) ApplyBulk(ctx context.Context, ownerID, structureID uuid.UUID, req dto.BulkRatingsRequest) (*domain.BulkResult, error) {
	if err := validateBulk(req.Floors); err != nil {
		return nil, err
	}

	s, err := uc.structures.load(ctx, ownerID, structureID)
	if err != nil {
		return nil, err
	}

	result := s.ApplyBulkUpdate(req.Floors, uc.structures.now())

	if err := uc.structures.save(ctx, s); err != nil {
		return nil, err
	}

	if result.Partial() {
		uc.logger.Warn("Bulk rating update applied partially",
			zap.String("structure_id", structureID.String()),
			zap.Int("updated_flats", result.UpdatedFlats),
			zap.Strings("errors", result.Errors))
	} else {
		uc.logger.Info("Bulk rating update applied",
			zap.String("structure_id", structureID.String()),
			zap.Int("updated_floors", result.UpdatedFloors),
			zap.Int("updated_flats", result.UpdatedFlats))
	}

	return &result, nil
}

// EnqueueBulk проверяет владельца и ставит пакет в стрим для воркера
func (uc *RatingUseCase) EnqueueBulk(ctx context.Context, ownerID, structureID uuid.UUID, req dto.BulkRatingsRequest) (*dto.BulkAcceptedResponse, error) {
	if uc.streamRepo == nil {
		return nil, apperrors.ErrInternalServer.WithMessage("bulk queue is not configured")
	}
	if err := validateBulk(req.Floors); err != nil {
		return nil, err
	}
	if _, err := uc.structures.load(ctx, ownerID, structureID); err != nil {
		return nil, err
	}

	event := &domain.BulkRatingEvent{
		StructureID: structureID,
		OwnerID:     ownerID,
		Floors:      req.Floors,
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamBulkRatings, event); err != nil {
		uc.logger.Error("Failed to enqueue bulk rating update", zap.Error(err))
		return nil, apperrors.ErrCacheError
	}

	return &dto.BulkAcceptedResponse{
		StructureID: structureID,
		Stream:      domain.StreamBulkRatings,
	}, nil
}

// ApplyBulkEvent применяет пакет из стрима; владелец берётся из события
func (uc *RatingUseCase) ApplyBulkEvent(ctx context.Context, event *domain.BulkRatingEvent) (*domain.BulkResult, error) {
	req := dto.BulkRatingsRequest{Floors: event.Floors}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return uc.ApplyBulk(ctx, event.OwnerID, event.StructureID, req)
}
