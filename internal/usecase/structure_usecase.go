package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/identity"
	"github.com/structure-inspection/internal/pkg/utils"
	"github.com/structure-inspection/internal/usecase/dto"
)

// defaultNearbyLimit - сколько структур отдаёт поиск рядом по умолчанию
const defaultNearbyLimit = 50

// StructureUseCase - жизненный цикл структуры: экраны ввода, этажи, помещения, отправка
type StructureUseCase struct {
	structureRepo    repository.StructureRepository
	cacheRepo        repository.CacheRepository
	identityUC       *IdentityUseCase
	logger           *zap.Logger
	cacheTTL         time.Duration
	geohashPrecision uint
	now              func() time.Time
}

// NewStructureUseCase создает StructureUseCase
func NewStructureUseCase(
	structureRepo repository.StructureRepository,
	cacheRepo repository.CacheRepository,
	identityUC *IdentityUseCase,
	logger *zap.Logger,
	cacheTTL time.Duration,
	geohashPrecision uint,
) *StructureUseCase {
	if geohashPrecision == 0 {
		geohashPrecision = 6
	}
	return &StructureUseCase{
		structureRepo:    structureRepo,
		cacheRepo:        cacheRepo,
		identityUC:       identityUC,
		logger:           logger,
		cacheTTL:         cacheTTL,
		geohashPrecision: geohashPrecision,
		now:              time.Now,
	}
}

// load читает структуру через кеш и проверяет владельца
func (uc *StructureUseCase) load(ctx context.Context, ownerID, id uuid.UUID) (*domain.Structure, error) {
	s, err := uc.cacheRepo.GetStructure(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to get structure from cache", zap.String("uid", id.String()), zap.Error(err))
	}

	if s == nil {
		s, err = uc.structureRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := uc.cacheRepo.SetStructure(ctx, s, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache structure", zap.String("uid", id.String()), zap.Error(err))
		}
	}

	if s.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return s, nil
}

// save записывает документ целиком и сбрасывает кеш
func (uc *StructureUseCase) save(ctx context.Context, s *domain.Structure) error {
	s.Touch(uc.now())
	if err := uc.structureRepo.Save(ctx, s); err != nil {
		return err
	}
	uc.invalidate(ctx, s)
	return nil
}

func (uc *StructureUseCase) invalidate(ctx context.Context, s *domain.Structure) {
	if err := uc.cacheRepo.InvalidateStructure(ctx, s.UID, s.OwnerID); err != nil {
		uc.logger.Warn("Failed to invalidate structure cache", zap.String("uid", s.UID.String()), zap.Error(err))
	}
}

// advance переводит статус вперёд по жизненному циклу; откат не выполняется
func advance(s *domain.Structure, target domain.StructureStatus) {
	if statusRank(target) > statusRank(s.Status) {
		s.Status = target
	}
}

func statusRank(st domain.StructureStatus) int {
	for i, v := range domain.AllStatuses {
		if v == st {
			return i
		}
	}
	return -1
}

// Create создает черновик без номера и этажей
func (uc *StructureUseCase) Create(ctx context.Context, ownerID uuid.UUID) (*domain.Structure, error) {
	s := domain.NewStructure(ownerID, uc.now())
	if err := uc.structureRepo.Create(ctx, s); err != nil {
		uc.logger.Error("Failed to create structure", zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, s)

	uc.logger.Info("Structure created",
		zap.String("uid", s.UID.String()),
		zap.String("owner_id", ownerID.String()))
	return s, nil
}

// Get возвращает структуру владельца
func (uc *StructureUseCase) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Structure, error) {
	return uc.load(ctx, ownerID, id)
}

// List возвращает структуры владельца с фильтром по статусам
func (uc *StructureUseCase) List(ctx context.Context, ownerID uuid.UUID, req dto.ListStructuresRequest) (*dto.StructureListResponse, error) {
	statuses := make([]domain.StructureStatus, 0, len(req.Statuses))
	for _, st := range req.Statuses {
		status := domain.StructureStatus(st)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidRequest.WithMessage("unknown status %q", st)
		}
		statuses = append(statuses, status)
	}

	structures, total, err := uc.structureRepo.List(ctx, repository.StructureFilter{
		OwnerID:  ownerID,
		Statuses: statuses,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		uc.logger.Error("Failed to list structures", zap.Error(err))
		return nil, err
	}

	return &dto.StructureListResponse{
		Structures: structures,
		Total:      total,
	}, nil
}

// SaveLocation сохраняет экран локации. Номер выдаётся один раз и дальше не меняется.
func (uc *StructureUseCase) SaveLocation(ctx context.Context, ownerID, id uuid.UUID, req dto.LocationRequest) (*domain.Structure, error) {
	if req.Latitude == nil || req.Longitude == nil || !utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if s.Identity.IdentityNumber == "" {
		loc := identity.Location{
			StateCode:       req.StateCode,
			DistrictCode:    req.DistrictCode,
			CityCode:        req.CityCode,
			LocationCode:    req.LocationCode,
			TypeOfStructure: req.TypeOfStructure,
		}

		assigned, err := uc.identityUC.Assign(ctx, loc)
		if err != nil {
			return nil, err
		}

		c := assigned.Components
		s.Identity = domain.StructureIdentity{
			IdentityNumber:    assigned.Number,
			StateCode:         c.StateCode,
			DistrictCode:      c.DistrictCode,
			CityCode:          c.CityCode,
			LocationCode:      c.LocationCode,
			StructureSequence: c.StructureSequence,
			TypeOfStructure:   req.TypeOfStructure,
			TypeCode:          c.TypeCode,
		}
	} else {
		uc.logger.Debug("Identity number already assigned, keeping it",
			zap.String("uid", s.UID.String()),
			zap.String("number", s.Identity.IdentityNumber))
	}

	lat, lon := *req.Latitude, *req.Longitude
	s.Location = &domain.StructureLocation{
		Latitude:  &lat,
		Longitude: &lon,
		Address:   req.Address,
		Geohash:   utils.Geohash(lat, lon),
	}
	advance(s, domain.StatusLocationCompleted)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveAdministration сохраняет экран административных данных
func (uc *StructureUseCase) SaveAdministration(ctx context.Context, ownerID, id uuid.UUID, req dto.AdministrationRequest) (*domain.Structure, error) {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	s.Administration = &domain.Administration{
		ClientName:    req.ClientName,
		CustodianName: req.CustodianName,
		EngineerName:  req.EngineerName,
		ContactDetail: req.ContactDetail,
		Email:         req.Email,
	}
	advance(s, domain.StatusAdminCompleted)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveGeometric сохраняет экран геометрии
func (uc *StructureUseCase) SaveGeometric(ctx context.Context, ownerID, id uuid.UUID, req dto.GeometricRequest) (*domain.Structure, error) {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	s.Geometric = &domain.GeometricDetails{
		NumberOfFloors: req.NumberOfFloors,
		Width:          req.Width,
		Length:         req.Length,
		Height:         req.Height,
	}
	advance(s, domain.StatusGeometricCompleted)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddFloor добавляет этаж в конец списка
func (uc *StructureUseCase) AddFloor(ctx context.Context, ownerID, id uuid.UUID, req dto.FloorRequest) (*domain.Floor, error) {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	floor := domain.NewFloor(req.FloorNumber, req.FloorType, uc.now())
	floor.Label = req.Label
	floor.Height = req.Height
	floor.Area = req.Area
	floor.Notes = req.Notes
	s.Floors = append(s.Floors, floor)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return &floor, nil
}

// DeleteFloor удаляет этаж с помещениями
func (uc *StructureUseCase) DeleteFloor(ctx context.Context, ownerID, id, floorID uuid.UUID) error {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if !s.RemoveFloor(floorID) {
		return apperrors.ErrFloorNotFound
	}
	return uc.save(ctx, s)
}

// AddFlat добавляет помещение на этаж
func (uc *StructureUseCase) AddFlat(ctx context.Context, ownerID, id, floorID uuid.UUID, req dto.FlatRequest) (*domain.Flat, error) {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	floor := s.FindFloor(floorID)
	if floor == nil {
		return nil, apperrors.ErrFloorNotFound
	}

	flat := domain.NewFlat(req.FlatNumber, domain.FlatType(req.FlatType), uc.now())
	flat.Area = req.Area
	flat.Direction = req.Direction
	flat.OccupancyStatus = req.OccupancyStatus
	flat.Notes = req.Notes
	floor.Flats = append(floor.Flats, flat)

	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return &flat, nil
}

// DeleteFlat удаляет помещение
func (uc *StructureUseCase) DeleteFlat(ctx context.Context, ownerID, id, floorID, flatID uuid.UUID) error {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return err
	}

	floor := s.FindFloor(floorID)
	if floor == nil {
		return apperrors.ErrFloorNotFound
	}
	if !floor.RemoveFlat(flatID) {
		return apperrors.ErrFlatNotFound
	}
	return uc.save(ctx, s)
}

// GetFlat возвращает помещение; отсутствие этажа или помещения - ошибка
func (uc *StructureUseCase) GetFlat(ctx context.Context, ownerID, id, floorID, flatID uuid.UUID) (*domain.Flat, error) {
	s, err := uc.load(ctx, ownerID, id)
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
	return flat, nil
}

// Progress пересчитывает заполненность
func (uc *StructureUseCase) Progress(ctx context.Context, ownerID, id uuid.UUID) (*domain.Progress, error) {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	p := s.Progress()
	return &p, nil
}

// Submit отправляет структуру; разрешено только при заполненности 100%
func (uc *StructureUseCase) Submit(ctx context.Context, ownerID, id uuid.UUID) (*dto.SubmitResponse, error) {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	p := s.Progress()
	if !p.IsComplete() {
		return nil, apperrors.ErrIncompleteStructure.WithDetails(map[string]interface{}{
			"percentage": p.OverallPercentage,
			"missing":    p.Missing(),
		})
	}

	s.Status = domain.StatusSubmitted
	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Info("Structure submitted",
		zap.String("uid", s.UID.String()),
		zap.String("number", s.Identity.IdentityNumber))

	return &dto.SubmitResponse{
		UID:      s.UID,
		Status:   s.Status,
		Progress: p,
	}, nil
}

// Delete удаляет структуру владельца
func (uc *StructureUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	s, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := uc.structureRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, s)
	return nil
}

// Nearby ищет структуры владельца в ячейке geohash точки и восьми соседних
func (uc *StructureUseCase) Nearby(ctx context.Context, ownerID uuid.UUID, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	precision := req.Precision
	if precision == 0 {
		precision = uc.geohashPrecision
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultNearbyLimit
	}

	cells := utils.GeohashNeighbors(req.Lat, req.Lon, precision)

	structures, err := uc.structureRepo.ListByGeohashPrefixes(ctx, ownerID, cells, limit)
	if err != nil {
		uc.logger.Error("Failed to search nearby structures", zap.Error(err))
		return nil, err
	}

	result := make([]dto.NearbyStructure, 0, len(structures))
	for _, s := range structures {
		if s.Location == nil || s.Location.Latitude == nil || s.Location.Longitude == nil {
			continue
		}
		lat, lon := *s.Location.Latitude, *s.Location.Longitude
		result = append(result, dto.NearbyStructure{
			UID:            s.UID,
			IdentityNumber: s.Identity.IdentityNumber,
			Status:         s.Status,
			Lat:            lat,
			Lon:            lon,
			Geohash:        s.Location.Geohash,
			DistanceKm:     utils.HaversineDistance(req.Lat, req.Lon, lat, lon),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	return &dto.NearbyResponse{
		Structures: result,
		Cells:      cells,
		Total:      len(result),
	}, nil
}
