package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/usecase"
	"github.com/structure-inspection/internal/usecase/dto"
)

type structureFixture struct {
	repo  *MockStructureRepository
	cache *MockCacheRepository
	uc    *usecase.StructureUseCase
}

func newStructureFixture() *structureFixture {
	repo := &MockStructureRepository{}
	cache := missCache()
	identityUC := usecase.NewIdentityUseCase(repo, nil, 3, zap.NewNop())
	return &structureFixture{
		repo:  repo,
		cache: cache,
		uc:    usecase.NewStructureUseCase(repo, cache, identityUC, zap.NewNop(), time.Minute, 6),
	}
}

// stored регистрирует структуру в моке хранилища
func (f *structureFixture) stored(s *domain.Structure) {
	f.repo.On("GetByID", mock.Anything, s.UID).Return(s, nil)
	f.repo.On("Save", mock.Anything, s).Return(nil)
}

// readyStructure - структура, у которой выполнены все этапы
func readyStructure(owner uuid.UUID) *domain.Structure {
	now := time.Now()
	s := domain.NewStructure(owner, now)
	s.Identity.IdentityNumber = "KA01BANGBG00007RS"
	s.Location = &domain.StructureLocation{Latitude: ptrFloat64(12.97), Longitude: ptrFloat64(77.59)}
	s.Administration = &domain.Administration{ClientName: "ACME", Email: "owner@acme.test"}
	s.Geometric = &domain.GeometricDetails{NumberOfFloors: 1, Width: ptrFloat64(10), Height: ptrFloat64(3)}

	floor := domain.NewFloor(1, "residential", now)
	flat := domain.NewFlat("101", domain.FlatType2BHK, now)
	flat.ApplyRatings(domain.FlatRatingUpdate{
		Structural:    map[string]domain.ComponentUpdate{domain.ComponentBeams: {Rating: ptrInt(4)}},
		NonStructural: map[string]domain.ComponentUpdate{domain.ComponentLifts: {Rating: ptrInt(3)}},
	}, now)
	floor.Flats = append(floor.Flats, flat)
	s.Floors = append(s.Floors, floor)
	s.Status = domain.StatusRatingsInProgress
	return s
}

func locationRequest() dto.LocationRequest {
	return dto.LocationRequest{
		StateCode:       "KA",
		DistrictCode:    "01",
		CityCode:        "BANG",
		LocationCode:    "BG",
		TypeOfStructure: "residential",
		Latitude:        ptrFloat64(12.9716),
		Longitude:       ptrFloat64(77.5946),
		Address:         "MG Road",
	}
}

func TestStructureUseCase_Create(t *testing.T) {
	f := newStructureFixture()
	owner := uuid.New()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Structure")).Return(nil)

	s, err := f.uc.Create(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, owner, s.OwnerID)
	assert.Equal(t, domain.StatusDraft, s.Status)
	assert.Empty(t, s.Identity.IdentityNumber)
	assert.Empty(t, s.Floors)
	f.cache.AssertCalled(t, "InvalidateStructure", mock.Anything, s.UID, owner)
}

func TestStructureUseCase_Get(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("loads from store and caches", func(t *testing.T) {
		f := newStructureFixture()
		s := domain.NewStructure(owner, time.Now())
		f.stored(s)

		got, err := f.uc.Get(ctx, owner, s.UID)

		require.NoError(t, err)
		assert.Equal(t, s.UID, got.UID)
		f.cache.AssertCalled(t, "SetStructure", mock.Anything, s, time.Minute)
	})

	t.Run("cache hit skips store", func(t *testing.T) {
		repo := &MockStructureRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewStructureUseCase(repo, cache, nil, zap.NewNop(), time.Minute, 6)

		s := domain.NewStructure(owner, time.Now())
		cache.On("GetStructure", ctx, s.UID).Return(s, nil)

		got, err := uc.Get(ctx, owner, s.UID)

		require.NoError(t, err)
		assert.Same(t, s, got)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("other owner is forbidden", func(t *testing.T) {
		f := newStructureFixture()
		s := domain.NewStructure(uuid.New(), time.Now())
		f.stored(s)

		_, err := f.uc.Get(ctx, owner, s.UID)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("not found", func(t *testing.T) {
		f := newStructureFixture()
		id := uuid.New()
		f.repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.ErrStructureNotFound)

		_, err := f.uc.Get(ctx, owner, id)

		assert.ErrorIs(t, err, apperrors.ErrStructureNotFound)
	})
}

func TestStructureUseCase_List(t *testing.T) {
	f := newStructureFixture()
	owner := uuid.New()
	ctx := context.Background()

	f.repo.On("List", ctx, repository.StructureFilter{
		OwnerID:  owner,
		Statuses: []domain.StructureStatus{domain.StatusSubmitted},
		Limit:    10,
	}).Return([]*domain.Structure{domain.NewStructure(owner, time.Now())}, 1, nil)

	resp, err := f.uc.List(ctx, owner, dto.ListStructuresRequest{Statuses: []string{"submitted"}, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, resp.Structures, 1)

	_, err = f.uc.List(ctx, owner, dto.ListStructuresRequest{Statuses: []string{"lost"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestStructureUseCase_SaveLocation(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("assigns identity on first save", func(t *testing.T) {
		f := newStructureFixture()
		s := domain.NewStructure(owner, time.Now())
		f.stored(s)
		f.repo.On("ListIdentityNumbersByPrefix", mock.Anything, "KA01BANGBG").
			Return([]string{"KA01BANGBG00006CM"}, nil)
		f.repo.On("ExistsIdentityNumber", mock.Anything, "KA01BANGBG00007RS").Return(false, nil)

		got, err := f.uc.SaveLocation(ctx, owner, s.UID, locationRequest())

		require.NoError(t, err)
		assert.Equal(t, "KA01BANGBG00007RS", got.Identity.IdentityNumber)
		assert.Equal(t, "00007", got.Identity.StructureSequence)
		assert.Equal(t, "RS", got.Identity.TypeCode)
		assert.Equal(t, "residential", got.Identity.TypeOfStructure)
		assert.Equal(t, domain.StatusLocationCompleted, got.Status)
		require.NotNil(t, got.Location)
		assert.Len(t, got.Location.Geohash, 12)
		assert.Equal(t, "MG Road", got.Location.Address)
		f.repo.AssertCalled(t, "Save", mock.Anything, s)
	})

	t.Run("identity is permanent once assigned", func(t *testing.T) {
		f := newStructureFixture()
		s := domain.NewStructure(owner, time.Now())
		s.Identity.IdentityNumber = "KA01BANGBG00003RS"
		f.stored(s)

		req := locationRequest()
		req.StateCode = "MH"

		got, err := f.uc.SaveLocation(ctx, owner, s.UID, req)

		require.NoError(t, err)
		assert.Equal(t, "KA01BANGBG00003RS", got.Identity.IdentityNumber)
		f.repo.AssertNotCalled(t, "ListIdentityNumbersByPrefix", mock.Anything, mock.Anything)
	})

	t.Run("status does not move backwards", func(t *testing.T) {
		f := newStructureFixture()
		s := readyStructure(owner)
		f.stored(s)

		got, err := f.uc.SaveLocation(ctx, owner, s.UID, locationRequest())

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRatingsInProgress, got.Status)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		f := newStructureFixture()
		req := locationRequest()
		req.Latitude = ptrFloat64(123)

		_, err := f.uc.SaveLocation(ctx, owner, uuid.New(), req)

		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("duplicate identity surfaces", func(t *testing.T) {
		f := newStructureFixture()
		s := domain.NewStructure(owner, time.Now())
		f.repo.On("GetByID", mock.Anything, s.UID).Return(s, nil)
		f.repo.On("ListIdentityNumbersByPrefix", mock.Anything, "KA01BANGBG").Return([]string{}, nil)
		f.repo.On("ExistsIdentityNumber", mock.Anything, "KA01BANGBG00001RS").Return(true, nil)

		_, err := f.uc.SaveLocation(ctx, owner, s.UID, locationRequest())

		assert.ErrorIs(t, err, apperrors.ErrDuplicateIdentity)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStructureUseCase_AdministrationAndGeometric(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	f := newStructureFixture()
	s := domain.NewStructure(owner, time.Now())
	s.Status = domain.StatusLocationCompleted
	f.stored(s)

	got, err := f.uc.SaveAdministration(ctx, owner, s.UID, dto.AdministrationRequest{
		ClientName: "ACME",
		Email:      "owner@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAdminCompleted, got.Status)
	assert.Equal(t, "ACME", got.Administration.ClientName)

	got, err = f.uc.SaveGeometric(ctx, owner, s.UID, dto.GeometricRequest{
		NumberOfFloors: 4,
		Width:          ptrFloat64(12),
		Height:         ptrFloat64(14),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGeometricCompleted, got.Status)
	assert.Nil(t, got.Geometric.Length)
}

func TestStructureUseCase_FloorsAndFlats(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	f := newStructureFixture()
	s := domain.NewStructure(owner, time.Now())
	f.stored(s)

	floor, err := f.uc.AddFloor(ctx, owner, s.UID, dto.FloorRequest{FloorNumber: 1, FloorType: "residential"})
	require.NoError(t, err)
	require.Len(t, s.Floors, 1)

	flat, err := f.uc.AddFlat(ctx, owner, s.UID, floor.ID, dto.FlatRequest{FlatNumber: "101", FlatType: "2bhk"})
	require.NoError(t, err)
	assert.Equal(t, domain.FlatType2BHK, flat.FlatType)
	assert.Nil(t, flat.FlatOverallRating)

	got, err := f.uc.GetFlat(ctx, owner, s.UID, floor.ID, flat.ID)
	require.NoError(t, err)
	assert.Equal(t, "101", got.FlatNumber)

	_, err = f.uc.GetFlat(ctx, owner, s.UID, floor.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrFlatNotFound)

	_, err = f.uc.GetFlat(ctx, owner, s.UID, uuid.New(), flat.ID)
	assert.ErrorIs(t, err, apperrors.ErrFloorNotFound)

	_, err = f.uc.AddFlat(ctx, owner, s.UID, uuid.New(), dto.FlatRequest{FlatNumber: "102", FlatType: "studio"})
	assert.ErrorIs(t, err, apperrors.ErrFloorNotFound)

	require.NoError(t, f.uc.DeleteFlat(ctx, owner, s.UID, floor.ID, flat.ID))
	assert.Empty(t, s.Floors[0].Flats)
	assert.ErrorIs(t, f.uc.DeleteFlat(ctx, owner, s.UID, floor.ID, flat.ID), apperrors.ErrFlatNotFound)

	require.NoError(t, f.uc.DeleteFloor(ctx, owner, s.UID, floor.ID))
	assert.Empty(t, s.Floors)
	assert.ErrorIs(t, f.uc.DeleteFloor(ctx, owner, s.UID, floor.ID), apperrors.ErrFloorNotFound)
}

func TestStructureUseCase_Submit(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("incomplete structure is rejected with percentage", func(t *testing.T) {
		f := newStructureFixture()
		s := readyStructure(owner)
		s.Administration = nil
		f.stored(s)

		_, err := f.uc.Submit(ctx, owner, s.UID)

		require.ErrorIs(t, err, apperrors.ErrIncompleteStructure)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, 83, appErr.Details["percentage"])
		assert.Equal(t, []string{"administrative"}, appErr.Details["missing"])
		assert.Equal(t, domain.StatusRatingsInProgress, s.Status)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("complete structure is submitted", func(t *testing.T) {
		f := newStructureFixture()
		s := readyStructure(owner)
		f.stored(s)

		resp, err := f.uc.Submit(ctx, owner, s.UID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusSubmitted, resp.Status)
		assert.Equal(t, 100, resp.Progress.OverallPercentage)
		f.repo.AssertCalled(t, "Save", mock.Anything, s)
	})
}

func TestStructureUseCase_Progress(t *testing.T) {
	f := newStructureFixture()
	owner := uuid.New()
	s := domain.NewStructure(owner, time.Now())
	s.Floors = append(s.Floors, domain.NewFloor(1, "residential", time.Now()))
	f.stored(s)

	p, err := f.uc.Progress(context.Background(), owner, s.UID)

	require.NoError(t, err)
	assert.True(t, p.FloorsAdded)
	assert.False(t, p.FlatRatingsCompleted)
	assert.Equal(t, 17, p.OverallPercentage)
}

func TestStructureUseCase_Delete(t *testing.T) {
	f := newStructureFixture()
	owner := uuid.New()
	s := domain.NewStructure(owner, time.Now())
	f.stored(s)
	f.repo.On("Delete", mock.Anything, s.UID).Return(nil)

	require.NoError(t, f.uc.Delete(context.Background(), owner, s.UID))
	f.cache.AssertCalled(t, "InvalidateStructure", mock.Anything, s.UID, owner)
}

func TestStructureUseCase_Nearby(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	f := newStructureFixture()

	near := domain.NewStructure(owner, time.Now())
	near.Identity.IdentityNumber = "KA01BANGBG00001RS"
	near.Location = &domain.StructureLocation{Latitude: ptrFloat64(12.9717), Longitude: ptrFloat64(77.5947), Geohash: "tdr1y"}

	far := domain.NewStructure(owner, time.Now())
	far.Location = &domain.StructureLocation{Latitude: ptrFloat64(12.99), Longitude: ptrFloat64(77.60), Geohash: "tdr1z"}

	unlocated := domain.NewStructure(owner, time.Now())

	f.repo.On("ListByGeohashPrefixes", ctx, owner, mock.MatchedBy(func(cells []string) bool {
		return len(cells) == 9 && len(cells[0]) == 5
	}), 50).Return([]*domain.Structure{far, unlocated, near}, nil)

	resp, err := f.uc.Nearby(ctx, owner, dto.NearbyRequest{Lat: 12.9716, Lon: 77.5946, Precision: 5})

	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, near.UID, resp.Structures[0].UID)
	assert.Equal(t, far.UID, resp.Structures[1].UID)
	assert.Less(t, resp.Structures[0].DistanceKm, resp.Structures[1].DistanceKm)
	assert.Len(t, resp.Cells, 9)

	_, err = f.uc.Nearby(ctx, owner, dto.NearbyRequest{Lat: 100, Lon: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}
