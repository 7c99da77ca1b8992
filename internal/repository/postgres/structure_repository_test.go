package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/repository/postgres/testhelpers"
)

// StructureRepositoryTestSuite тестирует StructureRepository на реальной БД
type StructureRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.StructureRepository
	ctx    context.Context
	owner  uuid.UUID
}

func (s *StructureRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewStructureRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *StructureRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *StructureRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.owner = uuid.New()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *StructureRepositoryTestSuite) TestCreateAndGet_RoundTripsDocument() {
	st := testhelpers.NewStructureFixture(s.owner, "KA01BANGBG00007RS", "tdr1y5")
	testhelpers.AddRatedFlat(st, 1, "101", 4)

	s.Require().NoError(s.repo.Create(s.ctx, st))

	got, err := s.repo.GetByID(s.ctx, st.UID)
	s.Require().NoError(err)
	s.Equal(st.OwnerID, got.OwnerID)
	s.Equal("KA01BANGBG00007RS", got.Identity.IdentityNumber)
	s.Require().Len(got.Floors, 1)
	s.Require().Len(got.Floors[0].Flats, 1)

	rating := got.Floors[0].Flats[0].FlatOverallRating
	s.Require().NotNil(rating)
	s.Equal(4.0, rating.CombinedScore)
	s.Equal(domain.HealthGood, rating.HealthStatus)
}

func (s *StructureRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, apperrors.ErrStructureNotFound)
}

func (s *StructureRepositoryTestSuite) TestCreate_DuplicateIdentityRejected() {
	first := testhelpers.NewStructureFixture(s.owner, "KA01BANGBG00007RS", "tdr1y5")
	second := testhelpers.NewStructureFixture(uuid.New(), "KA01BANGBG00007RS", "tdr1y5")

	s.Require().NoError(s.repo.Create(s.ctx, first))
	err := s.repo.Create(s.ctx, second)
	s.ErrorIs(err, apperrors.ErrDuplicateIdentity)
}

func (s *StructureRepositoryTestSuite) TestCreate_DraftsWithoutNumberDoNotConflict() {
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "", "")))
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "", "")))
}

func (s *StructureRepositoryTestSuite) TestSave_ReplacesWholeDocument() {
	st := testhelpers.NewStructureFixture(s.owner, "", "")
	s.Require().NoError(s.repo.Create(s.ctx, st))

	testhelpers.AddRatedFlat(st, 2, "201", 2)
	st.Status = domain.StatusRatingsInProgress
	s.Require().NoError(s.repo.Save(s.ctx, st))

	got, err := s.repo.GetByID(s.ctx, st.UID)
	s.Require().NoError(err)
	s.Equal(domain.StatusRatingsInProgress, got.Status)
	s.Require().Len(got.Floors, 1)
	s.Equal(2, got.Floors[0].FloorNumber)
}

func (s *StructureRepositoryTestSuite) TestSave_MissingStructure() {
	err := s.repo.Save(s.ctx, testhelpers.NewStructureFixture(s.owner, "", ""))
	s.ErrorIs(err, apperrors.ErrStructureNotFound)
}

func (s *StructureRepositoryTestSuite) TestDelete() {
	st := testhelpers.NewStructureFixture(s.owner, "", "")
	s.Require().NoError(s.repo.Create(s.ctx, st))

	s.Require().NoError(s.repo.Delete(s.ctx, st.UID))
	s.ErrorIs(s.repo.Delete(s.ctx, st.UID), apperrors.ErrStructureNotFound)
}

func (s *StructureRepositoryTestSuite) TestList_FiltersByOwnerAndStatus() {
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "", "")))
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "KA01BANGBG00001RS", "tdr1y5")))
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(uuid.New(), "", "")))

	all, total, err := s.repo.List(s.ctx, repository.StructureFilter{OwnerID: s.owner})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Len(all, 2)

	located, total, err := s.repo.List(s.ctx, repository.StructureFilter{
		OwnerID:  s.owner,
		Statuses: []domain.StructureStatus{domain.StatusLocationCompleted},
	})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(located, 1)
	s.Equal("KA01BANGBG00001RS", located[0].Identity.IdentityNumber)
}

func (s *StructureRepositoryTestSuite) TestIdentityQueries() {
	for _, n := range []string{"KA01BANGBG00001RS", "KA01BANGBG00004CM", "KA01BANGXX00009RS"} {
		s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, n, "tdr1y5")))
	}

	exists, err := s.repo.ExistsIdentityNumber(s.ctx, "KA01BANGBG00004CM")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsIdentityNumber(s.ctx, "KA01BANGBG00005CM")
	s.Require().NoError(err)
	s.False(exists)

	numbers, err := s.repo.ListIdentityNumbersByPrefix(s.ctx, "KA01BANGBG")
	s.Require().NoError(err)
	s.Equal([]string{"KA01BANGBG00001RS", "KA01BANGBG00004CM"}, numbers)
}

func (s *StructureRepositoryTestSuite) TestListByGeohashPrefixes() {
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "KA01BANGBG00001RS", "tdr1y5abc")))
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "KA01BANGBG00002RS", "tdr1y7xyz")))
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(s.owner, "MH12PUXXKO00001RS", "te7ud2")))

	found, err := s.repo.ListByGeohashPrefixes(s.ctx, s.owner, []string{"tdr1y5", "tdr1y7"}, 10)
	s.Require().NoError(err)
	s.Len(found, 2)

	none, err := s.repo.ListByGeohashPrefixes(s.ctx, s.owner, nil, 10)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StructureRepositoryTestSuite) TestListByGeohashPrefixes_LimitAppliesPerOwner() {
	other := uuid.New()
	// чужие структуры сортируются раньше и заняли бы весь лимит
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(other, "KA01BANGBG00001RS", "tdr1y0aaa")))
	s.Require().NoError(s.repo.Create(s.ctx, testhelpers.NewStructureFixture(other, "KA01BANGBG00002RS", "tdr1y0bbb")))
	own := testhelpers.NewStructureFixture(s.owner, "KA01BANGBG00003RS", "tdr1y9zzz")
	s.Require().NoError(s.repo.Create(s.ctx, own))

	found, err := s.repo.ListByGeohashPrefixes(s.ctx, s.owner, []string{"tdr1y"}, 2)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(own.UID, found[0].UID)

	foreign, err := s.repo.ListByGeohashPrefixes(s.ctx, other, []string{"tdr1y"}, 10)
	s.Require().NoError(err)
	s.Len(foreign, 2)
}

func TestStructureRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(StructureRepositoryTestSuite))
}
