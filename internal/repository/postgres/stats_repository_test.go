package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	"github.com/structure-inspection/internal/repository/postgres/testhelpers"
)

// StatsRepositoryTestSuite тестирует StatsRepository
type StatsRepositoryTestSuite struct {
	suite.Suite
	testDB     *testhelpers.TestDB
	repo       repository.StatsRepository
	structures repository.StructureRepository
	ctx        context.Context
}

func (s *StatsRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewStatsRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.structures = testhelpers.NewStructureRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *StatsRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *StatsRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *StatsRepositoryTestSuite) TestGetStatistics_CountsByStatusAndHealth() {
	owner := uuid.New()

	draft := testhelpers.NewStructureFixture(owner, "", "")
	unrated := domain.NewFlat("102", domain.FlatTypeStudio, testhelpers.FixtureTime)
	testhelpers.AddRatedFlat(draft, 1, "101", 4)
	draft.Floors[0].Flats = append(draft.Floors[0].Flats, unrated)

	located := testhelpers.NewStructureFixture(owner, "KA01BANGBG00001RS", "tdr1y5")
	testhelpers.AddRatedFlat(located, 1, "101", 1)

	other := testhelpers.NewStructureFixture(uuid.New(), "", "")
	testhelpers.AddRatedFlat(other, 1, "101", 4)

	for _, st := range []*domain.Structure{draft, located, other} {
		s.Require().NoError(s.structures.Create(s.ctx, st))
	}

	stats, err := s.repo.GetStatistics(s.ctx, owner)
	s.Require().NoError(err)

	s.Equal(2, stats.Structures.Total)
	s.Equal(1, stats.Structures.ByStatus[string(domain.StatusDraft)])
	s.Equal(1, stats.Structures.ByStatus[string(domain.StatusLocationCompleted)])

	s.Equal(3, stats.Flats.Total)
	s.Equal(2, stats.Flats.Rated)
	s.Equal(1, stats.Flats.ByHealth[string(domain.HealthGood)])
	s.Equal(1, stats.Flats.ByHealth[string(domain.HealthCritical)])
	s.Equal(1, stats.Flats.ByHealth[domain.UnratedHealthKey])
	s.NotZero(stats.LastUpdated)
}

func (s *StatsRepositoryTestSuite) TestGetStatistics_EmptyOwner() {
	stats, err := s.repo.GetStatistics(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Zero(stats.Structures.Total)
	s.Zero(stats.Flats.Total)
}

func TestStatsRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(StatsRepositoryTestSuite))
}
