package testhelpers

import (
	"time"

	"github.com/google/uuid"

	"github.com/structure-inspection/internal/domain"
)

// FixtureTime - фиксированное время для детерминированных фикстур
var FixtureTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// NewStructureFixture builds a located structure with the given identity number.
// An empty number leaves the structure in draft.
func NewStructureFixture(ownerID uuid.UUID, number, geohash string) *domain.Structure {
	s := domain.NewStructure(ownerID, FixtureTime)
	if number == "" {
		return s
	}

	lat, lon := 12.9716, 77.5946
	s.Identity.IdentityNumber = number
	s.Location = &domain.StructureLocation{
		Latitude:  &lat,
		Longitude: &lon,
		Geohash:   geohash,
	}
	s.Status = domain.StatusLocationCompleted
	return s
}

// AddRatedFlat adds a floor with one flat rated uniformly across all components
func AddRatedFlat(s *domain.Structure, floorNumber int, flatNumber string, rating int) {
	floor := domain.NewFloor(floorNumber, "residential", FixtureTime)
	flat := domain.NewFlat(flatNumber, domain.FlatType2BHK, FixtureTime)

	update := domain.FlatRatingUpdate{
		Structural:    map[string]domain.ComponentUpdate{},
		NonStructural: map[string]domain.ComponentUpdate{},
	}
	for _, name := range domain.StructuralComponents {
		r := rating
		update.Structural[name] = domain.ComponentUpdate{Rating: &r}
	}
	for _, name := range domain.NonStructuralComponents {
		r := rating
		update.NonStructural[name] = domain.ComponentUpdate{Rating: &r}
	}
	flat.ApplyRatings(update, FixtureTime)

	floor.Flats = append(floor.Flats, flat)
	s.Floors = append(s.Floors, floor)
}
