package domain

import (
	"time"

	"github.com/google/uuid"
)

// StructureStatus - этап жизненного цикла обследуемого здания
type StructureStatus string

const (
	StatusDraft              StructureStatus = "draft"
	StatusLocationCompleted  StructureStatus = "location_completed"
	StatusAdminCompleted     StructureStatus = "admin_completed"
	StatusGeometricCompleted StructureStatus = "geometric_completed"
	StatusRatingsInProgress  StructureStatus = "ratings_in_progress"
	StatusSubmitted          StructureStatus = "submitted"
	StatusApproved           StructureStatus = "approved"
	StatusRequiresInspection StructureStatus = "requires_inspection"
	StatusMaintenanceNeeded  StructureStatus = "maintenance_needed"
)

// AllStatuses - все допустимые статусы в порядке жизненного цикла
var AllStatuses = []StructureStatus{
	StatusDraft,
	StatusLocationCompleted,
	StatusAdminCompleted,
	StatusGeometricCompleted,
	StatusRatingsInProgress,
	StatusSubmitted,
	StatusApproved,
	StatusRequiresInspection,
	StatusMaintenanceNeeded,
}

func (s StructureStatus) String() string {
	return string(s)
}

// IsValid проверяет, что статус известен
func (s StructureStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsFinal - после отправки структура больше не редактируется экранами ввода
func (s StructureStatus) IsFinal() bool {
	switch s {
	case StatusSubmitted, StatusApproved, StatusRequiresInspection, StatusMaintenanceNeeded:
		return true
	}
	return false
}

// Structure - обследуемое здание. Дерево Floor -> Flat -> RatingComponent
// хранится и записывается одним документом.
type Structure struct {
	UID            uuid.UUID          `json:"uid"`
	OwnerID        uuid.UUID          `json:"owner_id"`
	Identity       StructureIdentity  `json:"structural_identity"`
	Location       *StructureLocation `json:"location,omitempty"`
	Administration *Administration    `json:"administration,omitempty"`
	Geometric      *GeometricDetails  `json:"geometric_details,omitempty"`
	Floors         []Floor            `json:"floors"`
	Status         StructureStatus    `json:"status"`
	CreatedAt      time.Time          `json:"creation_date"`
	UpdatedAt      time.Time          `json:"last_updated_date"`
}

// StructureIdentity - блок идентификации. В статусе draft поля пустые.
type StructureIdentity struct {
	IdentityNumber    string `json:"structural_identity_number"`
	StateCode         string `json:"state_code"`
	DistrictCode      string `json:"district_code"`
	CityCode          string `json:"city_name"`
	LocationCode      string `json:"location_code"`
	StructureSequence string `json:"structure_sequence"`
	TypeOfStructure   string `json:"type_of_structure"`
	TypeCode          string `json:"type_code"`
}

type StructureLocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
	Geohash   string   `json:"geohash,omitempty"`
}

type Administration struct {
	ClientName    string `json:"client_name"`
	CustodianName string `json:"custodian"`
	EngineerName  string `json:"engineer_designation"`
	ContactDetail string `json:"contact_details"`
	Email         string `json:"email_id"`
}

type GeometricDetails struct {
	NumberOfFloors int      `json:"number_of_floors"`
	Width          *float64 `json:"structure_width,omitempty"`
	Length         *float64 `json:"structure_length,omitempty"`
	Height         *float64 `json:"structure_height,omitempty"`
}

// Floor - этаж. Номер этажа уникален в пределах структуры (поиск идёт по номеру).
type Floor struct {
	ID          uuid.UUID `json:"floor_id"`
	FloorNumber int       `json:"floor_number"`
	FloorType   string    `json:"floor_type"`
	Label       string    `json:"floor_label_name,omitempty"`
	Height      *float64  `json:"floor_height,omitempty"`
	Area        *float64  `json:"total_area_sq_mts,omitempty"`
	Flats       []Flat    `json:"flats"`
	Notes       string    `json:"floor_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlatType - тип помещения
type FlatType string

const (
	FlatType1BHK      FlatType = "1bhk"
	FlatType2BHK      FlatType = "2bhk"
	FlatType3BHK      FlatType = "3bhk"
	FlatType4BHK      FlatType = "4bhk"
	FlatTypeStudio    FlatType = "studio"
	FlatTypePenthouse FlatType = "penthouse"
	FlatTypeShop      FlatType = "shop"
	FlatTypeOffice    FlatType = "office"
	FlatTypeOther     FlatType = "other"
)

type Flat struct {
	ID                  uuid.UUID          `json:"flat_id"`
	FlatNumber          string             `json:"flat_number"`
	FlatType            FlatType           `json:"flat_type"`
	Area                *float64           `json:"area_sq_mts,omitempty"`
	Direction           string             `json:"direction_facing,omitempty"`
	OccupancyStatus     string             `json:"occupancy_status,omitempty"`
	StructuralRating    StructuralGroup    `json:"structural_rating"`
	NonStructuralRating NonStructuralGroup `json:"non_structural_rating"`
	FlatOverallRating   *FlatOverallRating `json:"flat_overall_rating"`
	Notes               string             `json:"flat_notes,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// NewStructure - черновик с пустыми полями идентификации
func NewStructure(ownerID uuid.UUID, now time.Time) *Structure {
	return &Structure{
		UID:       uuid.New(),
		OwnerID:   ownerID,
		Floors:    []Floor{},
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewFloor создаёт этаж без помещений
func NewFloor(number int, floorType string, now time.Time) Floor {
	return Floor{
		ID:          uuid.New(),
		FloorNumber: number,
		FloorType:   floorType,
		Flats:       []Flat{},
		CreatedAt:   now,
	}
}

// NewFlat создаёт помещение; все компоненты оценки присутствуют, но без рейтинга
func NewFlat(number string, flatType FlatType, now time.Time) Flat {
	return Flat{
		ID:         uuid.New(),
		FlatNumber: number,
		FlatType:   flatType,
		CreatedAt:  now,
	}
}

// Touch обновляет время изменения
func (s *Structure) Touch(now time.Time) {
	s.UpdatedAt = now
}

// FindFloorByNumber - линейный поиск этажа по номеру, первое совпадение
func (s *Structure) FindFloorByNumber(number int) *Floor {
	for i := range s.Floors {
		if s.Floors[i].FloorNumber == number {
			return &s.Floors[i]
		}
	}
	return nil
}

// FindFloor - поиск этажа по ID
func (s *Structure) FindFloor(id uuid.UUID) *Floor {
	for i := range s.Floors {
		if s.Floors[i].ID == id {
			return &s.Floors[i]
		}
	}
	return nil
}

// RemoveFloor удаляет этаж вместе с помещениями
func (s *Structure) RemoveFloor(id uuid.UUID) bool {
	for i := range s.Floors {
		if s.Floors[i].ID == id {
			s.Floors = append(s.Floors[:i], s.Floors[i+1:]...)
			return true
		}
	}
	return false
}

// FindFlatByNumber - поиск помещения по номеру, первое совпадение
func (f *Floor) FindFlatByNumber(number string) *Flat {
	for i := range f.Flats {
		if f.Flats[i].FlatNumber == number {
			return &f.Flats[i]
		}
	}
	return nil
}

// FindFlat - поиск помещения по ID
func (f *Floor) FindFlat(id uuid.UUID) *Flat {
	for i := range f.Flats {
		if f.Flats[i].ID == id {
			return &f.Flats[i]
		}
	}
	return nil
}

// RemoveFlat удаляет помещение
func (f *Floor) RemoveFlat(id uuid.UUID) bool {
	for i := range f.Flats {
		if f.Flats[i].ID == id {
			f.Flats = append(f.Flats[:i], f.Flats[i+1:]...)
			return true
		}
	}
	return false
}

// FlatCount - общее количество помещений
func (s *Structure) FlatCount() int {
	total := 0
	for _, f := range s.Floors {
		total += len(f.Flats)
	}
	return total
}
