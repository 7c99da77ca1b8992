package domain

import (
	"fmt"
	"time"
)

// BulkFlatUpdate - обновление рейтингов помещения, найденного по номеру
type BulkFlatUpdate struct {
	FlatNumber    string                     `json:"flat_number" validate:"required"`
	Structural    map[string]ComponentUpdate `json:"structural,omitempty" validate:"omitempty,dive"`
	NonStructural map[string]ComponentUpdate `json:"non_structural,omitempty" validate:"omitempty,dive"`
}

// BulkFloorUpdate - обновления помещений одного этажа
type BulkFloorUpdate struct {
	FloorNumber int              `json:"floor_number" validate:"required,min=1"`
	Flats       []BulkFlatUpdate `json:"flats" validate:"required,dive"`
}

// BulkItemStatus - исход обработки одного элемента пакета
type BulkItemStatus string

const (
	BulkItemUpdated       BulkItemStatus = "updated"
	BulkItemFloorNotFound BulkItemStatus = "floor_not_found"
	BulkItemFlatNotFound  BulkItemStatus = "flat_not_found"
)

// BulkItemResult - результат по этажу (FlatNumber пуст) или по помещению
type BulkItemResult struct {
	FloorNumber int            `json:"floor_number"`
	FlatNumber  string         `json:"flat_number,omitempty"`
	Status      BulkItemStatus `json:"status"`
	Applied     []string       `json:"applied,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// OK - элемент обработан успешно
func (r BulkItemResult) OK() bool {
	return r.Status == BulkItemUpdated
}

// BulkResult - сводка пакетного обновления. Непустой Errors означает
// частичный успех, а не отказ: успешные помещения уже обновлены.
type BulkResult struct {
	UpdatedFloors int              `json:"updated_floors"`
	UpdatedFlats  int              `json:"updated_flats"`
	Errors        []string         `json:"errors"`
	Items         []BulkItemResult `json:"items"`
}

// Partial - были ошибки
func (r BulkResult) Partial() bool {
	return len(r.Errors) > 0
}

// ApplyBulkUpdate применяет обновления в порядке запроса. Ненайденный этаж или
// помещение записывается в ошибки, обработка продолжается. По завершении статус
// структуры - ratings_in_progress независимо от ошибок.
func (s *Structure) ApplyBulkUpdate(updates []BulkFloorUpdate, now time.Time) BulkResult {
	result := BulkResult{
		Errors: []string{},
		Items:  make([]BulkItemResult, 0, len(updates)),
	}

	for _, fu := range updates {
		floor := s.FindFloorByNumber(fu.FloorNumber)
		if floor == nil {
			msg := fmt.Sprintf("Floor %d not found", fu.FloorNumber)
			result.Errors = append(result.Errors, msg)
			result.Items = append(result.Items, BulkItemResult{
				FloorNumber: fu.FloorNumber,
				Status:      BulkItemFloorNotFound,
				Error:       msg,
			})
			continue
		}

		touched := 0
		for _, flu := range fu.Flats {
			flat := floor.FindFlatByNumber(flu.FlatNumber)
			if flat == nil {
				msg := fmt.Sprintf("Flat %s not found on floor %d", flu.FlatNumber, fu.FloorNumber)
				result.Errors = append(result.Errors, msg)
				result.Items = append(result.Items, BulkItemResult{
					FloorNumber: fu.FloorNumber,
					FlatNumber:  flu.FlatNumber,
					Status:      BulkItemFlatNotFound,
					Error:       msg,
				})
				continue
			}

			res := flat.ApplyRatings(FlatRatingUpdate{
				Structural:    flu.Structural,
				NonStructural: flu.NonStructural,
			}, now)

			for _, name := range res.Unknown {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"Unknown component %q for flat %s on floor %d", name, flu.FlatNumber, fu.FloorNumber))
			}

			result.Items = append(result.Items, BulkItemResult{
				FloorNumber: fu.FloorNumber,
				FlatNumber:  flu.FlatNumber,
				Status:      BulkItemUpdated,
				Applied:     res.Applied,
			})
			touched++
		}

		result.UpdatedFlats += touched
		if touched > 0 {
			result.UpdatedFloors++
		}
	}

	s.Status = StatusRatingsInProgress
	s.Touch(now)

	return result
}
