package domain

import "math"

// progressMilestones - количество этапов создания структуры
const progressMilestones = 6

// Progress - вычисляемое представление заполненности структуры. Не хранится.
type Progress struct {
	Location             bool `json:"location"`
	Administrative       bool `json:"administrative"`
	GeometricDetails     bool `json:"geometric_details"`
	FloorsAdded          bool `json:"floors_added"`
	FlatsAdded           bool `json:"flats_added"`
	FlatRatingsCompleted bool `json:"flat_ratings_completed"`
	OverallPercentage    int  `json:"overall_percentage"`
}

// IsComplete - все шесть этапов выполнены
func (p Progress) IsComplete() bool {
	return p.OverallPercentage == 100
}

// Missing - имена невыполненных этапов
func (p Progress) Missing() []string {
	missing := make([]string, 0, progressMilestones)
	for _, m := range p.milestones() {
		if !m.done {
			missing = append(missing, m.name)
		}
	}
	return missing
}

type milestone struct {
	name string
	done bool
}

func (p Progress) milestones() []milestone {
	return []milestone{
		{"location", p.Location},
		{"administrative", p.Administrative},
		{"geometric_details", p.GeometricDetails},
		{"floors_added", p.FloorsAdded},
		{"flats_added", p.FlatsAdded},
		{"flat_ratings_completed", p.FlatRatingsCompleted},
	}
}

// Progress пересчитывает заполненность при каждом вызове.
// Длина здания намеренно не проверяется: только ширина и высота.
func (s *Structure) Progress() Progress {
	var p Progress

	p.Location = s.Identity.IdentityNumber != "" &&
		s.Location != nil && s.Location.Latitude != nil

	p.Administrative = s.Administration != nil &&
		s.Administration.ClientName != "" && s.Administration.Email != ""

	p.GeometricDetails = s.Geometric != nil &&
		s.Geometric.Width != nil && s.Geometric.Height != nil

	p.FloorsAdded = len(s.Floors) > 0

	for _, floor := range s.Floors {
		if len(floor.Flats) > 0 {
			p.FlatsAdded = true
			break
		}
	}

	if p.FlatsAdded {
		p.FlatRatingsCompleted = s.allFlatsRated()
	}

	done := 0
	for _, m := range p.milestones() {
		if m.done {
			done++
		}
	}
	p.OverallPercentage = int(math.Round(100 * float64(done) / progressMilestones))

	return p
}

// allFlatsRated - у каждого помещения есть комбинированная оценка; выход на первом пропуске
func (s *Structure) allFlatsRated() bool {
	for _, floor := range s.Floors {
		for _, flat := range floor.Flats {
			if flat.FlatOverallRating == nil {
				return false
			}
		}
	}
	return true
}
