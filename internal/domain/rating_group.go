package domain

import (
	"sort"
	"time"
)

// Имена конструктивных компонентов
const (
	ComponentBeams      = "beams"
	ComponentColumns    = "columns"
	ComponentSlab       = "slab"
	ComponentFoundation = "foundation"
)

// Имена неконструктивных компонентов
const (
	ComponentBrickPlaster     = "brick_plaster"
	ComponentDoorsWindows     = "doors_windows"
	ComponentFlooringTiles    = "flooring_tiles"
	ComponentElectricalWiring = "electrical_wiring"
	ComponentSanitaryFittings = "sanitary_fittings"
	ComponentRailings         = "railings"
	ComponentWaterTanks       = "water_tanks"
	ComponentPlumbing         = "plumbing"
	ComponentSewageSystem     = "sewage_system"
	ComponentPanelBoard       = "panel_board"
	ComponentLifts            = "lifts"
)

// StructuralComponents - фиксированный набор конструктивной группы
var StructuralComponents = []string{
	ComponentBeams,
	ComponentColumns,
	ComponentSlab,
	ComponentFoundation,
}

// NonStructuralComponents - фиксированный набор неконструктивной группы
var NonStructuralComponents = []string{
	ComponentBrickPlaster,
	ComponentDoorsWindows,
	ComponentFlooringTiles,
	ComponentElectricalWiring,
	ComponentSanitaryFittings,
	ComponentRailings,
	ComponentWaterTanks,
	ComponentPlumbing,
	ComponentSewageSystem,
	ComponentPanelBoard,
	ComponentLifts,
}

// RatingComponent - оценка одного элемента. Rating == nil - элемент не оценён.
type RatingComponent struct {
	Rating           *int       `json:"rating"`
	ConditionComment string     `json:"condition_comment"`
	InspectionDate   *time.Time `json:"inspection_date,omitempty"`
	Photos           []string   `json:"photos"`
	InspectorNotes   string     `json:"inspector_notes"`
}

// IsRated - есть ли рейтинг
func (c *RatingComponent) IsRated() bool {
	return c.Rating != nil
}

// ComponentUpdate - данные записи одного компонента.
// Запись без рейтинга пропускается, если не выставлен Clear.
type ComponentUpdate struct {
	Rating           *int     `json:"rating" validate:"omitempty,rating"`
	ConditionComment string   `json:"condition_comment"`
	Photos           []string `json:"photos" validate:"omitempty,max=20,dive,max=1024"`
	InspectorNotes   string   `json:"inspector_notes"`
	Clear            bool     `json:"clear,omitempty"`
}

// Applies - будет ли запись применена к компоненту
func (u ComponentUpdate) Applies() bool {
	return u.Rating != nil || u.Clear
}

// apply перезаписывает компонент целиком
func (c *RatingComponent) apply(u ComponentUpdate, now time.Time) {
	if u.Rating == nil {
		*c = RatingComponent{}
		return
	}

	r := *u.Rating
	photos := make([]string, len(u.Photos))
	copy(photos, u.Photos)

	*c = RatingComponent{
		Rating:           &r,
		ConditionComment: u.ConditionComment,
		InspectionDate:   &now,
		Photos:           photos,
		InspectorNotes:   u.InspectorNotes,
	}
}

// StructuralGroup - конструктивная группа: балки, колонны, перекрытие, фундамент
type StructuralGroup struct {
	Beams          RatingComponent `json:"beams"`
	Columns        RatingComponent `json:"columns"`
	Slab           RatingComponent `json:"slab"`
	Foundation     RatingComponent `json:"foundation"`
	OverallAverage *float64        `json:"overall_average"`
	HealthStatus   *HealthStatus   `json:"health_status"`
	AssessedAt     *time.Time      `json:"assessment_date,omitempty"`
}

// Component возвращает компонент по имени или nil
func (g *StructuralGroup) Component(name string) *RatingComponent {
	switch name {
	case ComponentBeams:
		return &g.Beams
	case ComponentColumns:
		return &g.Columns
	case ComponentSlab:
		return &g.Slab
	case ComponentFoundation:
		return &g.Foundation
	}
	return nil
}

// Ratings - рейтинги оценённых компонентов
func (g *StructuralGroup) Ratings() []int {
	return collectRatings(StructuralComponents, g.Component)
}

// Recompute пересчитывает производные поля целиком
func (g *StructuralGroup) Recompute(now time.Time) Classification {
	c := Classify(g.Ratings())
	g.OverallAverage = c.Average
	g.HealthStatus = c.Health
	if c.Assessed() {
		g.AssessedAt = &now
	} else {
		g.AssessedAt = nil
	}
	return c
}

// NonStructuralGroup - неконструктивная группа из 11 компонентов
type NonStructuralGroup struct {
	BrickPlaster     RatingComponent `json:"brick_plaster"`
	DoorsWindows     RatingComponent `json:"doors_windows"`
	FlooringTiles    RatingComponent `json:"flooring_tiles"`
	ElectricalWiring RatingComponent `json:"electrical_wiring"`
	SanitaryFittings RatingComponent `json:"sanitary_fittings"`
	Railings         RatingComponent `json:"railings"`
	WaterTanks       RatingComponent `json:"water_tanks"`
	Plumbing         RatingComponent `json:"plumbing"`
	SewageSystem     RatingComponent `json:"sewage_system"`
	PanelBoard       RatingComponent `json:"panel_board"`
	Lifts            RatingComponent `json:"lifts"`
	OverallAverage   *float64        `json:"overall_average"`
	AssessedAt       *time.Time      `json:"assessment_date,omitempty"`
}

// Component возвращает компонент по имени или nil
func (g *NonStructuralGroup) Component(name string) *RatingComponent {
	switch name {
	case ComponentBrickPlaster:
		return &g.BrickPlaster
	case ComponentDoorsWindows:
		return &g.DoorsWindows
	case ComponentFlooringTiles:
		return &g.FlooringTiles
	case ComponentElectricalWiring:
		return &g.ElectricalWiring
	case ComponentSanitaryFittings:
		return &g.SanitaryFittings
	case ComponentRailings:
		return &g.Railings
	case ComponentWaterTanks:
		return &g.WaterTanks
	case ComponentPlumbing:
		return &g.Plumbing
	case ComponentSewageSystem:
		return &g.SewageSystem
	case ComponentPanelBoard:
		return &g.PanelBoard
	case ComponentLifts:
		return &g.Lifts
	}
	return nil
}

// Ratings - рейтинги оценённых компонентов
func (g *NonStructuralGroup) Ratings() []int {
	return collectRatings(NonStructuralComponents, g.Component)
}

// Recompute пересчитывает производные поля целиком
func (g *NonStructuralGroup) Recompute(now time.Time) Classification {
	c := Classify(g.Ratings())
	g.OverallAverage = c.Average
	if c.Assessed() {
		g.AssessedAt = &now
	} else {
		g.AssessedAt = nil
	}
	return c
}

func collectRatings(names []string, lookup func(string) *RatingComponent) []int {
	ratings := make([]int, 0, len(names))
	for _, name := range names {
		if c := lookup(name); c != nil && c.Rating != nil {
			ratings = append(ratings, *c.Rating)
		}
	}
	return ratings
}

// applyUpdates - разреженная запись: компоненты, отсутствующие в payload, не трогаются.
// Возвращает имена применённых компонентов и имена, которых нет в группе.
func applyUpdates(
	updates map[string]ComponentUpdate,
	lookup func(string) *RatingComponent,
	now time.Time,
) (applied []string, unknown []string) {
	for name, u := range updates {
		c := lookup(name)
		if c == nil {
			unknown = append(unknown, name)
			continue
		}
		if !u.Applies() {
			continue
		}
		c.apply(u, now)
		applied = append(applied, name)
	}
	return applied, unknown
}

// RecomputeRatings пересчитывает обе группы и комбинированную оценку.
// Производные поля всегда перезаписываются полностью.
func (f *Flat) RecomputeRatings(now time.Time) {
	f.StructuralRating.Recompute(now)
	f.NonStructuralRating.Recompute(now)
	f.FlatOverallRating = CombineScores(
		f.StructuralRating.OverallAverage,
		f.NonStructuralRating.OverallAverage,
		now,
	)
}

// FlatRatingUpdate - обновление рейтингов одного помещения
type FlatRatingUpdate struct {
	Structural    map[string]ComponentUpdate `json:"structural,omitempty" validate:"omitempty,dive"`
	NonStructural map[string]ComponentUpdate `json:"non_structural,omitempty" validate:"omitempty,dive"`
}

// IsEmpty - нет ни одной группы
func (u FlatRatingUpdate) IsEmpty() bool {
	return u.Structural == nil && u.NonStructural == nil
}

// FlatUpdateResult - итог записи в помещение
type FlatUpdateResult struct {
	Applied []string `json:"applied"`
	Unknown []string `json:"unknown,omitempty"`
}

// ApplyRatings применяет разреженное обновление и пересчитывает производные поля
func (f *Flat) ApplyRatings(u FlatRatingUpdate, now time.Time) FlatUpdateResult {
	var res FlatUpdateResult

	if u.Structural != nil {
		applied, unknown := applyUpdates(u.Structural, f.StructuralRating.Component, now)
		res.Applied = append(res.Applied, applied...)
		res.Unknown = append(res.Unknown, unknown...)
	}
	if u.NonStructural != nil {
		applied, unknown := applyUpdates(u.NonStructural, f.NonStructuralRating.Component, now)
		res.Applied = append(res.Applied, applied...)
		res.Unknown = append(res.Unknown, unknown...)
	}

	sort.Strings(res.Applied)
	sort.Strings(res.Unknown)

	f.RecomputeRatings(now)
	return res
}
