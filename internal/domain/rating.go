package domain

import (
	"math"
	"time"
)

// HealthStatus - состояние по среднему рейтингу
type HealthStatus string

const (
	HealthGood     HealthStatus = "Good"
	HealthFair     HealthStatus = "Fair"
	HealthPoor     HealthStatus = "Poor"
	HealthCritical HealthStatus = "Critical"
)

// Priority - приоритет обслуживания по тому же среднему
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

const (
	// MinRating и MaxRating - допустимый диапазон рейтинга компонента
	MinRating = 1
	MaxRating = 5

	// веса комбинированной оценки помещения, в десятых долях
	structuralWeightTenths    = 7
	nonStructuralWeightTenths = 3
)

// Classification - результат усреднения группы рейтингов.
// Все поля nil, если в группе нет ни одного рейтинга.
type Classification struct {
	Average  *float64      `json:"average"`
	Health   *HealthStatus `json:"health_status"`
	Priority *Priority     `json:"priority"`
}

// Assessed - есть ли хотя бы один рейтинг
func (c Classification) Assessed() bool {
	return c.Average != nil
}

// ValidRating проверяет диапазон 1..5
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Classify усредняет рейтинги, округляет до одного знака (половина - вверх)
// и назначает состояние и приоритет. Порядок рейтингов не важен.
func Classify(ratings []int) Classification {
	if len(ratings) == 0 {
		return Classification{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	n := len(ratings)

	// round(10*sum/n) в целых числах: без ошибок двоичной арифметики
	tenths := (20*sum + n) / (2 * n)

	return classifyTenths(tenths)
}

// ClassifyAverage назначает состояние и приоритет уже посчитанному среднему
func ClassifyAverage(avg float64) Classification {
	return classifyTenths(toTenths(avg))
}

func classifyTenths(tenths int) Classification {
	avg := float64(tenths) / 10
	health := HealthForTenths(tenths)
	priority := PriorityForTenths(tenths)

	return Classification{
		Average:  &avg,
		Health:   &health,
		Priority: &priority,
	}
}

// HealthForTenths - пороги: >=4 Good, >=3 Fair, >=2 Poor, иначе Critical
func HealthForTenths(tenths int) HealthStatus {
	switch {
	case tenths >= 40:
		return HealthGood
	case tenths >= 30:
		return HealthFair
	case tenths >= 20:
		return HealthPoor
	default:
		return HealthCritical
	}
}

// PriorityForTenths - те же пороги, другие метки
func PriorityForTenths(tenths int) Priority {
	switch {
	case tenths >= 40:
		return PriorityLow
	case tenths >= 30:
		return PriorityMedium
	case tenths >= 20:
		return PriorityHigh
	default:
		return PriorityCritical
	}
}

// FlatOverallRating - комбинированная оценка помещения
type FlatOverallRating struct {
	CombinedScore      float64      `json:"combined_score"`
	HealthStatus       HealthStatus `json:"health_status"`
	Priority           Priority     `json:"priority"`
	LastAssessmentDate time.Time    `json:"last_assessment_date"`
}

// CombineScores возвращает nil, если хотя бы одно из средних отсутствует.
// combined = round(0.7*structural + 0.3*nonStructural, 1 знак).
func CombineScores(structuralAvg, nonStructuralAvg *float64, now time.Time) *FlatOverallRating {
	if structuralAvg == nil || nonStructuralAvg == nil {
		return nil
	}

	s := toTenths(*structuralAvg)
	ns := toTenths(*nonStructuralAvg)

	// (7*s + 3*ns) - сотые доли; округляем до десятых половиной вверх
	hundredths := structuralWeightTenths*s + nonStructuralWeightTenths*ns
	tenths := (hundredths + 5) / 10

	return &FlatOverallRating{
		CombinedScore:      float64(tenths) / 10,
		HealthStatus:       HealthForTenths(tenths),
		Priority:           PriorityForTenths(tenths),
		LastAssessmentDate: now,
	}
}

func toTenths(v float64) int {
	return int(math.Round(v * 10))
}
