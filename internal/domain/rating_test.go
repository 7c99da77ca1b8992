package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structure-inspection/internal/domain"
)

func ptrFloat64(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func TestClassify_Average(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"mixed ratings round to 4.0", []int{3, 4, 4, 5}, 4.0},
		{"half value kept", []int{1, 2}, 1.5},
		{"order is irrelevant", []int{5, 4, 4, 3}, 4.0},
		{"one third rounds down", []int{3, 3, 4}, 3.3},
		{"two thirds rounds up", []int{3, 4, 4}, 3.7},
		{"half of a tenth rounds up", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2}, 1.1},
		{"single rating", []int{5}, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.Classify(tt.ratings)
			require.NotNil(t, c.Average)
			assert.Equal(t, tt.want, *c.Average)
		})
	}
}

func TestClassify_Empty(t *testing.T) {
	c := domain.Classify(nil)
	assert.Nil(t, c.Average)
	assert.Nil(t, c.Health)
	assert.Nil(t, c.Priority)
	assert.False(t, c.Assessed())

	c = domain.Classify([]int{})
	assert.False(t, c.Assessed())
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		ratings  []int
		health   domain.HealthStatus
		priority domain.Priority
	}{
		{[]int{4, 4}, domain.HealthGood, domain.PriorityLow},
		{[]int{3, 3}, domain.HealthFair, domain.PriorityMedium},
		{[]int{2, 2}, domain.HealthPoor, domain.PriorityHigh},
		{[]int{1, 1}, domain.HealthCritical, domain.PriorityCritical},
		{[]int{5, 5, 5}, domain.HealthGood, domain.PriorityLow},
		{[]int{3, 4}, domain.HealthFair, domain.PriorityMedium},
		{[]int{1, 2}, domain.HealthCritical, domain.PriorityCritical},
	}

	for _, tt := range tests {
		c := domain.Classify(tt.ratings)
		require.NotNil(t, c.Health)
		require.NotNil(t, c.Priority)
		assert.Equal(t, tt.health, *c.Health, "ratings %v", tt.ratings)
		assert.Equal(t, tt.priority, *c.Priority, "ratings %v", tt.ratings)
	}
}

func TestClassifyAverage_BoundariesBelongToUpperBracket(t *testing.T) {
	assert.Equal(t, domain.HealthGood, *domain.ClassifyAverage(4.0).Health)
	assert.Equal(t, domain.HealthFair, *domain.ClassifyAverage(3.9).Health)
	assert.Equal(t, domain.HealthFair, *domain.ClassifyAverage(3.0).Health)
	assert.Equal(t, domain.HealthPoor, *domain.ClassifyAverage(2.9).Health)
	assert.Equal(t, domain.HealthPoor, *domain.ClassifyAverage(2.0).Health)
	assert.Equal(t, domain.HealthCritical, *domain.ClassifyAverage(1.9).Health)

	assert.Equal(t, domain.PriorityLow, *domain.ClassifyAverage(4.0).Priority)
	assert.Equal(t, domain.PriorityMedium, *domain.ClassifyAverage(3.0).Priority)
	assert.Equal(t, domain.PriorityHigh, *domain.ClassifyAverage(2.0).Priority)
	assert.Equal(t, domain.PriorityCritical, *domain.ClassifyAverage(1.0).Priority)
}

func TestCombineScores_Gating(t *testing.T) {
	now := time.Now()

	assert.Nil(t, domain.CombineScores(ptrFloat64(4.0), nil, now))
	assert.Nil(t, domain.CombineScores(nil, ptrFloat64(3.0), now))
	assert.Nil(t, domain.CombineScores(nil, nil, now))
}

func TestCombineScores_Weights(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	r := domain.CombineScores(ptrFloat64(4.0), ptrFloat64(3.0), now)
	require.NotNil(t, r)
	assert.Equal(t, 3.7, r.CombinedScore)
	assert.Equal(t, domain.HealthFair, r.HealthStatus)
	assert.Equal(t, domain.PriorityMedium, r.Priority)
	assert.Equal(t, now, r.LastAssessmentDate)

	// 0.7*4.5 + 0.3*3.0 = 4.05 -> 4.1 (половина вверх, без ошибок float)
	r = domain.CombineScores(ptrFloat64(4.5), ptrFloat64(3.0), now)
	require.NotNil(t, r)
	assert.Equal(t, 4.1, r.CombinedScore)
	assert.Equal(t, domain.HealthGood, r.HealthStatus)
	assert.Equal(t, domain.PriorityLow, r.Priority)

	r = domain.CombineScores(ptrFloat64(1.0), ptrFloat64(5.0), now)
	require.NotNil(t, r)
	assert.Equal(t, 2.2, r.CombinedScore)
	assert.Equal(t, domain.HealthPoor, r.HealthStatus)
	assert.Equal(t, domain.PriorityHigh, r.Priority)
}

func TestValidRating(t *testing.T) {
	assert.False(t, domain.ValidRating(0))
	assert.True(t, domain.ValidRating(1))
	assert.True(t, domain.ValidRating(5))
	assert.False(t, domain.ValidRating(6))
}
