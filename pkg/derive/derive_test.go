package derive

import (
	"math"
	"testing"

	"github.com/govradar/govradar/pkg/models"
	"github.com/stretchr/testify/assert"
)

func complianceMetric(id string, value float64) models.Metric {
	return models.Metric{
		ID:       id,
		Value:    value,
		Category: models.CategoryCompliance,
		Status:   models.StatusGood,
	}
}

func TestStatusEmptyInputs(t *testing.T) {
	got := Status(Config{}, nil, nil)

	assert.Equal(t, models.ComplianceStatus{
		OverallScore:    DefaultComplianceScore,
		SafetyScore:     DefaultSafetyScore,
		ActiveModels:    0,
		CriticalMetrics: 0,
	}, got)
}

func TestStatusComplianceMean(t *testing.T) {
	metrics := []models.Metric{
		complianceMetric("m1", 80),
		complianceMetric("m2", 84),
		complianceMetric("m3", 88),
	}

	got := Status(Config{}, metrics, nil)

	assert.Equal(t, 84, got.OverallScore)
	assert.Equal(t, DefaultSafetyScore, got.SafetyScore, "no safety metrics, expect fallback")
}

func TestStatusRounding(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{name: "rounds up", values: []float64{80, 81}, want: 81},   // 80.5
		{name: "rounds down", values: []float64{80, 80.8}, want: 80}, // 80.4
		{name: "single value", values: []float64{91.2}, want: 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := make([]models.Metric, 0, len(tt.values))
			for i, v := range tt.values {
				metrics = append(metrics, complianceMetric(string(rune('a'+i)), v))
			}

			got := Status(Config{}, metrics, nil)
			assert.Equal(t, tt.want, got.OverallScore)
		})
	}
}

func TestStatusCounts(t *testing.T) {
	metrics := []models.Metric{
		{ID: "m1", Category: models.CategoryPerformance, Status: models.StatusCritical},
		{ID: "m2", Category: models.CategorySafety, Value: 90, Status: models.StatusCritical},
		{ID: "m3", Category: models.CategoryCompliance, Value: 75, Status: models.StatusWarning},
	}

	entities := []models.ModelSummary{
		{ID: "e1", Status: models.ModelStatusActive},
		{ID: "e2", Status: "SUSPENDED"},
		{ID: "e3", Status: models.ModelStatusActive},
	}

	got := Status(Config{}, metrics, entities)

	assert.Equal(t, 2, got.ActiveModels)
	assert.Equal(t, 2, got.CriticalMetrics)
	assert.Equal(t, 75, got.OverallScore)
	assert.Equal(t, 90, got.SafetyScore)
}

func TestStatusSkipsNonFiniteValues(t *testing.T) {
	metrics := []models.Metric{
		complianceMetric("m1", math.NaN()),
		complianceMetric("m2", math.Inf(1)),
	}

	got := Status(Config{}, metrics, nil)

	// Nothing usable in the category, so the fallback applies.
	assert.Equal(t, DefaultComplianceScore, got.OverallScore)
}

func TestStatusCustomDefaults(t *testing.T) {
	cfg := Config{
		DefaultComplianceScore: 70,
		DefaultSafetyScore:     75,
	}

	got := Status(cfg, nil, nil)

	assert.Equal(t, 70, got.OverallScore)
	assert.Equal(t, 75, got.SafetyScore)
}
