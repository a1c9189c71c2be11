// Package derive pkg/derive/derive.go computes the composite compliance
// indicators published on every refresh cycle.
package derive

import (
	"math"

	"github.com/govradar/govradar/pkg/models"
)

const (
	// Fallback scores used when no metric of the relevant category exists.
	DefaultComplianceScore = 82
	DefaultSafetyScore     = 88
)

// Config carries the fallback constants. The zero value selects the
// package defaults.
type Config struct {
	DefaultComplianceScore int `json:"default_compliance_score"`
	DefaultSafetyScore     int `json:"default_safety_score"`
}

func (c Config) complianceDefault() int {
	if c.DefaultComplianceScore > 0 {
		return c.DefaultComplianceScore
	}

	return DefaultComplianceScore
}

func (c Config) safetyDefault() int {
	if c.DefaultSafetyScore > 0 {
		return c.DefaultSafetyScore
	}

	return DefaultSafetyScore
}

// Status derives the composite indicators from the current metric set and
// entity summaries. It is pure and total: nil or malformed inputs degrade
// to the configured defaults rather than failing.
func Status(cfg Config, metrics []models.Metric, entities []models.ModelSummary) models.ComplianceStatus {
	status := models.ComplianceStatus{
		OverallScore: categoryMean(metrics, models.CategoryCompliance, cfg.complianceDefault()),
		SafetyScore:  categoryMean(metrics, models.CategorySafety, cfg.safetyDefault()),
	}

	for _, e := range entities {
		if e.Status == models.ModelStatusActive {
			status.ActiveModels++
		}
	}

	for _, m := range metrics {
		if m.Status == models.StatusCritical {
			status.CriticalMetrics++
		}
	}

	return status
}

// categoryMean averages the values of metrics in the given category,
// rounded to the nearest integer. NaN and infinite values are skipped; if
// nothing usable remains, the fallback is returned.
func categoryMean(metrics []models.Metric, category models.MetricCategory, fallback int) int {
	var sum float64

	var count int

	for _, m := range metrics {
		if m.Category != category {
			continue
		}

		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			continue
		}

		sum += m.Value
		count++
	}

	if count == 0 {
		return fallback
	}

	return int(math.Round(sum / float64(count)))
}
