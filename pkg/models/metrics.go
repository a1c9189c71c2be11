// Package models pkg/models/metrics.go
package models

import "time"

// MetricStatus classifies a metric against its threshold.
type MetricStatus string

const (
	StatusGood     MetricStatus = "GOOD"
	StatusWarning  MetricStatus = "WARNING"
	StatusCritical MetricStatus = "CRITICAL"
)

// MetricCategory groups metrics for derivation.
type MetricCategory string

const (
	CategoryCompliance  MetricCategory = "compliance"
	CategorySafety      MetricCategory = "safety"
	CategoryPerformance MetricCategory = "performance"
	CategoryFairness    MetricCategory = "fairness"
)

// Metric is a single governance metric as reported by the backend.
type Metric struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Value     float64        `json:"value"`
	Unit      string         `json:"unit"`
	Trend     float64        `json:"trend"` // delta vs. previous reading
	Threshold float64        `json:"threshold"`
	Status    MetricStatus   `json:"status"`
	Category  MetricCategory `json:"category"`
	UpdatedAt time.Time      `json:"updated_at"`
}
