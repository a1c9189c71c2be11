// Package models pkg/models/snapshot.go
package models

import "time"

// ComplianceStatus holds the composite indicators derived from raw metrics
// and entity summaries on every refresh. Scores are rounded to integers for
// display stability.
type ComplianceStatus struct {
	OverallScore    int `json:"overall_score"`
	SafetyScore     int `json:"safety_score"`
	ActiveModels    int `json:"active_models"`
	CriticalMetrics int `json:"critical_metrics"`
}

// Snapshot is one complete view of dashboard state at a point in time.
// A snapshot is immutable once published; every refresh produces a new one.
type Snapshot struct {
	Metrics      []Metric         `json:"metrics"`
	Models       []ModelSummary   `json:"models"`
	Simulations  []SimulationRun  `json:"simulations"`
	Requirements []Requirement    `json:"requirements"`
	Compliance   ComplianceStatus `json:"compliance"`
	LastUpdate   time.Time        `json:"last_update"`
}
