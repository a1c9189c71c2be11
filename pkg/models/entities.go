// Package models pkg/models/entities.go
package models

import "time"

// ModelStatusActive is the entity status counted as active during derivation.
const ModelStatusActive = "ACTIVE"

// ModelSummary is one registered AI model as listed by the backend.
type ModelSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Provider  string    `json:"provider,omitempty"`
	Status    string    `json:"status"` // e.g. "ACTIVE", "SUSPENDED", "RETIRED"
	RiskTier  string    `json:"risk_tier,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SimulationRun is a recent simulation/evaluation run summary.
type SimulationRun struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Scenario    string     `json:"scenario,omitempty"`
	Status      string     `json:"status"` // e.g. "RUNNING", "COMPLETED", "FAILED"
	Progress    float64    `json:"progress"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Requirement is one regulatory requirement tracked on the dashboard.
type Requirement struct {
	ID      string    `json:"id"`
	Article string    `json:"article"`
	Title   string    `json:"title"`
	Status  string    `json:"status"` // e.g. "MET", "IN_PROGRESS", "AT_RISK"
	DueDate time.Time `json:"due_date"`
}
