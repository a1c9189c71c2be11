// Package db pkg/db/interfaces.go

//go:generate mockgen -destination=mock_db.go -package=db github.com/govradar/govradar/pkg/db Service

package db

import (
	"time"

	"github.com/govradar/govradar/pkg/models"
)

// CompliancePoint is one stored derived-status row, used to serve history
// out of the database.
type CompliancePoint struct {
	Timestamp time.Time               `json:"timestamp"`
	Status    models.ComplianceStatus `json:"status"`
}

// Service represents all database operations.
type Service interface {
	RecordCompliance(timestamp time.Time, status models.ComplianceStatus) error
	GetComplianceHistory(limit int) ([]CompliancePoint, error)
	CleanOldData(retention time.Duration) error
	Close() error
}
