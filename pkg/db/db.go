// Package db pkg/db/db.go provides SQLite persistence for derived
// compliance history. The store is wired as a subscriber of the compliance
// channel; the engine itself never touches it.
package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/govradar/govradar/pkg/models"
)

const (
	createTablesSQL = `
	-- Derived compliance indicators, one row per refresh cycle.
	CREATE TABLE IF NOT EXISTS compliance_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		overall_score INTEGER NOT NULL,
		safety_score INTEGER NOT NULL,
		active_models INTEGER NOT NULL,
		critical_metrics INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_compliance_history_time
		ON compliance_history(timestamp);

	-- Enable WAL mode for better concurrent access
	PRAGMA journal_mode=WAL;
	`

	defaultHistoryLimit = 100
)

// DB implements Service on top of SQLite.
type DB struct {
	*sql.DB
}

// New opens (creating if necessary) the database at dbPath and initializes
// the schema.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedOpenDB, err)
	}

	if _, err := sqlDB.Exec(createTablesSQL); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			return nil, fmt.Errorf("%w: %v (close: %v)", ErrFailedToInit, err, closeErr)
		}

		return nil, fmt.Errorf("%w: %v", ErrFailedToInit, err)
	}

	return &DB{DB: sqlDB}, nil
}

// RecordCompliance appends one derived status row.
func (db *DB) RecordCompliance(timestamp time.Time, status models.ComplianceStatus) error {
	_, err := db.Exec(`
		INSERT INTO compliance_history
			(timestamp, overall_score, safety_score, active_models, critical_metrics)
		VALUES (?, ?, ?, ?, ?)`,
		timestamp,
		status.OverallScore,
		status.SafetyScore,
		status.ActiveModels,
		status.CriticalMetrics,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToInsert, err)
	}

	return nil
}

// GetComplianceHistory returns the most recent points, newest first.
// A non-positive limit selects the default.
func (db *DB) GetComplianceHistory(limit int) ([]CompliancePoint, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := db.Query(`
		SELECT timestamp, overall_score, safety_score, active_models, critical_metrics
		FROM compliance_history
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var points []CompliancePoint

	for rows.Next() {
		var p CompliancePoint

		err := rows.Scan(
			&p.Timestamp,
			&p.Status.OverallScore,
			&p.Status.SafetyScore,
			&p.Status.ActiveModels,
			&p.Status.CriticalMetrics,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToScan, err)
		}

		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToQuery, err)
	}

	return points, nil
}

// CleanOldData removes history older than the retention period.
func (db *DB) CleanOldData(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	if _, err := db.Exec(`DELETE FROM compliance_history WHERE timestamp < ?`, cutoff); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToClean, err)
	}

	return nil
}
