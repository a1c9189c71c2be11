package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govradar/govradar/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})

	return database
}

func TestRecordAndGetHistory(t *testing.T) {
	database := newTestDB(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	for i := 0; i < 3; i++ {
		status := models.ComplianceStatus{
			OverallScore:    80 + i,
			SafetyScore:     88,
			ActiveModels:    5,
			CriticalMetrics: i,
		}

		require.NoError(t, database.RecordCompliance(base.Add(time.Duration(i)*time.Minute), status))
	}

	points, err := database.GetComplianceHistory(10)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Newest first.
	assert.Equal(t, 82, points[0].Status.OverallScore)
	assert.Equal(t, 80, points[2].Status.OverallScore)
	assert.Equal(t, 88, points[0].Status.SafetyScore)
	assert.True(t, points[0].Timestamp.After(points[2].Timestamp))
}

func TestGetHistoryLimit(t *testing.T) {
	database := newTestDB(t)

	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, database.RecordCompliance(
			base.Add(time.Duration(i)*time.Minute),
			models.ComplianceStatus{OverallScore: 80 + i},
		))
	}

	points, err := database.GetComplianceHistory(2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 84, points[0].Status.OverallScore)
}

func TestGetHistoryEmpty(t *testing.T) {
	database := newTestDB(t)

	points, err := database.GetComplianceHistory(10)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCleanOldData(t *testing.T) {
	database := newTestDB(t)

	now := time.Now()

	require.NoError(t, database.RecordCompliance(now.Add(-48*time.Hour), models.ComplianceStatus{OverallScore: 70}))
	require.NoError(t, database.RecordCompliance(now, models.ComplianceStatus{OverallScore: 90}))

	require.NoError(t, database.CleanOldData(24*time.Hour))

	points, err := database.GetComplianceHistory(10)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 90, points[0].Status.OverallScore)
}
