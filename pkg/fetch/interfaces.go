// Package fetch pkg/fetch/interfaces.go

//go:generate mockgen -destination=mock_fetch.go -package=fetch github.com/govradar/govradar/pkg/fetch SnapshotSource

package fetch

import (
	"context"

	"github.com/govradar/govradar/pkg/models"
)

// Parts holds the four independently fetched slices of dashboard data.
// A Parts value is only ever complete: if any read fails, no Parts is
// returned at all.
type Parts struct {
	Metrics      []models.Metric
	Models       []models.ModelSummary
	Simulations  []models.SimulationRun
	Requirements []models.Requirement
}

// SnapshotSource fetches the full set of snapshot parts from a backend.
type SnapshotSource interface {
	FetchParts(ctx context.Context) (*Parts, error)
}
