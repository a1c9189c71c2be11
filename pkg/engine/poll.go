// Package engine pkg/engine/poll.go — the polling fallback path.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/govradar/govradar/pkg/derive"
	"github.com/govradar/govradar/pkg/models"
)

func (e *Engine) runPolling(ctx context.Context) {
	defer e.wg.Done()

	interval := e.cfg.pollInterval()

	log.Printf("Starting polling loop with interval %v", interval)

	// Do an initial cycle immediately so consumers are not blind for a
	// full interval after boot.
	if err := e.refreshCycle(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Error during initial poll cycle: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.cfg.SuppressPollingWhenLive && e.streamConnected() {
				continue
			}

			if err := e.refreshCycle(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Error during poll cycle: %v", err)
			}
		}
	}
}

// RefreshNow runs one polling cycle immediately, regardless of timer
// phase, and returns once the cycle has completed (success or handled
// failure). Concurrent callers are serialized: the second waits for the
// first, and publishes arrive in call order. The ticker's own schedule is
// not reset.
func (e *Engine) RefreshNow(context.Context) error {
	e.mu.Lock()

	if !e.started {
		e.mu.Unlock()
		return ErrNotStarted
	}

	runCtx := e.runCtx
	e.mu.Unlock()

	return e.refreshCycle(runCtx)
}

// refreshCycle is the single poll cycle: fetch all parts, derive the
// composite status, assemble a snapshot and fan everything out. A fetch
// failure publishes nothing — subscribers keep the previous state, which
// beats erroring the UI.
func (e *Engine) refreshCycle(ctx context.Context) error {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.fetchTimeout())
	defer cancel()

	parts, err := e.source.FetchParts(fetchCtx)
	if err != nil {
		return err
	}

	status := derive.Status(e.cfg.Derive, parts.Metrics, parts.Models)

	snapshot := models.Snapshot{
		Metrics:      parts.Metrics,
		Models:       parts.Models,
		Simulations:  parts.Simulations,
		Requirements: parts.Requirements,
		Compliance:   status,
		LastUpdate:   time.Now(),
	}

	// Per-slice channels first, then the aggregate, all within the same
	// cycle so the slices seen on the dashboard channel match the ones
	// published individually.
	e.registry.Publish(models.ChannelGovernanceMetrics, parts.Metrics)
	e.registry.Publish(models.ChannelModels, parts.Models)
	e.registry.Publish(models.ChannelSimulations, parts.Simulations)
	e.registry.Publish(models.ChannelAIBill, parts.Requirements)
	e.registry.Publish(models.ChannelCompliance, status)
	e.registry.Publish(models.ChannelDashboard, snapshot)

	return nil
}
