// Package engine pkg/engine/stream.go — the event-stream path and its
// reconnect policy.
package engine

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/govradar/govradar/pkg/models"
	"github.com/govradar/govradar/pkg/stream"
)

// runStream owns the stream connection lifecycle: dial, read until
// disconnect, reconnect with backoff. Once the retry budget is exhausted
// the stream path shuts down for the rest of the process lifetime; the
// polling loop is untouched.
func (e *Engine) runStream(ctx context.Context) {
	defer e.wg.Done()

	attempt := 0

	for {
		if ctx.Err() != nil {
			return
		}

		e.setState(models.StateConnecting)

		disc := make(chan error, 1)

		client := stream.NewClient(e.cfg.StreamURL, e.routeMessage, func(err error) {
			disc <- err
		})

		if err := client.Connect(ctx); err != nil {
			log.Printf("Stream connect to %s failed: %v", e.cfg.StreamURL, err)

			attempt++
			if !e.retryAfter(ctx, attempt) {
				return
			}

			continue
		}

		e.mu.Lock()
		e.streamClient = client

		if !e.stopped {
			e.state = models.StateConnected
			e.retries = 0
		}
		e.mu.Unlock()

		log.Printf("Stream connected to %s", e.cfg.StreamURL)

		attempt = 0

		var discErr error

		select {
		case <-ctx.Done():
			client.Close()
			return
		case discErr = <-disc:
		}

		if discErr == nil {
			// Clean local close.
			return
		}

		log.Printf("Stream disconnected: %v", discErr)

		attempt++
		if !e.retryAfter(ctx, attempt) {
			return
		}
	}
}

// retryAfter records the failed attempt and waits out the backoff delay.
// It returns false when the retry budget is exhausted or the engine is
// shutting down.
func (e *Engine) retryAfter(ctx context.Context, attempt int) bool {
	e.mu.Lock()
	e.retries = attempt
	e.mu.Unlock()

	if !e.cfg.Backoff.ShouldRetry(attempt) {
		e.giveUpStream()
		return false
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(e.cfg.Backoff.NextDelay(attempt)):
		return true
	}
}

func (e *Engine) giveUpStream() {
	if e.cfg.EnablePolling {
		log.Printf("Stream retries exhausted; continuing with polling only")
		e.setState(models.StatePolling)

		return
	}

	log.Printf("Stream retries exhausted and polling disabled; no further updates")
	e.setState(models.StateFailed)
}

// routeMessage decodes an inbound stream message and publishes its typed
// payload to the channel implied by the message kind. Unknown kinds and
// undecodable payloads are logged and dropped.
func (e *Engine) routeMessage(msg models.StreamMessage) {
	channel, ok := msg.Kind.Channel()
	if !ok {
		log.Printf("Dropping stream message with unknown kind %q", msg.Kind)
		return
	}

	payload, err := decodePayload(msg)
	if err != nil {
		log.Printf("Dropping undecodable %q stream message: %v", msg.Kind, err)
		return
	}

	e.registry.Publish(channel, payload)
}

func decodePayload(msg models.StreamMessage) (interface{}, error) {
	switch msg.Kind {
	case models.KindGovernanceMetrics:
		var v []models.Metric
		err := json.Unmarshal(msg.Data, &v)

		return v, err
	case models.KindModelStatus:
		var v []models.ModelSummary
		err := json.Unmarshal(msg.Data, &v)

		return v, err
	case models.KindRunProgress:
		var v []models.SimulationRun
		err := json.Unmarshal(msg.Data, &v)

		return v, err
	case models.KindCompliance:
		var v models.ComplianceStatus
		err := json.Unmarshal(msg.Data, &v)

		return v, err
	case models.KindRequirements:
		var v []models.Requirement
		err := json.Unmarshal(msg.Data, &v)

		return v, err
	default:
		// Unreachable: Channel() already filtered unknown kinds.
		return msg.Data, nil
	}
}
