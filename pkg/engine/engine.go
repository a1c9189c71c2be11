// Package engine pkg/engine/engine.go implements the synchronization
// engine: it owns the event-stream connection lifecycle, drives the
// polling fallback, derives composite metrics and fans results out through
// the channel registry.
//
// Both transports may run at the same time by design: a stream-derived
// update and a polling-derived snapshot are idempotent projections of the
// same backend state, so consumers treat every publish as an upsert of
// current state. SuppressPollingWhenLive opts out of that redundancy.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/govradar/govradar/pkg/backoff"
	"github.com/govradar/govradar/pkg/channels"
	"github.com/govradar/govradar/pkg/config"
	"github.com/govradar/govradar/pkg/derive"
	"github.com/govradar/govradar/pkg/fetch"
	"github.com/govradar/govradar/pkg/models"
	"github.com/govradar/govradar/pkg/stream"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

// Config controls the engine's transports and pacing.
type Config struct {
	StreamURL               string          `json:"stream_url"`
	PollInterval            config.Duration `json:"poll_interval"`
	FetchTimeout            config.Duration `json:"fetch_timeout"`
	EnableStream            bool            `json:"enable_stream"`
	EnablePolling           bool            `json:"enable_polling"`
	SuppressPollingWhenLive bool            `json:"suppress_polling_when_live"`
	Backoff                 backoff.Policy  `json:"backoff"`
	Derive                  derive.Config   `json:"derive"`
}

func (c Config) pollInterval() time.Duration {
	if d := time.Duration(c.PollInterval); d > 0 {
		return d
	}

	return defaultPollInterval
}

func (c Config) fetchTimeout() time.Duration {
	if d := time.Duration(c.FetchTimeout); d > 0 {
		return d
	}

	return defaultFetchTimeout
}

// Engine keeps dashboard consumers current. Construct one per process with
// New, start it once at boot and stop it at shutdown.
type Engine struct {
	cfg      Config
	source   fetch.SnapshotSource
	registry *channels.Registry

	mu           sync.Mutex
	state        models.ConnectionState
	retries      int
	streamClient *stream.Client
	started      bool
	stopped      bool
	cancel       context.CancelFunc
	runCtx       context.Context

	// cycleMu serializes refresh cycles: the ticker and RefreshNow callers
	// take turns, so publishes never interleave out of order.
	cycleMu sync.Mutex

	wg sync.WaitGroup
}

// New creates an engine. The registry is where all updates are published;
// consumers subscribe there.
func New(cfg Config, source fetch.SnapshotSource, registry *channels.Registry) *Engine {
	return &Engine{
		cfg:      cfg,
		source:   source,
		registry: registry,
		state:    models.StateDisconnected,
	}
}

// Start launches the enabled transports. The stream manager and the
// polling loop run concurrently; polling performs an immediate first cycle
// before settling into its interval. Starting an engine twice is an error.
func (e *Engine) Start(context.Context) error {
	e.mu.Lock()

	if e.started {
		e.mu.Unlock()
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e.started = true
	e.runCtx = runCtx
	e.cancel = cancel
	e.state = models.StateConnecting

	if !e.cfg.EnableStream {
		if e.cfg.EnablePolling {
			e.state = models.StatePolling
		} else {
			e.state = models.StateDisconnected
		}
	}

	e.mu.Unlock()

	if e.cfg.EnableStream {
		e.wg.Add(1)

		go e.runStream(runCtx)
	}

	if e.cfg.EnablePolling {
		e.wg.Add(1)

		go e.runPolling(runCtx)
	}

	return nil
}

// Stop cancels the polling timer, closes the stream and waits for both
// loops to exit. At most the one cycle already in flight may still publish;
// once Stop returns, nothing further fires. Stopping twice is a no-op.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()

	if !e.started || e.stopped {
		e.mu.Unlock()
		return nil
	}

	e.stopped = true
	cancel := e.cancel
	client := e.streamClient
	e.mu.Unlock()

	cancel()

	if client != nil {
		client.Close()
	}

	done := make(chan struct{})

	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	e.mu.Lock()
	e.state = models.StateDisconnected
	e.mu.Unlock()

	return nil
}

// ConnectionStatus reports the currently active transport.
func (e *Engine) ConnectionStatus() models.ConnectionStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == models.StateConnected {
		return models.ConnectionStatus{IsConnected: true, Transport: models.TransportStream}
	}

	if e.started && !e.stopped && e.cfg.EnablePolling {
		return models.ConnectionStatus{IsConnected: true, Transport: models.TransportPolling}
	}

	return models.ConnectionStatus{IsConnected: false, Transport: models.TransportDisconnected}
}

// State returns the engine's connection state.
func (e *Engine) State() models.ConnectionState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Retries returns the current stream retry counter.
func (e *Engine) Retries() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.retries
}

func (e *Engine) setState(s models.ConnectionState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Stop owns the terminal transition.
	if e.stopped {
		return
	}

	e.state = s
}

func (e *Engine) streamConnected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state == models.StateConnected
}
