// Package alerts pkg/alerts/webhook.go posts webhook notifications when
// the derived compliance status degrades. The alerter is an ordinary
// subscriber of the compliance channel; the sync engine knows nothing
// about it.
package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/govradar/govradar/pkg/config"
	"github.com/govradar/govradar/pkg/models"
)

var (
	errWebhookDisabled = fmt.Errorf("webhook alerter is disabled")
	errWebhookCooldown = fmt.Errorf("alert is within cooldown period")
	errWebhookStatus   = fmt.Errorf("webhook returned non-200 status")
)

const (
	defaultScoreThreshold = 70
	webhookTimeout        = 10 * time.Second
)

// AlertLevel classifies an alert.
type AlertLevel string

const (
	Warning AlertLevel = "warning"
	Error   AlertLevel = "error"
)

// WebhookConfig configures one webhook destination.
type WebhookConfig struct {
	Enabled        bool            `json:"enabled"`
	URL            string          `json:"url"`
	Headers        []Header        `json:"headers,omitempty"` // Custom headers
	Cooldown       config.Duration `json:"cooldown,omitempty"`
	ScoreThreshold int             `json:"score_threshold,omitempty"`
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ComplianceAlert is the webhook payload.
type ComplianceAlert struct {
	Level           AlertLevel `json:"level"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	Timestamp       string     `json:"timestamp"`
	OverallScore    int        `json:"overall_score"`
	CriticalMetrics int        `json:"critical_metrics"`
}

// WebhookAlerter posts compliance alerts, rate limited by a per-level
// cooldown.
type WebhookAlerter struct {
	config         WebhookConfig
	client         *http.Client
	mu             sync.Mutex
	lastAlertTimes map[AlertLevel]time.Time
}

func NewWebhookAlerter(cfg WebhookConfig) *WebhookAlerter {
	return &WebhookAlerter{
		config: cfg,
		client: &http.Client{
			Timeout: webhookTimeout,
		},
		lastAlertTimes: make(map[AlertLevel]time.Time),
	}
}

func (w *WebhookAlerter) IsEnabled() bool {
	return w.config.Enabled
}

func (w *WebhookAlerter) scoreThreshold() int {
	if w.config.ScoreThreshold > 0 {
		return w.config.ScoreThreshold
	}

	return defaultScoreThreshold
}

// Evaluate checks the derived status against the thresholds and fires a
// webhook when it degrades. Failures are logged, never propagated: the
// publish path must not notice a broken webhook.
func (w *WebhookAlerter) Evaluate(status models.ComplianceStatus) {
	alert, degraded := w.classify(status)
	if !degraded {
		return
	}

	if err := w.Alert(alert); err != nil {
		log.Printf("Failed to send compliance alert: %v", err)
	}
}

func (w *WebhookAlerter) classify(status models.ComplianceStatus) (*ComplianceAlert, bool) {
	switch {
	case status.CriticalMetrics > 0:
		return &ComplianceAlert{
			Level:   Error,
			Title:   "Critical governance metrics",
			Message: fmt.Sprintf("%d metric(s) in CRITICAL state", status.CriticalMetrics),
		}, true
	case status.OverallScore < w.scoreThreshold():
		return &ComplianceAlert{
			Level: Warning,
			Title: "Compliance score degraded",
			Message: fmt.Sprintf("Overall compliance score %d is below threshold %d",
				status.OverallScore, w.scoreThreshold()),
		}, true
	default:
		return nil, false
	}
}

// Alert posts the alert to the configured webhook.
func (w *WebhookAlerter) Alert(alert *ComplianceAlert) error {
	if !w.config.Enabled {
		return errWebhookDisabled
	}

	if !w.checkCooldown(alert.Level) {
		return errWebhookCooldown
	}

	alert.Timestamp = time.Now().UTC().Format(time.RFC3339)

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	for _, header := range w.config.Headers {
		req.Header.Set(header.Key, header.Value)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: %d", errWebhookStatus, resp.StatusCode)
	}

	return nil
}

func (w *WebhookAlerter) checkCooldown(level AlertLevel) bool {
	cooldown := time.Duration(w.config.Cooldown)
	if cooldown <= 0 {
		return true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	last, ok := w.lastAlertTimes[level]
	if ok && time.Since(last) < cooldown {
		return false
	}

	w.lastAlertTimes[level] = time.Now()

	return true
}
