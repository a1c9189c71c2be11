// Package fetch pkg/fetch/client.go implements the REST data source
// adapter. One FetchParts call performs four independent reads against the
// backend in parallel and fails fast if any of them fails: callers never
// see a half-populated snapshot.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/govradar/govradar/pkg/models"
)

const (
	defaultTimeout = 10 * time.Second

	metricsPath      = "/api/governance/metrics"
	modelsPath       = "/api/models?page=1&page_size=50"
	runsPath         = "/api/simulations/runs?page=1&page_size=20"
	requirementsPath = "/api/regulations/requirements"
)

// Client is the REST implementation of SnapshotSource.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given backend base URL. A
// non-positive timeout selects the default overall request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchParts performs the four backend reads in parallel. The first
// failure cancels the remaining reads and fails the whole call.
func (c *Client) FetchParts(ctx context.Context) (*Parts, error) {
	parts := &Parts{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		metrics, err := c.fetchMetrics(ctx)
		if err != nil {
			return fmt.Errorf("governance metrics: %w", err)
		}

		parts.Metrics = metrics

		return nil
	})

	g.Go(func() error {
		summaries, err := c.fetchModels(ctx)
		if err != nil {
			return fmt.Errorf("models: %w", err)
		}

		parts.Models = summaries

		return nil
	})

	g.Go(func() error {
		runs, err := c.fetchSimulations(ctx)
		if err != nil {
			return fmt.Errorf("simulation runs: %w", err)
		}

		parts.Simulations = runs

		return nil
	})

	g.Go(func() error {
		reqs, err := c.fetchRequirements(ctx)
		if err != nil {
			return fmt.Errorf("requirements: %w", err)
		}

		parts.Requirements = reqs

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return parts, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d from %s", ErrBackendStatus, resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func (c *Client) fetchMetrics(ctx context.Context) ([]models.Metric, error) {
	body, err := c.get(ctx, metricsPath)
	if err != nil {
		return nil, err
	}

	var list []models.Metric
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Items []models.Metric `json:"items"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return envelope.Items, nil
}

func (c *Client) fetchModels(ctx context.Context) ([]models.ModelSummary, error) {
	body, err := c.get(ctx, modelsPath)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Items []models.ModelSummary `json:"items"`
		Total int                   `json:"total"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var list []models.ModelSummary
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return list, nil
}

func (c *Client) fetchSimulations(ctx context.Context) ([]models.SimulationRun, error) {
	body, err := c.get(ctx, runsPath)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Items []models.SimulationRun `json:"items"`
		Total int                    `json:"total"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var list []models.SimulationRun
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return list, nil
}

func (c *Client) fetchRequirements(ctx context.Context) ([]models.Requirement, error) {
	body, err := c.get(ctx, requirementsPath)
	if err != nil {
		return nil, err
	}

	var list []models.Requirement
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Items []models.Requirement `json:"items"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return envelope.Items, nil
}
