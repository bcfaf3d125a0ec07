// Package source loads the four static JSON resources that make up a
// dashboard dataset: a typed HTTP fetch client and a memoizing loader with
// in-flight request de-duplication and an optional synthetic fallback.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/creek-quality-dashboard/internal/domain"
	"github.com/couchcryptid/creek-quality-dashboard/internal/observability"
)

// Resource keys, shared by the client, loader cache, and metrics labels.
// Each maps to "<base URL>/<key>.json".
const (
	ResourceStations      = "stations"
	ResourceMeasurements  = "measurements"
	ResourceLatestValues  = "latest_values"
	ResourceAnalyteRanges = "analyte_ranges"
)

// Client fetches dashboard resources as JSON over HTTP, validating payload
// shape at the boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a resource fetch client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Stations fetches stations.json.
func (c *Client) Stations(ctx context.Context) (map[string]domain.Station, error) {
	return fetch[map[string]domain.Station](ctx, c, ResourceStations)
}

// Measurements fetches measurements.json.
func (c *Client) Measurements(ctx context.Context) (map[string]domain.Series, error) {
	return fetch[map[string]domain.Series](ctx, c, ResourceMeasurements)
}

// LatestValues fetches latest_values.json.
func (c *Client) LatestValues(ctx context.Context) (map[string]map[string]domain.LatestValue, error) {
	return fetch[map[string]map[string]domain.LatestValue](ctx, c, ResourceLatestValues)
}

// AnalyteRanges fetches analyte_ranges.json.
func (c *Client) AnalyteRanges(ctx context.Context) (domain.Ranges, error) {
	return fetch[domain.Ranges](ctx, c, ResourceAnalyteRanges)
}

func fetch[T any](ctx context.Context, c *Client, resource string) (T, error) {
	var zero T

	start := time.Now()
	u := fmt.Sprintf("%s/%s.json", c.baseURL, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return zero, fmt.Errorf("create request for %s: %w", resource, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ResourceFetches.WithLabelValues(resource, "error").Inc()
		return zero, fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ResourceFetches.WithLabelValues(resource, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return zero, fmt.Errorf("fetch %s: status %d: %s", resource, resp.StatusCode, body)
	}

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		c.metrics.ResourceFetches.WithLabelValues(resource, "error").Inc()
		return zero, fmt.Errorf("decode %s: %w", resource, err)
	}

	c.metrics.ResourceFetches.WithLabelValues(resource, "success").Inc()
	c.metrics.FetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	c.logger.Debug("resource fetched", "resource", resource, "duration", time.Since(start))

	return v, nil
}
