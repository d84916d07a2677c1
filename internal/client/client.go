// Package client is the data source adapter for the posture API. Reads
// fall back to fixed sample payloads on any transport failure, so
// recognized endpoints never surface an error to callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/awsposture/internal/dashboard"
	"github.com/ppiankov/awsposture/internal/mock"
)

// endpointPaths maps logical endpoint names to API paths.
var endpointPaths = map[string]string{
	"dashboard":       "/api/dashboard",
	"assessments":     "/api/assessments",
	"recommendations": "/api/recommendations",
	"security-scores": "/api/security-scores",
}

// Client talks to the posture API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL. A zero timeout means
// the default of 30 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the payload for a recognized endpoint name. On
// network failure or a non-2xx response it logs a warning and returns
// that endpoint's fallback payload instead of an error. Only an
// unrecognized endpoint name produces an error.
func (c *Client) Fetch(ctx context.Context, endpoint string) (*dashboard.DashboardPayload, error) {
	path, ok := endpointPaths[endpoint]
	if !ok {
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}

	payload, err := c.get(ctx, path)
	if err != nil {
		slog.Warn("Falling back to sample data", "endpoint", endpoint, "error", err)
		return mock.Payload(endpoint), nil
	}
	return dashboard.Normalize(payload), nil
}

// PutAssessment persists one assessment through the API. Unlike Fetch,
// write failures are propagated.
func (c *Client) PutAssessment(ctx context.Context, category dashboard.Category, a dashboard.Assessment) error {
	return c.post(ctx, "/api/assessments", dashboard.AssessmentUpload{
		Category:   category,
		Assessment: a,
	})
}

// PutRecommendation persists one recommendation through the API.
func (c *Client) PutRecommendation(ctx context.Context, r dashboard.RecommendationRecord) error {
	return c.post(ctx, "/api/recommendations", r)
}

func (c *Client) get(ctx context.Context, path string) (*dashboard.DashboardPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	var payload dashboard.DashboardPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return &payload, nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
