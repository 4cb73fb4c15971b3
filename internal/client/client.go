// Package client implements the three workflow collaborator interfaces over
// the resilience-agent HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deg-labs/resilience-agent/internal/model"
)

// Client talks to a resilience-agent server. All methods are safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// RunScenario calls the scenario/risk collaborator. Absent assets or risks
// fields decode to nil and are normalized to empty by the orchestrator.
func (c *Client) RunScenario(ctx context.Context, sc model.Scenario) (*model.ScenarioResponse, error) {
	var resp model.ScenarioResponse
	if err := c.post(ctx, "/scenario/run", sc, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlanMitigation calls the AI planning collaborator.
func (c *Client) PlanMitigation(ctx context.Context, req model.MitigationRequest) (*model.MitigationPlan, error) {
	var resp model.MitigationPlan
	if err := c.post(ctx, "/agent/mitigate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteDispatch calls the dispatch network collaborator.
func (c *Client) ExecuteDispatch(ctx context.Context, actions []model.MitigationAction) ([]model.DispatchLogEntry, error) {
	var resp model.DispatchResponse
	if err := c.post(ctx, "/beckn/execute", model.DispatchRequest{Actions: actions}, &resp); err != nil {
		return nil, err
	}
	return resp.Log, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
