// Package client talks to the energy budget REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Activity is one catalog entry as the API serialises it.
type Activity struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Type       string  `json:"type"`
}

// Pair is a linked drain/boost couple.
type Pair struct {
	ID            string   `json:"_id"`
	DrainActivity Activity `json:"drainActivity"`
	BoostActivity Activity `json:"boostActivity"`
}

// PlanEntry is one item of today's plan on the server.
type PlanEntry struct {
	ID       string   `json:"_id"`
	Activity Activity `json:"activity"`
}

// Snapshot is a persisted day.
type Snapshot struct {
	Date         string     `json:"date"`
	Activities   []Activity `json:"activities"`
	DrainedTotal float64    `json:"drainedTotal"`
	BoostedTotal float64    `json:"boostedTotal"`
}

// DistributionPoint is a per-date drained/gave aggregate.
type DistributionPoint struct {
	Date    string  `json:"date"`
	Drained float64 `json:"drained"`
	Gave    float64 `json:"gave"`
}

// APIError carries a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (%d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Client provides typed access to the energy budget API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a Client. If baseURL is empty it defaults to the local dev
// server.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListActivities fetches the full catalog.
func (c *Client) ListActivities(ctx context.Context) ([]Activity, error) {
	var out []Activity
	err := c.do(ctx, http.MethodGet, "/activities", nil, &out)
	return out, err
}

// CreateActivity registers a new activity and returns it with the
// server-assigned id.
func (c *Client) CreateActivity(ctx context.Context, name string, percentage float64, kind string) (*Activity, error) {
	body := map[string]any{"name": name, "percentage": percentage, "type": kind}
	var out Activity
	if err := c.do(ctx, http.MethodPost, "/activities/add", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateActivity overwrites name and percentage of an activity.
func (c *Client) UpdateActivity(ctx context.Context, id, name string, percentage float64) (*Activity, error) {
	body := map[string]any{"name": name, "percentage": percentage}
	var out Activity
	if err := c.do(ctx, http.MethodPut, "/activities/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteActivity removes one catalog entry.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/activities/"+url.PathEscape(id), nil, nil)
}

// ListPairs fetches all drain/boost pairs.
func (c *Client) ListPairs(ctx context.Context) ([]Pair, error) {
	var out []Pair
	err := c.do(ctx, http.MethodGet, "/contra-pro-pair-test", nil, &out)
	return out, err
}

// CreatePair registers both halves atomically.
func (c *Client) CreatePair(ctx context.Context, drainName string, drainPct float64, boostName string, boostPct float64) (*Pair, error) {
	body := map[string]any{
		"drainActivity": map[string]any{"name": drainName, "percentage": drainPct},
		"boostActivity": map[string]any{"name": boostName, "percentage": boostPct},
	}
	var out Pair
	if err := c.do(ctx, http.MethodPost, "/contra-pro-pair-test", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePair removes the pair and both of its activities.
func (c *Client) DeletePair(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/contra-pro-pair-test/"+url.PathEscape(id), nil, nil)
}

// ListPlan fetches today's plan.
func (c *Client) ListPlan(ctx context.Context) ([]PlanEntry, error) {
	var out []PlanEntry
	err := c.do(ctx, http.MethodGet, "/todays-activities", nil, &out)
	return out, err
}

// AddToPlan puts one activity on today's plan.
func (c *Client) AddToPlan(ctx context.Context, activityID string) (*PlanEntry, error) {
	body := map[string]any{"activityId": activityID}
	var out PlanEntry
	if err := c.do(ctx, http.MethodPost, "/todays-activities", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFromPlan takes one entry off today's plan.
func (c *Client) RemoveFromPlan(ctx context.Context, entryID string) error {
	return c.do(ctx, http.MethodDelete, "/todays-activities/"+url.PathEscape(entryID), nil, nil)
}

// ClearPlan empties today's plan.
func (c *Client) ClearPlan(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/todays-activities/all", nil, nil)
}

// SaveDay persists a snapshot for the given date.
func (c *Client) SaveDay(ctx context.Context, date string, activities []Activity) (*Snapshot, error) {
	body := map[string]any{"date": date, "activities": activities}
	var out Snapshot
	if err := c.do(ctx, http.MethodPost, "/saved-todays-activities", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSnapshot fetches the snapshot saved for a date.
func (c *Client) GetSnapshot(ctx context.Context, date string) (*Snapshot, error) {
	var out Snapshot
	if err := c.do(ctx, http.MethodGet, "/saved-todays-activities/"+url.PathEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TodaysBoosts fetches the boost halves of today's saved snapshot.
func (c *Client) TodaysBoosts(ctx context.Context) ([]Activity, error) {
	var out []Activity
	err := c.do(ctx, http.MethodGet, "/saved-todays-only-boost", nil, &out)
	return out, err
}

// EnergyLevel reads the current energy scalar.
func (c *Client) EnergyLevel(ctx context.Context) (float64, error) {
	var out struct {
		Level float64 `json:"level"`
	}
	if err := c.do(ctx, http.MethodGet, "/current-energy-level", nil, &out); err != nil {
		return 0, err
	}
	return out.Level, nil
}

// SetEnergyLevel stores the energy scalar.
func (c *Client) SetEnergyLevel(ctx context.Context, level float64) error {
	body := map[string]any{"level": level}
	return c.do(ctx, http.MethodPost, "/current-energy-level", body, nil)
}

// Distribution fetches the per-date drained/gave history.
func (c *Client) Distribution(ctx context.Context) ([]DistributionPoint, error) {
	var out []DistributionPoint
	err := c.do(ctx, http.MethodGet, "/resources-distribution", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Error bodies are best effort; the status code alone is enough.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
