// Package sheets implements the roster store against a Google Apps Script
// web app. The script serves full sheets as JSON row arrays via
// GET ?sheet=<name> and applies single-cell updates via POST with a
// {sheet, keyColumn, keyValue, updateColumn, updateValue} payload.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skyops/dronecoord/core/model"
	"github.com/skyops/dronecoord/core/roster"
	"github.com/skyops/dronecoord/infra/logger"
)

// Config defines the connection parameters for the Apps Script gateway.
type Config struct {
	ScriptURL      string `json:"script_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ScriptURL == "" {
		return fmt.Errorf("script_url is required")
	}
	return nil
}

// Client talks to the Apps Script gateway. It implements roster.Store.
type Client struct {
	httpClient *http.Client
	scriptURL  string
	log        logger.Logger
}

// NewClient creates a Client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sheets config: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		scriptURL:  cfg.ScriptURL,
		log:        logger.New("sheets-client"),
	}, nil
}

// Pilots reads the full Pilots sheet.
func (c *Client) Pilots(ctx context.Context) ([]model.Pilot, error) {
	rows, err := c.readSheet(ctx, roster.TablePilots)
	if err != nil {
		return nil, err
	}
	pilots := make([]model.Pilot, 0, len(rows))
	for _, r := range rows {
		pilots = append(pilots, pilotFromRow(r))
	}
	return pilots, nil
}

// Drones reads the full Drones sheet.
func (c *Client) Drones(ctx context.Context) ([]model.Drone, error) {
	rows, err := c.readSheet(ctx, roster.TableDrones)
	if err != nil {
		return nil, err
	}
	drones := make([]model.Drone, 0, len(rows))
	for _, r := range rows {
		drones = append(drones, droneFromRow(r))
	}
	return drones, nil
}

// Missions reads the full Missions sheet.
func (c *Client) Missions(ctx context.Context) ([]model.Mission, error) {
	rows, err := c.readSheet(ctx, roster.TableMissions)
	if err != nil {
		return nil, err
	}
	missions := make([]model.Mission, 0, len(rows))
	for _, r := range rows {
		missions = append(missions, missionFromRow(r))
	}
	return missions, nil
}

// UpdateField writes a single cell identified by a key column match.
func (c *Client) UpdateField(ctx context.Context, table roster.Table, keyColumn, keyValue, column, value string) error {
	op := fmt.Sprintf("update %s.%s", table, column)
	payload, err := json.Marshal(map[string]string{
		"sheet":        string(table),
		"keyColumn":    keyColumn,
		"keyValue":     keyValue,
		"updateColumn": column,
		"updateValue":  value,
	})
	if err != nil {
		return &roster.TransportError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewReader(payload))
	if err != nil {
		return &roster.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &roster.TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &roster.TransportError{Op: op, Err: fmt.Errorf("gateway status %d: %s", resp.StatusCode, body)}
	}
	c.log.Debugw("field updated", map[string]any{"sheet": table, "key": keyValue, "column": column})
	return nil
}

func (c *Client) readSheet(ctx context.Context, table roster.Table) ([]row, error) {
	op := fmt.Sprintf("read %s", table)
	u := fmt.Sprintf("%s?sheet=%s", c.scriptURL, url.QueryEscape(string(table)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &roster.TransportError{Op: op, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &roster.TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &roster.TransportError{Op: op, Err: fmt.Errorf("gateway status %d: %s", resp.StatusCode, body)}
	}
	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &roster.TransportError{Op: op, Err: fmt.Errorf("malformed payload: %w", err)}
	}
	return rows, nil
}
