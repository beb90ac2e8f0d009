// Cloud event delivery for managed runs.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultDeliveryTimeout bounds a single event POST.
const defaultDeliveryTimeout = 10 * time.Second

// CloudConfig locates the managed runtime's event ingest endpoint.
type CloudConfig struct {
	BaseURL string
	APIKey  string
	RunID   string
}

// CloudEventDriver is a Listener that POSTs each event to the managed
// runtime's per-run ingest endpoint.
type CloudEventDriver struct {
	cfg    CloudConfig
	client *http.Client
}

// NewCloudEventDriver validates cfg and returns a driver. A nil client gets
// a default with a bounded timeout.
func NewCloudEventDriver(cfg CloudConfig, client *http.Client) (*CloudEventDriver, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.RunID = strings.TrimSpace(cfg.RunID)
	if cfg.BaseURL == "" {
		return nil, errors.New("cloud events: base URL is required")
	}
	if cfg.RunID == "" {
		return nil, errors.New("cloud events: run ID is required")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultDeliveryTimeout}
	}
	return &CloudEventDriver{cfg: cfg, client: client}, nil
}

// Endpoint returns the ingest URL events are delivered to.
func (d *CloudEventDriver) Endpoint() string {
	return fmt.Sprintf("%s/api/structure-runs/%s/events", d.cfg.BaseURL, d.cfg.RunID)
}

// Handle delivers one event. A non-2xx response is an error.
func (d *CloudEventDriver) Handle(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("deliver event: runtime returned %s", resp.Status)
	}
	return nil
}
