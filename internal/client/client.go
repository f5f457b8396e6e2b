// Package client is a thin HTTP client for the idkspotd API, shared by
// the CLI commands and the integration tests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/idkspot/idkspot-go/internal/database/models"
	"github.com/idkspot/idkspot-go/internal/services/hotspot"
	"github.com/idkspot/idkspot-go/internal/services/stations"
	"github.com/idkspot/idkspot-go/internal/services/wireless"
)

// DefaultBaseURL is where a locally running daemon listens.
const DefaultBaseURL = "http://localhost:8737"

// APIError is a non-2xx response from the daemon, carrying the decoded
// error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.StatusCode, e.Message)
}

// StatusResponse is the body of /api/status and /api/hotspot/stop.
type StatusResponse struct {
	State   hotspot.SessionState `json:"state"`
	Session *hotspot.Session     `json:"session,omitempty"`
}

// InterfacesResponse is the body of /api/interfaces.
type InterfacesResponse struct {
	Interfaces []wireless.Interface `json:"interfaces"`
	ScannedAt  string               `json:"scannedAt"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Event is one frame from the /api/events stream. The payload stays
// raw so callers can decode per topic.
type Event struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Client talks to one daemon instance.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the daemon at base, e.g. "http://localhost:8737".
func New(base string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// Health checks daemon availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Interfaces lists detected wireless interfaces. refresh forces a
// fresh hardware scan instead of the daemon's cached snapshot.
func (c *Client) Interfaces(ctx context.Context, refresh bool) (*InterfacesResponse, error) {
	path := "/api/interfaces"
	if refresh {
		path += "?refresh=1"
	}
	var resp InterfacesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status reports the controller state without blocking.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get(ctx, "/api/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Start brings up a hotspot and blocks until it is running or failed.
func (c *Client) Start(ctx context.Context, cfg hotspot.Config) (*hotspot.Session, error) {
	var sess hotspot.Session
	if err := c.post(ctx, "/api/hotspot/start", cfg, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Stop tears down the active hotspot and reports the settled state.
func (c *Client) Stop(ctx context.Context) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.post(ctx, "/api/hotspot/stop", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Devices lists clients connected to the running hotspot.
func (c *Client) Devices(ctx context.Context) ([]stations.Device, error) {
	var resp struct {
		Devices []stations.Device `json:"devices"`
	}
	if err := c.get(ctx, "/api/hotspot/devices", &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

// Sessions returns recent session history, newest first.
func (c *Client) Sessions(ctx context.Context, limit int) ([]models.Session, error) {
	path := "/api/sessions"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp struct {
		Sessions []models.Session `json:"sessions"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// Events connects to the daemon's WebSocket stream. The returned
// channel closes when the connection drops or ctx is cancelled.
func (c *Client) Events(ctx context.Context) (<-chan Event, error) {
	wsURL, err := c.eventsURL()
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to event stream: %w", err)
	}

	ch := make(chan Event, 16)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		defer close(done)
		defer func() { _ = conn.Close() }()
		for {
			var ev Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	return ch, nil
}

func (c *Client) eventsURL() (string, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/events"
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader([]byte("{}"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contact daemon: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Error == "" {
			body.Error = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode daemon response: %w", err)
	}
	return nil
}
