// Package webhook provides lifecycle hooks that POST every hook invocation
// as JSON to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vk/elemdirectives/internal/handlers"
	"github.com/vk/elemdirectives/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	URL string
	// Timeout is a Go duration string; empty means DefaultTimeout.
	Timeout string
	Logger  *slog.Logger

	once   sync.Once
	client *http.Client
	err    error
}

func (m *Module) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *Module) httpClient() (*http.Client, error) {
	m.once.Do(func() {
		m.client, m.err = newHTTPClient(m.Timeout)
	})
	return m.client, m.err
}

// Post sends ev to the configured URL and checks for a 2xx response.
func (m *Module) Post(ctx context.Context, ev handlers.Event) error {
	client, err := m.httpClient()
	if err != nil {
		return fmt.Errorf("failed to create http client: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with %s", resp.Status)
	}
	m.logger().Debug("Posted hook event.", "kind", ev.Kind, "element", ev.Element, "status", resp.Status)
	return nil
}

func (m *Module) deliver(ev handlers.Event) {
	if m.URL == "" {
		return
	}
	if err := m.Post(context.Background(), ev); err != nil {
		m.logger().Warn("Webhook delivery failed.", "url", m.URL, "kind", ev.Kind, "element", ev.Element, "error", err)
	}
}

// Close releases idle connections.
func (m *Module) Close() error {
	if m.client == nil {
		return nil
	}
	return closeHTTPClient(m.client)
}

// Register registers the webhook hooks.
func (m *Module) Register(r *registry.Registry) {
	hooks := handlers.Hooks(m.deliver)
	r.RegisterHandler("PostConnected", hooks.Connected)
	r.RegisterHandler("PostDisconnected", hooks.Disconnected)
	r.RegisterHandler("PostValueChanged", hooks.ValueChanged)
}
