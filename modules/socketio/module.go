// Package socketio provides lifecycle hooks that emit every hook invocation
// as a socket.io event to a remote server.
package socketio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/handlers"
	"github.com/vk/elemdirectives/internal/registry"
	"github.com/zishang520/socket.io-client-go/socket"
)

// EventName is the socket.io event every hook invocation is emitted as.
const EventName = "directive"

var (
	errNotConfigured = errors.New("socket.io emitter URL is not configured")
	errClosed        = errors.New("socket.io emitter is closed")
)

// Emitter is what the module sends events through.
type Emitter interface {
	Emit(event string, payload any) error
	Close()
}

// clientEmitter adapts a connected socket.io client to Emitter.
type clientEmitter struct {
	io *socket.Socket
}

func (c clientEmitter) Emit(event string, payload any) error {
	if !c.io.Connected() {
		return fmt.Errorf("socket.io client %s is not connected", c.io.Id())
	}
	c.io.Emit(event, payload)
	return nil
}

func (c clientEmitter) Close() {
	slog.Info("Destroying socket.io client instance", "sid", c.io.Id())
	c.io.Disconnect()
}

// Module implements the registry.Module interface for this package. It
// connects on the first hook invocation.
type Module struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	Logger             *slog.Logger

	// Dial overrides the connection step.
	Dial func(ctx context.Context) (Emitter, error)

	once    sync.Once
	mu      sync.Mutex
	client  Emitter
	dialErr error
}

func (m *Module) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *Module) connect() (Emitter, error) {
	m.once.Do(func() {
		ctx := ctxlog.WithLogger(context.Background(), m.logger())
		dial := m.Dial
		if dial == nil && m.URL == "" {
			m.mu.Lock()
			m.dialErr = errNotConfigured
			m.mu.Unlock()
			m.logger().Debug("Socket.io emitter has no URL, events are dropped.")
			return
		}
		if dial == nil {
			dial = func(ctx context.Context) (Emitter, error) {
				io, err := Dial(ctx, m.URL, m.Namespace, m.InsecureSkipVerify)
				if err != nil {
					return nil, err
				}
				return clientEmitter{io: io}, nil
			}
		}
		client, err := dial(ctx)

		m.mu.Lock()
		m.client, m.dialErr = client, err
		m.mu.Unlock()
		if err != nil {
			m.logger().Error("Socket.io emitter is disabled.", "url", m.URL, "error", err)
		}
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client, m.dialErr
}

// Emit sends ev to the server. Failures are logged; hooks cannot fail.
func (m *Module) Emit(ev handlers.Event) {
	client, err := m.connect()
	if err != nil {
		return
	}
	if err := client.Emit(EventName, ev); err != nil {
		m.logger().Warn("Failed to emit hook event.", "kind", ev.Kind, "element", ev.Element, "directive", ev.Directive, "error", err)
		return
	}
	m.logger().Debug("Emitted hook event.", "kind", ev.Kind, "element", ev.Element, "directive", ev.Directive)
}

// Close disconnects the client if one was created. Events emitted after
// Close are dropped and never trigger a dial.
func (m *Module) Close() error {
	m.once.Do(func() {})

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client != nil {
		m.client.Close()
		m.client = nil
	}
	m.dialErr = errClosed
	return nil
}

// Register registers the emit hooks.
func (m *Module) Register(r *registry.Registry) {
	hooks := handlers.Hooks(m.Emit)
	r.RegisterHandler("EmitConnected", hooks.Connected)
	r.RegisterHandler("EmitDisconnected", hooks.Disconnected)
	r.RegisterHandler("EmitValueChanged", hooks.ValueChanged)
}
