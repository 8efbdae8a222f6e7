package testutil

import (
	"sync"

	"github.com/vk/elemdirectives/internal/handlers"
	"github.com/vk/elemdirectives/internal/registry"
)

// RecorderManifest declares a `record` directive wired to RecorderModule.
const RecorderManifest = `
directive "record" {
  lifecycle {
    connected     = "RecordConnected"
    disconnected  = "RecordDisconnected"
    value_changed = "RecordValueChanged"
  }
}
`

// RecorderModule registers hooks that record every invocation as
// "<kind> <element> <directive>[=<value>]".
type RecorderModule struct {
	mu      sync.Mutex
	entries []string
}

// Register registers the recording hooks.
func (m *RecorderModule) Register(r *registry.Registry) {
	hooks := handlers.Hooks(m.record)
	r.RegisterHandler("RecordConnected", hooks.Connected)
	r.RegisterHandler("RecordDisconnected", hooks.Disconnected)
	r.RegisterHandler("RecordValueChanged", hooks.ValueChanged)
}

func (m *RecorderModule) record(ev handlers.Event) {
	entry := ev.Kind + " " + ev.Element + " " + ev.Directive
	if ev.Value != "" {
		entry += "=" + ev.Value
	}
	m.mu.Lock()
	m.entries = append(m.entries, entry)
	m.mu.Unlock()
}

// Entries returns a copy of the recorded invocations.
func (m *RecorderModule) Entries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.entries...)
}
