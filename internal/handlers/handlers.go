// Package handlers stores the Go lifecycle hooks that directive manifests
// refer to by name.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/elemdirectives/internal/directive"
)

// Handlers holds all the registered hook handlers.
type Handlers struct {
	all map[string]directive.HookFunc
}

// New creates and initializes a new Handlers instance.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]directive.HookFunc),
	}
}

// RegisterHandler registers a Go hook under name. Registering the same name
// twice is a programming error and panics.
func (h *Handlers) RegisterHandler(name string, fn directive.HookFunc) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("hook handler with name '%s' already registered", name))
	}
	if fn == nil {
		panic(fmt.Sprintf("hook handler '%s' is nil", name))
	}
	slog.Debug("Registering hook handler.", "name", name)
	h.all[name] = fn
}

// Get returns the handler registered under name.
func (h *Handlers) Get(name string) (directive.HookFunc, bool) {
	fn, ok := h.all[name]
	return fn, ok
}

// Names returns all registered handler names, sorted.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
