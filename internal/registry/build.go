package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/elemdirectives/internal/binding"
	"github.com/vk/elemdirectives/internal/directive"
	"github.com/vk/elemdirectives/internal/reconciler"
)

// BuildDirectives creates the directive registry for one element type,
// resolving each listed manifest's handler names to Go hooks.
func (r *Registry) BuildDirectives(typeName string) (*directive.Registry, error) {
	et, ok := r.ElementTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown element type '%s'", typeName)
	}

	reg := directive.NewRegistry()
	for _, name := range et.Directives {
		manifest, ok := r.DirectiveDefinitions[name]
		if !ok {
			return nil, fmt.Errorf("element type '%s': directive '%s' has no manifest", typeName, name)
		}
		def := &directive.Definition{Description: manifest.Description}
		if lc := manifest.Lifecycle; lc != nil {
			def.Connected = r.hook(lc.Connected)
			def.Disconnected = r.hook(lc.Disconnected)
			def.ValueChanged = r.hook(lc.ValueChanged)
		}
		if _, err := reg.DefineDirective(name, def); err != nil {
			return nil, fmt.Errorf("element type '%s': %w", typeName, err)
		}
	}
	return reg, nil
}

func (r *Registry) hook(name string) directive.HookFunc {
	if name == "" {
		return nil
	}
	fn, _ := r.Handlers.Get(name)
	return fn
}

// Bindings creates a binding for every element type. All bindings share one
// reconciler.
func (r *Registry) Bindings(logger *slog.Logger) (map[string]*binding.Binding, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rec := reconciler.New(logger)

	out := make(map[string]*binding.Binding, len(r.ElementTypes))
	for _, typeName := range sortedKeys(r.ElementTypes) {
		reg, err := r.BuildDirectives(typeName)
		if err != nil {
			return nil, err
		}
		out[typeName] = binding.New(binding.Options{
			Attribute:  r.ElementTypes[typeName].Attribute,
			Registry:   reg,
			Reconciler: rec,
			Logger:     logger.With("element_type", typeName),
		})
	}
	return out, nil
}
