package registry

import (
	"fmt"

	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/directive"
	"github.com/vk/elemdirectives/internal/handlers"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered hooks, directive manifests and element
// types for a single application instance.
type Registry struct {
	Handlers             *handlers.Handlers
	DirectiveDefinitions map[string]*config.DirectiveDefinition
	ElementTypes         map[string]*config.ElementType
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Handlers:             handlers.New(),
		DirectiveDefinitions: make(map[string]*config.DirectiveDefinition),
		ElementTypes:         make(map[string]*config.ElementType),
	}
}

// RegisterHandler registers a Go hook that manifests can refer to by name.
func (r *Registry) RegisterHandler(name string, fn directive.HookFunc) {
	r.Handlers.RegisterHandler(name, fn)
}

// PopulateDefinitionsFromModel copies the loaded manifests and element types
// from the config model into the registry. Names already present are
// rejected; the registry may be partially populated on error.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) error {
	for key, val := range model.Directives {
		if _, exists := r.DirectiveDefinitions[key]; exists {
			return fmt.Errorf("directive '%s' is declared more than once", key)
		}
		r.DirectiveDefinitions[key] = val
	}
	for key, val := range model.ElementTypes {
		if _, exists := r.ElementTypes[key]; exists {
			return fmt.Errorf("element type '%s' is declared more than once", key)
		}
		r.ElementTypes[key] = val
	}
	return nil
}
