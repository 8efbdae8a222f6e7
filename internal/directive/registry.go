package directive

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	// ErrInvalidName is returned when a directive name is empty.
	ErrInvalidName = errors.New("expected directive name to be a non-empty string")
	// ErrNilDefinition is returned when a nil definition is registered.
	ErrNilDefinition = errors.New("expected directive definition to be non nil")
	// ErrAlreadyDefined is returned when a name is registered twice.
	ErrAlreadyDefined = errors.New("directive already defined")
)

// RegistryError describes a rejected DefineDirective call. It unwraps to one
// of the Err* sentinels above.
type RegistryError struct {
	Name string
	Err  error
}

func (e *RegistryError) Error() string {
	if errors.Is(e.Err, ErrAlreadyDefined) {
		return fmt.Sprintf("directive %s is already defined, cannot redefine directives", e.Name)
	}
	return e.Err.Error()
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// Registry maps directive names to definitions for one element type. Names
// are write-once.
type Registry struct {
	mu      sync.RWMutex
	defined map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defined: make(map[string]*Definition)}
}

// DefineDirective registers def under name and returns the registry so calls
// can be chained. On error the registry is left unchanged.
func (r *Registry) DefineDirective(name string, def *Definition) (*Registry, error) {
	if name == "" {
		return r, &RegistryError{Name: name, Err: ErrInvalidName}
	}
	if def == nil {
		return r, &RegistryError{Name: name, Err: ErrNilDefinition}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defined[name]; exists {
		return r, &RegistryError{Name: name, Err: ErrAlreadyDefined}
	}
	slog.Debug("Defining directive.", "name", name)
	r.defined[name] = def
	return r, nil
}

// MustDefineDirective is DefineDirective for static setup code; it panics on
// error.
func (r *Registry) MustDefineDirective(name string, def *Definition) *Registry {
	if _, err := r.DefineDirective(name, def); err != nil {
		panic(err)
	}
	return r
}

// DefinedDirectives returns a snapshot of the registered definitions. The
// returned map is a fresh copy on every call.
func (r *Registry) DefinedDirectives() map[string]*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[string]*Definition, len(r.defined))
	for name, def := range r.defined {
		snapshot[name] = def
	}
	return snapshot
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defined[name]
	return def, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defined))
	for name := range r.defined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
