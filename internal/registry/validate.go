package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/elemdirectives/internal/ctxlog"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every lifecycle hook a manifest names must be registered, and every
// directive an element type lists must have a manifest.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	used := make(map[string]struct{})
	for _, name := range sortedKeys(r.DirectiveDefinitions) {
		def := r.DirectiveDefinitions[name]
		if def.Lifecycle == nil {
			logger.Debug("Directive has no lifecycle hooks.", "directive", name)
			continue
		}
		for _, handler := range def.Lifecycle.HandlerNames() {
			used[handler] = struct{}{}
			if _, ok := r.Handlers.Get(handler); !ok {
				errs = append(errs, fmt.Sprintf("directive '%s': lifecycle handler '%s' is not registered", name, handler))
			}
		}
	}

	for _, typeName := range sortedKeys(r.ElementTypes) {
		et := r.ElementTypes[typeName]
		if len(et.Directives) == 0 {
			logger.Warn("Element type has no directives.", "element_type", typeName)
		}
		seen := make(map[string]struct{}, len(et.Directives))
		for _, name := range et.Directives {
			if _, dup := seen[name]; dup {
				errs = append(errs, fmt.Sprintf("element type '%s': directive '%s' is listed more than once", typeName, name))
				continue
			}
			seen[name] = struct{}{}
			if _, ok := r.DirectiveDefinitions[name]; !ok {
				errs = append(errs, fmt.Sprintf("element type '%s': directive '%s' has no manifest", typeName, name))
			}
		}
	}

	for _, name := range r.Handlers.Names() {
		if _, ok := used[name]; !ok {
			logger.Debug("Registered handler is not used by any manifest.", "handler", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
