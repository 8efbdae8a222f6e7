package registry

import (
	"context"
	"fmt"

	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/ctxlog"
)

// LoadDefinitions loads manifests from modulesPath with loader and adds them
// to the registry. A path with no matching files is not an error.
func (r *Registry) LoadDefinitions(ctx context.Context, loader config.Loader, modulesPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading definitions from modules path...", "path", modulesPath, "format", loader.Extension())

	model, err := loader.Load(ctx, modulesPath)
	if err != nil {
		return fmt.Errorf("failed to load module definitions from %s: %w", modulesPath, err)
	}
	if len(model.Directives) == 0 && len(model.ElementTypes) == 0 {
		logger.Warn("No module definitions found in path", "path", modulesPath)
	}
	if err := r.PopulateDefinitionsFromModel(model); err != nil {
		return err
	}

	logger.Info("Registry loaded successfully.",
		"directive_definitions", len(r.DirectiveDefinitions),
		"element_types", len(r.ElementTypes),
	)
	return nil
}
