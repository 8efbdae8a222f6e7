package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/fsutil"
	"github.com/vk/elemdirectives/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extension implements config.Loader.
func (l *Loader) Extension() string { return ".hcl" }

// Load orchestrates the entire HCL configuration loading process. Every
// file is decoded first so that variables declared in any file are visible
// to expressions in all of them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, l.Extension())
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	roots := make([]*schema.File, 0, len(files))
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		roots = append(roots, &root)
	}

	var variables []*schema.Variable
	for _, root := range roots {
		variables = append(variables, root.Variables...)
	}
	evalCtx, err := newEvalContext(ctx, variables)
	if err != nil {
		return nil, err
	}

	model := config.NewModel()
	for _, root := range roots {
		part, err := l.translateFile(ctx, root, evalCtx)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.",
		"directives", len(model.Directives),
		"element_types", len(model.ElementTypes),
		"elements", len(model.Scenario.Elements),
		"steps", len(model.Scenario.Steps),
	)
	return model, nil
}
