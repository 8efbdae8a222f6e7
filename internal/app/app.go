package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/hcl"
	"github.com/vk/elemdirectives/internal/registry"
	"github.com/vk/elemdirectives/internal/scenario"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	ctx        context.Context
	logger     *slog.Logger
	cfg        *Config
	registry   *registry.Registry
	model      *config.Model
	runner     *scenario.Runner
	modules    []registry.Module
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads manifests
// from the modules path and the scenario with loader (nil picks one by file
// extension), registers modules (none means the core modules) and validates
// that both sides agree.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with Go handlers.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(cfg, outW, logger)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if cfg.ModulesPath != "" {
		if err := reg.LoadDefinitions(ctx, hcl.NewLoader(), cfg.ModulesPath); err != nil {
			return nil, err
		}
	}

	if loader == nil {
		loader = LoaderFor(cfg.ScenarioPath)
	}
	model, err := loader.Load(ctx, cfg.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := reg.PopulateDefinitionsFromModel(model); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.",
		"elements", len(model.Scenario.Elements),
		"steps", len(model.Scenario.Steps),
	)

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	bindings, err := reg.Bindings(logger)
	if err != nil {
		return nil, err
	}
	runner, err := scenario.New(model.Scenario.Elements, bindings, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		outW:     outW,
		ctx:      ctx,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		model:    model,
		runner:   runner,
		modules:  modules,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Runner returns the scenario runner. This is primarily for testing.
func (a *App) Runner() *scenario.Runner {
	return a.runner
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
