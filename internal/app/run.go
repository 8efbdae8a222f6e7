package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/feed"
	"golang.org/x/sync/errgroup"
)

// Run executes the scenario. With a listen port configured the live feed is
// served alongside it and kept up until ctx is done.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer func() {
		err = errors.Join(err, a.close())
	}()

	g, gctx := errgroup.WithContext(ctx)

	var dispatcher *feed.Dispatcher
	if a.cfg.ListenPort > 0 {
		dispatcher = feed.NewDispatcher(a.runner, a.logger)
		if err := a.startServer(feed.NewServer(dispatcher, a.logger)); err != nil {
			return err
		}
		g.Go(func() error { return dispatcher.Run(gctx) })
	}

	g.Go(func() error {
		if err := a.runScenario(gctx); err != nil {
			return err
		}
		if dispatcher != nil {
			a.logger.Info("Serving live feed until interrupted.")
			<-gctx.Done()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runScenario(ctx context.Context) error {
	steps := a.model.Scenario.Steps
	if len(steps) == 0 {
		a.logger.Warn("No steps found in scenario, execution not required.")
		return nil
	}

	a.logger.Info("🚀 Starting scenario...")
	if err := a.runner.Run(ctx, steps); err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}
	a.logger.Info("🏁 Scenario finished.")
	return nil
}

// close unmounts every element, stops the server and closes modules.
func (a *App) close() error {
	errs := []error{a.closeServer(), a.runner.Close()}
	for _, mod := range a.modules {
		if c, ok := mod.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
