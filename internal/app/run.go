package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/metro"
)

// Run executes the requested modes: a remote query or watch, or else
// loading the feed, answering a local query and serving the API.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.opts.Remote != "" {
		return a.runRemote(ctx)
	}

	if a.opts.Settings.Feed != "" {
		counts, err := a.svc.Reload(ctx)
		if err != nil {
			return fmt.Errorf("failed to load feed: %w", err)
		}
		a.logger.Info("Feed loaded.", "path", a.opts.Settings.Feed, "lines", counts.Lines,
			"stations", counts.Stations, "edges", counts.Edges, "skipped", counts.Skipped)
	} else {
		a.logger.Warn("No feed configured, starting with an empty map.")
	}

	if a.opts.Query() {
		if err := a.printRoute(ctx); err != nil {
			return err
		}
	}

	if a.opts.Serve {
		return a.serve(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) printRoute(ctx context.Context) error {
	route, err := a.svc.FindRoute(a.opts.From, a.opts.To)
	if errors.Is(err, metro.ErrNoPath) {
		return fmt.Errorf("no route from %s to %s", a.opts.From, a.opts.To)
	}
	if err != nil {
		return fmt.Errorf("route query failed: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Route found.", "stations", len(route.Path), "distance", route.Distance)

	fmt.Fprintln(a.outW, route.Guide)
	fmt.Fprintf(a.outW, "Distance: %.1f\n", route.Distance)
	return nil
}
