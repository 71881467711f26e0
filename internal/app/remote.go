package app

import (
	"context"
	"fmt"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
	"github.com/vk/metrograph/internal/rtclient"
)

// runRemote answers the query through a running server and, with Watch,
// prints its map changes until ctx is done.
func (a *App) runRemote(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("remote", a.opts.Remote)

	client, err := rtclient.Dial(ctx, a.opts.Remote, rtclient.Options{})
	if err != nil {
		return err
	}
	defer client.Close()
	logger.Info("Connected to server.", "sid", client.ID())

	if a.opts.Query() {
		route, err := client.Route(ctx, a.opts.From, a.opts.To)
		if err != nil {
			return fmt.Errorf("remote route query failed: %w", err)
		}
		fmt.Fprintln(a.outW, route.Guide)
		fmt.Fprintf(a.outW, "Distance: %.1f\n", route.Distance)
	}

	if a.opts.Watch {
		logger.Info("Watching map changes.")
		return client.Watch(ctx, func(ev mapservice.Event) {
			fmt.Fprintf(a.outW, "%s %s\n", ev.Kind, ev.Key)
		})
	}
	return nil
}
