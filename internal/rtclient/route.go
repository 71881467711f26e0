package rtclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zishang520/engine.io/v2/types"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
)

// ErrRemote wraps failures reported by the server.
var ErrRemote = errors.New("server error")

type routeResult struct {
	Route *mapservice.Route `json:"route"`
	Error string            `json:"error"`
}

// Route asks the server for the shortest route from one station to another
// and waits for the answer until ctx is done.
func (c *Client) Route(ctx context.Context, from, to string) (*mapservice.Route, error) {
	logger := ctxlog.FromContext(ctx).With("sid", c.io.Id())

	done := make(chan routeResult, 1)
	err := c.io.Once(types.EventName(EventRouteResult), func(data ...any) {
		var res routeResult
		if len(data) == 0 {
			res.Error = "empty response"
		} else if err := remarshal(data[0], &res); err != nil {
			res.Error = err.Error()
		}
		done <- res
	})
	if err != nil {
		return nil, fmt.Errorf("failed to listen for %s: %w", EventRouteResult, err)
	}

	logger.Debug("Requesting route.", "from", from, "to", to)
	if err := c.io.Emit(EventRoute, map[string]any{"from": from, "to": to}); err != nil {
		return nil, fmt.Errorf("failed to emit %s: %w", EventRoute, err)
	}

	select {
	case <-ctx.Done():
		c.io.RemoveAllListeners(types.EventName(EventRouteResult))
		return nil, fmt.Errorf("waiting for %s: %w", EventRouteResult, ctx.Err())
	case res := <-done:
		if res.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrRemote, res.Error)
		}
		if res.Route == nil {
			return nil, fmt.Errorf("%w: response carried no route", ErrRemote)
		}
		return res.Route, nil
	}
}

// remarshal converts a decoded socket.io payload into dst.
func remarshal(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
