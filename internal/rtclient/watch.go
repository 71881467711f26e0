package rtclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/zishang520/engine.io/v2/types"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
)

// ErrDisconnected is returned by Watch when the connection to the server
// is lost.
var ErrDisconnected = errors.New("disconnected from server")

// Watch calls fn for every map change the server broadcasts until ctx is
// done or the connection drops. fn runs on the client's event goroutine.
func (c *Client) Watch(ctx context.Context, fn func(mapservice.Event)) error {
	logger := ctxlog.FromContext(ctx).With("sid", c.io.Id())
	name := types.EventName(EventMapChanged)

	lost := make(chan string, 1)
	err := c.io.Once(types.EventName("disconnect"), func(args ...any) {
		reason := "unknown reason"
		if len(args) > 0 {
			if r, ok := args[0].(string); ok {
				reason = r
			}
		}
		select {
		case lost <- reason:
		default:
		}
	})
	if err != nil {
		return err
	}

	err = c.io.On(name, func(data ...any) {
		if len(data) == 0 {
			return
		}
		var ev mapservice.Event
		if err := remarshal(data[0], &ev); err != nil {
			logger.Warn("Dropping malformed map change.", "error", err)
			return
		}
		fn(ev)
	})
	if err != nil {
		return err
	}
	defer c.io.RemoveAllListeners(name)

	if !c.io.Connected() {
		return fmt.Errorf("%w: not connected", ErrDisconnected)
	}

	select {
	case <-ctx.Done():
		return nil
	case reason := <-lost:
		logger.Warn("Connection lost while watching.", "reason", reason)
		return fmt.Errorf("%w: %s", ErrDisconnected, reason)
	}
}
