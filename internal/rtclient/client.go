package rtclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/metrograph/internal/ctxlog"
)

// Event names shared with the server.
const (
	EventMapChanged  = "map:changed"
	EventRoute       = "route"
	EventRouteResult = "route:result"
)

const defaultPath = "/socket.io/"

// Options configures Dial.
type Options struct {
	// ConnectTimeout bounds the wait for the connect event. Zero means 15s.
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// Client is a connected socket.io client.
type Client struct {
	io *socket.Socket
}

// Dial connects to the server at rawURL, e.g. http://localhost:8080. The
// socket.io path defaults to /socket.io/ when rawURL has none.
func Dial(ctx context.Context, rawURL string, opts Options) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host are required", rawURL)
	}
	path := parsedURL.Path
	if path == "" || path == "/" {
		path = defaultPath
	}

	sopts := socket.DefaultOptions()
	sopts.SetPath(path)
	sopts.SetReconnection(false)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.Polling, transports.WebSocket))

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket("/", sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to server.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("%v", errs[0])
		}
		connectChan <- err
	})

	logger.Debug("Connecting to server.")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Client{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

// ID returns the session id assigned by the server.
func (c *Client) ID() string {
	return c.io.Id()
}

// Close disconnects from the server.
func (c *Client) Close() {
	c.io.Disconnect()
}
