package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
	"github.com/vk/metrograph/internal/metro"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	ctx    context.Context
	opts   *Options
	svc    *mapservice.Service

	mu   sync.Mutex
	addr net.Addr
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW. The map starts empty; Run loads the feed.
func NewApp(outW, logW io.Writer, opts *Options) *App {
	settings := opts.Settings
	logger := newLogger(settings.Log.Level, settings.Log.Format, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	svc := mapservice.New(metro.New(), mapservice.Options{
		FeedPath:    settings.Feed,
		SnapshotTTL: settings.Snapshot.TTL,
	})

	return &App{
		outW:   outW,
		logger: logger,
		ctx:    ctx,
		opts:   opts,
		svc:    svc,
	}
}

// Service returns the application's map service. This is primarily for testing.
func (a *App) Service() *mapservice.Service {
	return a.svc
}

// Addr returns the address the HTTP server listens on, or nil when it is
// not running.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addr
}
