package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/metrograph/internal/api"
	"github.com/vk/metrograph/internal/ctxlog"
)

const defaultShutdownTimeout = 5 * time.Second

// serve runs the HTTP API until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	settings := a.opts.Settings.Server

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", settings.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	// Serve closes ln too; this covers the paths where it never ran.
	defer ln.Close()

	apiServer := api.NewServer(ctx, a.svc, api.Options{AllowedOrigins: settings.AllowedOrigins})
	defer apiServer.Close()

	srv := &http.Server{Handler: apiServer.Handler()}
	a.mu.Lock()
	a.addr = ln.Addr()
	a.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting.", "address", ln.Addr().String())
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		a.clearServer()
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	err = a.shutdown(srv)
	// Wait for Serve to return so the listener is released before Run does.
	<-errCh
	return err
}

func (a *App) clearServer() {
	a.mu.Lock()
	a.addr = nil
	a.mu.Unlock()
}

func (a *App) shutdown(srv *http.Server) error {
	logger := ctxlog.FromContext(a.ctx)
	a.clearServer()

	timeout := a.opts.Settings.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	// The run context is already done; in-flight requests get their own deadline.
	ctx, cancel := context.WithTimeout(a.ctx, timeout)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed.", "error", err)
		return err
	}
	logger.Debug("HTTP server shut down gracefully.")
	return nil
}
