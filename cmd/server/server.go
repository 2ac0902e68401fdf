package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Fixed server timeouts. The write timeout is extended by the summarizer
// timeout so a slow summary still gets its 503 written.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	baseWriteTimeout  = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// newHTTPServer configures the HTTP server for router.
func (app *application) newHTTPServer(router http.Handler) *http.Server {
	summarizerTimeout := time.Duration(app.config.Summarizer.TimeoutSeconds) * time.Second
	return &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.config.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      baseWriteTimeout + summarizerTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// startHTTPServer serves until ctx is cancelled or the listener fails, then
// drains in-flight requests within the configured shutdown timeout.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := app.newHTTPServer(router)

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	}

	shutdownTimeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
