package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/elemdirectives/internal/feed"
)

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// newMux routes /health and the socket.io feed.
func (a *App) newMux(fs *feed.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	if fs != nil {
		mux.Handle("/socket.io/", fs.Handler())
	}
	return mux
}

// startServer binds the listen port and serves in the background.
func (a *App) startServer(fs *feed.Server) error {
	a.logger.Debug("Configuring HTTP server.")
	addr := fmt.Sprintf(":%d", a.cfg.ListenPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.httpServer = &http.Server{
		Handler:           a.newMux(fs),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.httpServer.RegisterOnShutdown(fs.Close)

	go func() {
		a.logger.Info("🩺 Server starting", "health", fmt.Sprintf("http://localhost%s/health", addr), "feed", fmt.Sprintf("http://localhost%s/socket.io/", addr))
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

func (a *App) closeServer() error {
	if a.httpServer == nil {
		a.logger.Debug("HTTP server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	a.httpServer = nil
	a.logger.Debug("HTTP server shut down gracefully.")
	return nil
}
