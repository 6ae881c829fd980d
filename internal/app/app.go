package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/ferdiebergado/finderid/internal/platform/router"
	"golang.org/x/sync/errgroup"
)

type App struct {
	server          *http.Server
	config          *config.Config
	provider        *Provider
	modules         *Modules
	middlewares     []router.Middleware
	hub             *realtime.Hub
	stop            context.CancelFunc
	serverCtx       context.Context
	shutdownTimeout time.Duration
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

// Handler returns the fully mounted router.
func (a *App) Handler() http.Handler {
	return a.provider.Router
}

// Routes lists the mounted endpoints as "METHOD /path".
func (a *App) Routes() []string {
	return a.provider.Router.Routes()
}

// Modules exposes the wired feature modules, e.g. for CLI commands that bypass HTTP.
func (a *App) Modules() *Modules {
	return a.modules
}

// Start serves HTTP and runs the realtime hub until ctx is cancelled or either fails.
func (a *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.hub.Run(a.serverCtx)
	})

	g.Go(func() error {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		slog.Info("Server has stopped.")
		return nil
	})

	g.Go(func() error {
		select {
		case <-a.serverCtx.Done():
			return nil
		case <-gctx.Done():
		}
		if ctx.Err() != nil {
			slog.Info("Shutdown signal received.")
		}
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown drains the HTTP server and stops the hub. It is safe to call more than once.
func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.stop()
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func New(cfg *config.Config, provider *Provider, middlewares []router.Middleware) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	a := &App{
		config:          cfg,
		provider:        provider,
		modules:         NewModules(cfg, provider),
		middlewares:     middlewares,
		hub:             provider.Hub,
		server:          server,
		stop:            stop,
		serverCtx:       serverCtx,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}

	a.registerMiddlewares()
	mountRoutes(provider.Router, cfg, provider, a.modules)
	slog.Debug("Routes mounted.", "count", len(provider.Router.Routes()))

	return a
}
