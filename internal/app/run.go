package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/middleware"
	"github.com/ferdiebergado/finderid/internal/pkg/logging"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/router"
	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
)

var ErrMissingKey = errors.New("security key is not set")

// Bootstrap loads .env outside production, the config file and the logger, then connects to
// the database. The returned cleanup closes the connection.
func Bootstrap(ctx context.Context, cfgFile string) (*config.Config, *Provider, func(), error) {
	if os.Getenv("ENV") != "production" {
		if err := env.Load(".env"); err != nil {
			slog.Warn("No .env file loaded.", "reason", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	if cfg.App.Key == "" {
		return nil, nil, nil, fmt.Errorf("bootstrap: %w (KEY)", ErrMissingKey)
	}

	conn, err := db.NewPostgresDB(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}

	provider, err := NewProvider(cfg, conn)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := conn.Close(); err != nil {
			slog.Error("close database", "reason", err)
		}
	}

	return cfg, provider, cleanup, nil
}

// Middlewares are applied to every route, outermost first.
func Middlewares(cfg *config.Config) []router.Middleware {
	return []router.Middleware{
		middleware.InjectWriter,
		middleware.RequestID,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CORS(cfg.Server.AllowedOrigin),
		middleware.ContextGuard,
	}
}

// Serve runs the API until ctx is cancelled.
func Serve(ctx context.Context, cfgFile string) error {
	cfg, provider, cleanup, err := Bootstrap(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer cleanup()

	return New(cfg, provider, Middlewares(cfg)).Start(ctx)
}
