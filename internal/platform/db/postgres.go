package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresDB opens a pgx-backed *sql.DB, applies the pool limits and pings it.
func NewPostgresDB(ctx context.Context, cfg *config.DB) (*sql.DB, error) {
	connCfg, err := pgx.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	if cfg.AppName != "" {
		connCfg.RuntimeParams["application_name"] = cfg.AppName
	}
	if d := cfg.QueryTimeout.Duration; d > 0 {
		connCfg.RuntimeParams["statement_timeout"] = strconv.FormatInt(d.Milliseconds(), 10)
	}

	conn := stdlib.OpenDB(*connCfg)
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime.Duration)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout.Duration)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s at %s: %w", cfg.Name, cfg.Host, err)
	}

	slog.Info("Connected to the database.", "db", cfg.Name, "host", cfg.Host)
	return conn, nil
}

func dsn(cfg *config.DB) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Pass),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   cfg.Name,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}
