package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/gopherkit/env"
)

const projectRoot = "../../"

// Setup opens the database named in .env.testing and returns a context carrying a
// transaction. Repositories built on the returned *sql.DB run inside that transaction
// through Conn, and everything is rolled back when the test ends.
func Setup(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()

	if err := env.Load(projectRoot + ".env.testing"); err != nil {
		t.Skipf("no test database: %v", err)
	}

	cfg, err := config.Load(projectRoot + "config.json")
	if err != nil {
		t.Fatalf("config.Load() = %v", err)
	}

	conn, err := NewPostgresDB(t.Context(), cfg.DB)
	if err != nil {
		t.Fatalf("NewPostgresDB() = %v", err)
	}

	tx, err := conn.BeginTx(t.Context(), nil)
	if err != nil {
		conn.Close()
		t.Fatalf("conn.BeginTx() = %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Logf("tx.Rollback() = %v", err)
		}
		conn.Close()
	})

	return NewContextWithTx(context.Background(), tx), conn
}
