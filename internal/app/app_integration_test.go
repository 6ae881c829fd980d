//go:build integration

package app_test

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/app"
	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/email"
	"github.com/ferdiebergado/finderid/internal/platform/hash"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/ferdiebergado/finderid/internal/platform/router"
	"github.com/ferdiebergado/finderid/internal/platform/validation"
	"github.com/ferdiebergado/gopherkit/env"
)

func setupApp(t *testing.T) *app.App {
	t.Helper()

	if err := env.Load("../../.env.testing"); err != nil {
		t.Fatalf("load env: %v", err)
	}

	cfg, err := config.Load("../../config.json")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	conn, err := db.NewPostgresDB(t.Context(), cfg.DB)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	const key = "testsecret"
	provider := &app.Provider{
		DB:        conn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, key),
		Mailer:    &email.StubMailer{},
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, key),
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(cfg.CSRF, key),
		TxMgr:     db.NewSQLTxManager(conn),
		Hub:       realtime.NewHub(64),
	}

	return app.New(cfg, provider, app.Middlewares(cfg))
}

func TestIntegration_StartAndShutdown(t *testing.T) {
	api := setupApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- api.Start(ctx)
	}()

	time.Sleep(300 * time.Millisecond)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:"+os.Getenv("PORT")+"/plans", http.NoBody)
	if err != nil {
		t.Fatalf("new http request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /plans: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /plans: status = %d, want: %d", resp.StatusCode, http.StatusOK)
	}

	if err := api.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want: nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after Shutdown")
	}
}
