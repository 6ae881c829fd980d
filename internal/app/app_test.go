package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/app"
	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	timex "github.com/ferdiebergado/finderid/internal/pkg/time"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/email"
	"github.com/ferdiebergado/finderid/internal/platform/hash"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/ferdiebergado/finderid/internal/platform/router"
	"github.com/ferdiebergado/finderid/internal/platform/validation"
	"github.com/ferdiebergado/finderid/internal/subscription"
	"go.uber.org/goleak"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    &config.App{Env: "testing", Key: "secret"},
		Server: &config.Server{URL: "http://localhost", Port: 0, ShutdownTimeout: timex.Duration{Duration: time.Second}, MaxBodyBytes: 1 << 20},
		JWT:    &config.JWT{Issuer: "finderid"},
		Cookie: &config.Cookie{Name: "refresh_token"},
		CSRF:   &config.CSRF{CookieName: "csrf_token", HeaderName: "X-CSRF-Token", TokenLength: 32},
		Email:  &config.Email{Sender: "no-reply@example.com"},
		Campaign: &config.Campaign{
			ChunkSize:     config.MaxChunkSize,
			PlaceholderTo: "no-reply@example.com",
		},
		Subscription: &config.Subscription{
			Currency: "PHP",
			Plans: map[string]config.Plan{
				"basic": {Price: 19900, Duration: timex.Duration{Duration: 30 * 24 * time.Hour}},
				"pro":   {Price: 49900, Duration: timex.Duration{Duration: 90 * 24 * time.Hour}},
			},
		},
		Loyalty:  &config.Loyalty{},
		Promo:    &config.Promo{},
		Realtime: &config.Realtime{SendBuffer: 4},
	}
}

// newApp wires the app without a database. Only routes that fail before touching a
// repository may be exercised.
func newApp(t *testing.T) *app.App {
	t.Helper()

	cfg := testConfig()
	signer := &jwt.StubSigner{
		VerifyFunc: func(token string) (*jwt.Claims, error) {
			if token != "good" {
				return nil, errors.New("bad token")
			}
			return &jwt.Claims{UserID: "user-1", Audience: []string{cfg.JWT.Issuer}}, nil
		},
	}

	provider := &app.Provider{
		Signer:    signer,
		Mailer:    &email.StubMailer{},
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    &hash.StubHasher{},
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(cfg.CSRF, cfg.App.Key),
		TxMgr:     &db.StubTxManager{},
		Hub:       realtime.NewHub(8),
	}

	return app.New(cfg, provider, app.Middlewares(cfg))
}

func TestProvider_Publisher(t *testing.T) {
	t.Parallel()

	hub := realtime.NewHub(1)

	p := &app.Provider{Hub: hub}
	if got, ok := p.Publisher().(*realtime.Hub); !ok || got != hub {
		t.Errorf("p.Publisher() = %T, want: the hub", p.Publisher())
	}

	p.Events = realtime.NopPublisher{}
	if _, ok := p.Publisher().(realtime.NopPublisher); !ok {
		t.Errorf("p.Publisher() = %T, want: %T", p.Publisher(), realtime.NopPublisher{})
	}

	// Discarding must not block even though the hub is not running.
	p.Publisher().Publish("user-1", realtime.ChangeEvent{Table: "notifications", Type: realtime.EventInsert})
}

func TestRoutes_Plans(t *testing.T) {
	t.Parallel()

	h := newApp(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/plans", http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /plans: rec.Code = %d, want: %d", rec.Code, http.StatusOK)
	}

	var body web.OKResponse[subscription.PlansResponse]
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if len(body.Data.Plans) != 2 || body.Data.Plans[0].Name != "basic" || body.Data.Plans[0].Days != 30 {
		t.Errorf("plans = %+v", body.Data.Plans)
	}
}

func TestApp_RoutesIncludesEveryArea(t *testing.T) {
	t.Parallel()

	routes := newApp(t).Routes()

	for _, want := range []string{
		"GET /plans",
		"GET /realtime",
		"POST /auth/login",
		"GET /mcards",
		"POST /mcards",
		"GET /me",
		"POST /documents",
		"POST /admin/campaigns/{id}/send",
		"POST /admin/campaigns/bulk",
	} {
		if !slices.Contains(routes, want) {
			t.Errorf("routes missing %q", want)
		}
	}
}

func TestRoutes_RequireToken(t *testing.T) {
	t.Parallel()

	h := newApp(t).Handler()

	tests := []struct {
		method, path string
	}{
		{http.MethodGet, "/me"},
		{http.MethodGet, "/me/subscription"},
		{http.MethodPost, "/mcards"},
		{http.MethodPost, "/documents"},
		{http.MethodGet, "/notifications"},
		{http.MethodPost, "/invoices/inv-1/cancel"},
		{http.MethodPost, "/documents/doc-1/returned"},
		{http.MethodGet, "/notifications/unread"},
		{http.MethodPost, "/messages/user-2/read"},
		{http.MethodGet, "/loyalty/balance"},
		{http.MethodGet, "/admin/campaigns"},
		{http.MethodPost, "/admin/campaigns/c1/send"},
		{http.MethodGet, "/realtime"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: rec.Code = %d, want: %d", tt.method, tt.path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRoutes_UnknownSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	h := newApp(t).Handler()

	for _, path := range []string{"/me/does/not/exist", "/mcards/c1/extra", "/notifications/x/y/z"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: rec.Code = %d, want: %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestRoutes_RejectsNonJSONBody(t *testing.T) {
	t.Parallel()

	h := newApp(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", http.NoBody)
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusUnsupportedMediaType)
	}
}

func TestRoutes_RefreshNeedsCSRF(t *testing.T) {
	t.Parallel()

	h := newApp(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusForbidden)
	}
}

func TestApp_StartStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := newApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want: nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}
