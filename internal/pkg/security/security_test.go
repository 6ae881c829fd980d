package security_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	timex "github.com/ferdiebergado/finderid/internal/pkg/time"
)

func TestMAC(t *testing.T) {
	t.Parallel()

	mac := security.MAC("key", "payload")
	if !bytes.Equal(mac, security.MAC("key", "payload")) {
		t.Error("security.MAC() is not deterministic")
	}
	if bytes.Equal(mac, security.MAC("other", "payload")) {
		t.Error("security.MAC() with different keys should differ")
	}
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	a, err := security.RandomToken(16)
	if err != nil {
		t.Fatalf("security.RandomToken() = %v", err)
	}
	b, _ := security.RandomToken(16)

	if len(a) != 22 {
		t.Errorf("len(token) = %d, want: %d", len(a), 22)
	}
	if a == b {
		t.Errorf("two tokens are equal: %q", a)
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, header, want string
		wantErr            bool
	}{
		{"valid", "Bearer abc.def", "abc.def", false},
		{"lowercase scheme", "bearer abc.def", "abc.def", false},
		{"missing header", "", "", true},
		{"basic auth", "Basic dXNlcg==", "", true},
		{"scheme only", "Bearer", "", true},
		{"empty token", "Bearer   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := security.BearerToken(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("security.BearerToken() = %v, wantErr: %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, security.ErrMissingToken) {
				t.Errorf("security.BearerToken() = %v, want: %v", err, security.ErrMissingToken)
			}
			if got != tt.want {
				t.Errorf("security.BearerToken() = %q, want: %q", got, tt.want)
			}
		})
	}
}

func TestCookies(t *testing.T) {
	t.Parallel()

	c := security.SessionCookie("refresh", "tok", 90*time.Second)
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode || c.MaxAge != 90 {
		t.Errorf("security.SessionCookie() = %+v", c)
	}

	gone := security.ExpiredCookie("refresh")
	if gone.MaxAge != -1 || gone.Value != "" {
		t.Errorf("security.ExpiredCookie() = %+v, want MaxAge -1 and empty value", gone)
	}
}

func TestCSRFCookieBaker(t *testing.T) {
	t.Parallel()

	cfg := &config.CSRF{
		CookieName:   "csrf",
		TokenLength:  16,
		CookieMaxAge: timex.Duration{Duration: time.Hour},
	}
	baker := security.NewCSRFCookieBaker(cfg, "pepper")

	cookie, err := baker.Bake()
	if err != nil {
		t.Fatalf("baker.Bake() = %v", err)
	}

	if cookie.HttpOnly {
		t.Error("csrf cookie should be readable by scripts")
	}
	if cookie.MaxAge != 3600 {
		t.Errorf("cookie.MaxAge = %d, want: %d", cookie.MaxAge, 3600)
	}
	if err := baker.Check(cookie); err != nil {
		t.Errorf("baker.Check(cookie) = %v, want: nil", err)
	}

	tampered := *cookie
	tampered.Value = "forged.9999999999:" + cookie.Value[len(cookie.Value)-10:]
	if err := baker.Check(&tampered); !errors.Is(err, security.ErrInvalidCSRFToken) {
		t.Errorf("baker.Check(tampered) = %v, want: %v", err, security.ErrInvalidCSRFToken)
	}

	other := security.NewCSRFCookieBaker(cfg, "other-pepper")
	if err := other.Check(cookie); !errors.Is(err, security.ErrInvalidCSRFToken) {
		t.Errorf("other.Check(cookie) = %v, want: %v", err, security.ErrInvalidCSRFToken)
	}

	security.SetCSRFClock(baker, func() time.Time { return time.Now().Add(2 * time.Hour) })
	if err := baker.Check(cookie); !errors.Is(err, security.ErrExpiredCSRFToken) {
		t.Errorf("baker.Check(stale) = %v, want: %v", err, security.ErrExpiredCSRFToken)
	}
}
