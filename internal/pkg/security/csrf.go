package security

import (
	"crypto/hmac"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
)

var (
	ErrInvalidCSRFToken = errors.New("invalid csrf token")
	ErrExpiredCSRFToken = errors.New("expired csrf token")
)

// Baker issues signed cookies and verifies the ones clients send back.
type Baker interface {
	Bake() (*http.Cookie, error)
	Check(*http.Cookie) error
}

var _ Baker = (*CSRFCookieBaker)(nil)

// CSRFCookieBaker issues double-submit tokens of the form nonce.expiry:mac. The cookie
// is readable by scripts so the client can echo it in a header.
type CSRFCookieBaker struct {
	name   string
	length uint32
	ttl    time.Duration
	key    string
	now    func() time.Time
}

func NewCSRFCookieBaker(cfg *config.CSRF, securityKey string) *CSRFCookieBaker {
	return &CSRFCookieBaker{
		name:   cfg.CookieName,
		length: cfg.TokenLength,
		ttl:    cfg.CookieMaxAge.Duration,
		key:    securityKey,
		now:    time.Now,
	}
}

func (c *CSRFCookieBaker) Bake() (*http.Cookie, error) {
	nonce, err := RandomToken(c.length)
	if err != nil {
		return nil, fmt.Errorf("csrf nonce: %w", err)
	}

	payload := nonce + "." + strconv.FormatInt(c.now().Add(c.ttl).Unix(), 10)
	sig := base64.RawURLEncoding.EncodeToString(MAC(c.key, payload))

	cookie := SessionCookie(c.name, payload+":"+sig, c.ttl)
	cookie.HttpOnly = false
	return cookie, nil
}

func (c *CSRFCookieBaker) Check(cookie *http.Cookie) error {
	payload, sig, ok := strings.Cut(cookie.Value, ":")
	if !ok {
		return ErrInvalidCSRFToken
	}

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, MAC(c.key, payload)) {
		return ErrInvalidCSRFToken
	}

	_, exp, ok := strings.Cut(payload, ".")
	if !ok {
		return ErrInvalidCSRFToken
	}
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: expiry: %w", ErrInvalidCSRFToken, err)
	}
	if c.now().After(time.Unix(unix, 0)) {
		return ErrExpiredCSRFToken
	}
	return nil
}
