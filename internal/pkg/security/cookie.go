package security

import (
	"net/http"
	"time"
)

// SessionCookie returns a Secure, HttpOnly, SameSite=Strict cookie scoped to the whole site.
func SessionCookie(name, val string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie tells the client to drop the named cookie.
func ExpiredCookie(name string) *http.Cookie {
	c := SessionCookie(name, "", 0)
	c.MaxAge = -1
	return c
}
