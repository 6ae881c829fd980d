package web

import (
	"net/http"
	"strconv"
)

// QueryInt returns the integer query parameter key clamped to [1, max], or fallback when
// the parameter is missing or malformed.
func QueryInt(r *http.Request, key string, fallback, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}

	return min(n, max)
}
