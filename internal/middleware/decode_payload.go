package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
)

const unknownFieldPrefix = "json: unknown field "

// DecodePayload decodes a single JSON object of type T from the request body into the request
// context. Bodies larger than maxBytes are rejected.
func DecodePayload[T any](maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Debug("Decoding json payload...")

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()

			var payload T
			if err := dec.Decode(&payload); err != nil {
				respondDecodeError(w, err)
				return
			}

			if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
				web.RespondBadRequest(w, errors.New("body must contain a single json object"), message.InvalidInput, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(web.NewContextWithParams(r.Context(), payload)))
		})
	}
}

func respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		web.RespondRequestEntityTooLarge(w, err, message.InvalidInput, nil)
		return
	}

	if field, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
		web.RespondUnprocessableEntity(w, err, "Unknown field in payload.", map[string]string{"field": field})
		return
	}

	web.RespondBadRequest(w, err, message.InvalidInput, nil)
}
