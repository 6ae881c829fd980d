package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/platform/validation"
)

var errInvalidInput = errors.New("input failed validation")

// ValidateInput validates the params stored by DecodePayload. It must run after DecodePayload[T]
// with the same T.
func ValidateInput[T any](v validation.Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, err := web.ParamsFromContext[T](r.Context())
			if err != nil {
				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if errs := v.ValidateStruct(params); len(errs) > 0 {
				web.RespondUnprocessableEntity(w, errInvalidInput, message.InvalidInput, errs)
				return
			}

			slog.Debug("Input is valid.")
			next.ServeHTTP(w, r)
		})
	}
}
