package validation_test

import (
	"testing"

	"github.com/ferdiebergado/finderid/internal/platform/validation"
)

func TestGoplaygroundValidator_ValidateStruct(t *testing.T) {
	t.Parallel()

	type signup struct {
		Email    string `json:"email" validate:"required,email"`
		Plan     string `json:"plan" validate:"required,oneof=basic pro business"`
		Password string `json:"password" validate:"required,min=8"`
		Confirm  string `json:"password_confirm" validate:"eqfield=Password"`
		Phone    string `json:"phone,omitempty" validate:"omitempty,phone"`
	}

	tests := []struct {
		name   string
		given  any
		field  string
		errMsg string
	}{
		{"valid input", signup{Email: "a@example.com", Plan: "pro", Password: "12345678", Confirm: "12345678"}, "", ""},
		{"required field is missing", signup{Plan: "pro", Password: "12345678", Confirm: "12345678"}, "email", "email is required"},
		{"invalid email", signup{Email: "nope", Plan: "pro", Password: "12345678", Confirm: "12345678"}, "email", "email must be a valid email address"},
		{"unknown plan", signup{Email: "a@example.com", Plan: "gold", Password: "12345678", Confirm: "12345678"}, "plan", "plan must be one of: basic pro business"},
		{"short password", signup{Email: "a@example.com", Plan: "pro", Password: "123", Confirm: "123"}, "password", "password must be at least 8 characters long"},
		{"valid phone", signup{Email: "a@example.com", Plan: "pro", Password: "12345678", Confirm: "12345678", Phone: "+63 (917) 555-0100"}, "", ""},
		{"phone with letters", signup{Email: "a@example.com", Plan: "pro", Password: "12345678", Confirm: "12345678", Phone: "call me"}, "phone", "phone must be a valid phone number"},
		{"phone too short", signup{Email: "a@example.com", Plan: "pro", Password: "12345678", Confirm: "12345678", Phone: "12-34"}, "phone", "phone must be a valid phone number"},
		{"confirm mismatch", signup{Email: "a@example.com", Plan: "pro", Password: "12345678", Confirm: "87654321"}, "password_confirm", "password_confirm should match Password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := validation.NewGoPlaygroundValidator()

			errs := v.ValidateStruct(tc.given)
			if tc.field == "" {
				if errs != nil {
					t.Errorf("v.ValidateStruct(%v) = %+v, want: %+v", tc.given, errs, nil)
				}
				return
			}

			gotMsg, wantMsg := errs[tc.field], tc.errMsg
			if gotMsg != wantMsg {
				t.Errorf("errs[%q] = %q, want: %q", tc.field, gotMsg, wantMsg)
			}
		})
	}
}
