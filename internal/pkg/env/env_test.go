package env_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/env"
	timex "github.com/ferdiebergado/finderid/internal/pkg/time"
	"github.com/google/go-cmp/cmp"
)

type smtpOpts struct {
	Port     int    `env:"SMTP_PORT"`
	TokenLen uint32 `env:"TOKEN_LEN"`
}

type settings struct {
	Env      string         `env:"ENV"`
	Debug    bool           `env:"DEBUG"`
	Shutdown timex.Duration `env:"SHUTDOWN_TIMEOUT"`
	Plain    timex.Duration
	SMTP     *smtpOpts
	Extra    *smtpOpts
}

func TestOverrideStruct(t *testing.T) {
	t.Setenv("ENV", "testing")
	t.Setenv("DEBUG", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "45s")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("TOKEN_LEN", "32")

	got := settings{
		Env:   "development",
		Plain: timex.Duration{Duration: time.Minute},
		SMTP:  &smtpOpts{Port: 25},
	}

	if err := env.OverrideStruct(&got); err != nil {
		t.Fatal(err)
	}

	want := settings{
		Env:      "testing",
		Debug:    true,
		Shutdown: timex.Duration{Duration: 45 * time.Second},
		Plain:    timex.Duration{Duration: time.Minute},
		SMTP:     &smtpOpts{Port: 2525, TokenLen: 32},
		Extra:    &smtpOpts{Port: 2525, TokenLen: 32},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("env.OverrideStruct() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverrideStruct_ReportsEveryBadValue(t *testing.T) {
	t.Setenv("SMTP_PORT", "eighty")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	var s settings
	err := env.OverrideStruct(&s)
	if err == nil {
		t.Fatal("env.OverrideStruct() = nil, want: error")
	}

	for _, want := range []string{"SMTP_PORT", "SHUTDOWN_TIMEOUT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err = %q, want it to name %s", err, want)
		}
	}
}

func TestOverrideStruct_RejectsNonPointer(t *testing.T) {
	t.Parallel()

	if err := env.OverrideStruct(settings{}); err == nil {
		t.Error("env.OverrideStruct(settings{}) = nil, want: error")
	}
	if err := env.OverrideStruct((*settings)(nil)); err == nil {
		t.Error("env.OverrideStruct(nil) = nil, want: error")
	}
}
