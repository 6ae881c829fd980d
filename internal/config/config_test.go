package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	timex "github.com/ferdiebergado/finderid/internal/pkg/time"
	"github.com/google/go-cmp/cmp"
)

const jsonConfig = `{
  "server": {"url": "http://localhost", "port": 8080, "read_timeout": "5s"},
  "db": {"application_name": "finderid"},
  "jwt": {"issuer": "finderid", "ttl": "15m"},
  "email": {"sender": "no-reply@example.com"},
  "campaign": {"chunk_size": 500},
  "subscription": {"plans": {"basic": {"price": 100, "duration": "720h"}}}
}`

const yamlConfig = `
server:
  url: http://localhost
  port: 8080
  read_timeout: 5s
db:
  application_name: finderid
jwt:
  issuer: finderid
  ttl: 15m
email:
  sender: no-reply@example.com
campaign:
  chunk_size: 10
  placeholder_to: list@example.com
subscription:
  plans:
    basic:
      price: 100
      duration: 720h
`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KEY", "secret")

	cfg, err := config.Load(writeFile(t, "config.json", jsonConfig))
	if err != nil {
		t.Fatalf("config.Load() = %v, want: nil", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("cfg.Server.Port = %d, want: %d", cfg.Server.Port, 9090)
	}

	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("cfg.Server.ReadTimeout = %v, want: %v", cfg.Server.ReadTimeout.Duration, 5*time.Second)
	}

	if cfg.App.Key != "secret" {
		t.Errorf("cfg.App.Key = %q, want: %q", cfg.App.Key, "secret")
	}

	if cfg.Campaign.ChunkSize != config.MaxChunkSize {
		t.Errorf("cfg.Campaign.ChunkSize = %d, want: %d", cfg.Campaign.ChunkSize, config.MaxChunkSize)
	}

	if cfg.Campaign.PlaceholderTo != "no-reply@example.com" {
		t.Errorf("cfg.Campaign.PlaceholderTo = %q, want: %q", cfg.Campaign.PlaceholderTo, "no-reply@example.com")
	}
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "config.yaml", yamlConfig))
	if err != nil {
		t.Fatalf("config.Load() = %v, want: nil", err)
	}

	if cfg.Campaign.ChunkSize != 10 {
		t.Errorf("cfg.Campaign.ChunkSize = %d, want: %d", cfg.Campaign.ChunkSize, 10)
	}

	plan, ok := cfg.Subscription.Plans["basic"]
	if !ok {
		t.Fatal("cfg.Subscription.Plans[\"basic\"] is missing")
	}

	if plan.Duration.Duration != 720*time.Hour {
		t.Errorf("plan.Duration = %v, want: %v", plan.Duration.Duration, 720*time.Hour)
	}
}

func TestLoad_RealtimeDefaults(t *testing.T) {
	tests := []struct {
		name     string
		realtime string
		want     config.Realtime
	}{
		{
			name:     "section omitted",
			realtime: "",
			want: config.Realtime{
				WriteWait:      timex.Duration{Duration: 10 * time.Second},
				PongWait:       timex.Duration{Duration: 60 * time.Second},
				PingPeriod:     timex.Duration{Duration: 54 * time.Second},
				SendBuffer:     16,
				MaxMessageSize: 512,
			},
		},
		{
			name:     "ping period not shorter than pong wait",
			realtime: `,"realtime": {"pong_wait": "10s", "ping_period": "30s", "send_buffer": 4}`,
			want: config.Realtime{
				WriteWait:      timex.Duration{Duration: 10 * time.Second},
				PongWait:       timex.Duration{Duration: 10 * time.Second},
				PingPeriod:     timex.Duration{Duration: 9 * time.Second},
				SendBuffer:     4,
				MaxMessageSize: 512,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents := strings.TrimSuffix(strings.TrimSpace(jsonConfig), "}") + tt.realtime + "}"

			cfg, err := config.Load(writeFile(t, "config.json", contents))
			if err != nil {
				t.Fatalf("config.Load() = %v, want: nil", err)
			}

			if diff := cmp.Diff(tt.want, *cfg.Realtime); diff != "" {
				t.Errorf("cfg.Realtime mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name, file, contents string
	}{
		{"malformed json", "config.json", `{"server":`},
		{"malformed yaml", "config.yml", "server: [\n"},
		{"missing plans", "config.json", `{"server":{},"db":{},"jwt":{},"email":{}}`},
		{"missing sections", "config.json", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Load(writeFile(t, tt.file, tt.contents)); err == nil {
				t.Errorf("config.Load(%q) = nil, want: error", tt.contents)
			}
		})
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("config.Load(missing) = nil, want: error")
	}
}
