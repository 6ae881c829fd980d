package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/env"
	timex "github.com/ferdiebergado/finderid/internal/pkg/time"
	"gopkg.in/yaml.v3"
)

type App struct {
	Env      string `json:"env,omitempty" yaml:"env,omitempty" env:"ENV"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	Key      string `json:"-" yaml:"-" env:"KEY"`
}

type Server struct {
	URL             string         `json:"url,omitempty" yaml:"url,omitempty" env:"URL"`
	Port            int            `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`
	AllowedOrigin   string         `json:"allowed_origin,omitempty" yaml:"allowed_origin,omitempty" env:"ALLOWED_ORIGIN"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty" yaml:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty" env:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty"`
}

type DB struct {
	Host            string         `json:"-" yaml:"-" env:"DB_HOST"`
	Port            string         `json:"-" yaml:"-" env:"DB_PORT"`
	User            string         `json:"-" yaml:"-" env:"DB_USER"`
	Pass            string         `json:"-" yaml:"-" env:"DB_PASS"`
	Name            string         `json:"-" yaml:"-" env:"DB_NAME"`
	SSLMode         string         `json:"-" yaml:"-" env:"DB_SSLMODE"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty" yaml:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty" yaml:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty" yaml:"ping_timeout,omitempty"`
	AppName         string         `json:"application_name,omitempty" yaml:"application_name,omitempty"`
	QueryTimeout    timex.Duration `json:"statement_timeout,omitempty" yaml:"statement_timeout,omitempty"`
}

type JWT struct {
	JTILength  uint32         `json:"jti_length,omitempty" yaml:"jti_length,omitempty"`
	Issuer     string         `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	TTL        timex.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	RefreshTTL timex.Duration `json:"refresh_ttl,omitempty" yaml:"refresh_ttl,omitempty"`
}

type Cookie struct {
	Name   string         `json:"name,omitempty" yaml:"name,omitempty"`
	MaxAge timex.Duration `json:"max_age,omitempty" yaml:"max_age,omitempty"`
}

type CSRF struct {
	CookieName   string         `json:"cookie_name,omitempty" yaml:"cookie_name,omitempty"`
	HeaderName   string         `json:"header_name,omitempty" yaml:"header_name,omitempty"`
	TokenLength  uint32         `json:"token_length,omitempty" yaml:"token_length,omitempty"`
	CookieMaxAge timex.Duration `json:"cookie_max_age,omitempty" yaml:"cookie_max_age,omitempty"`
}

type Email struct {
	Templates string         `json:"templates,omitempty" yaml:"templates,omitempty"`
	Layout    string         `json:"layout,omitempty" yaml:"layout,omitempty"`
	Sender    string         `json:"sender,omitempty" yaml:"sender,omitempty" env:"EMAIL_SENDER"`
	VerifyTTL timex.Duration `json:"verify_ttl,omitempty" yaml:"verify_ttl,omitempty"`
}

type SMTP struct {
	Host     string `json:"-" yaml:"-" env:"SMTP_HOST"`
	Port     int    `json:"-" yaml:"-" env:"SMTP_PORT"`
	User     string `json:"-" yaml:"-" env:"SMTP_USER"`
	Password string `json:"-" yaml:"-" env:"SMTP_PASS"`
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty" yaml:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty" yaml:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty" yaml:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty" yaml:"key_length,omitempty"`
}

type Campaign struct {
	ChunkSize     int    `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty" env:"CAMPAIGN_CHUNK_SIZE"`
	PlaceholderTo string `json:"placeholder_to,omitempty" yaml:"placeholder_to,omitempty" env:"CAMPAIGN_PLACEHOLDER_TO"`
}

type Plan struct {
	Price    int64          `json:"price,omitempty" yaml:"price,omitempty"`
	Duration timex.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

type Subscription struct {
	Currency       string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	ExpiringWindow timex.Duration  `json:"expiring_window,omitempty" yaml:"expiring_window,omitempty"`
	Plans          map[string]Plan `json:"plans,omitempty" yaml:"plans,omitempty"`
}

type Loyalty struct {
	FirstPaymentPoints int `json:"first_payment_points,omitempty" yaml:"first_payment_points,omitempty"`
}

type Promo struct {
	Reward    int64          `json:"reward,omitempty" yaml:"reward,omitempty"`
	ValidFor  timex.Duration `json:"valid_for,omitempty" yaml:"valid_for,omitempty"`
	MaxActive int            `json:"max_active,omitempty" yaml:"max_active,omitempty"`
}

type Realtime struct {
	WriteWait      timex.Duration `json:"write_wait,omitempty" yaml:"write_wait,omitempty"`
	PongWait       timex.Duration `json:"pong_wait,omitempty" yaml:"pong_wait,omitempty"`
	PingPeriod     timex.Duration `json:"ping_period,omitempty" yaml:"ping_period,omitempty"`
	SendBuffer     int            `json:"send_buffer,omitempty" yaml:"send_buffer,omitempty"`
	MaxMessageSize int64          `json:"max_message_size,omitempty" yaml:"max_message_size,omitempty"`
}

type Config struct {
	App          *App          `json:"app,omitempty" yaml:"app,omitempty"`
	Server       *Server       `json:"server,omitempty" yaml:"server,omitempty"`
	DB           *DB           `json:"db,omitempty" yaml:"db,omitempty"`
	JWT          *JWT          `json:"jwt,omitempty" yaml:"jwt,omitempty"`
	Cookie       *Cookie       `json:"cookie,omitempty" yaml:"cookie,omitempty"`
	CSRF         *CSRF         `json:"csrf,omitempty" yaml:"csrf,omitempty"`
	Email        *Email        `json:"email,omitempty" yaml:"email,omitempty"`
	SMTP         *SMTP         `json:"-" yaml:"-"`
	Argon2       *Argon2       `json:"argon2,omitempty" yaml:"argon2,omitempty"`
	Campaign     *Campaign     `json:"campaign,omitempty" yaml:"campaign,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty" yaml:"subscription,omitempty"`
	Loyalty      *Loyalty      `json:"loyalty,omitempty" yaml:"loyalty,omitempty"`
	Promo        *Promo        `json:"promo,omitempty" yaml:"promo,omitempty"`
	Realtime     *Realtime     `json:"realtime,omitempty" yaml:"realtime,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("app", slog.GroupValue(
			slog.String("env", c.App.Env),
			slog.String("log_level", c.App.LogLevel),
		)),
		slog.Any("server", c.Server),
		slog.Any("jwt", c.JWT),
		slog.Any("email", c.Email),
		slog.Any("campaign", c.Campaign),
		slog.Any("subscription", c.Subscription),
		slog.Any("promo", c.Promo),
		slog.Any("realtime", c.Realtime),
	)
}

// Load reads the config file at cfgFile, decoding it as YAML when the extension is .yaml or
// .yml and as JSON otherwise, then overrides fields tagged with env from the environment.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := env.OverrideStruct(cfg); err != nil {
		return nil, fmt.Errorf("override config with env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseCfgFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(cfgFile)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("decode yaml config %s: %w", cfgFile, err)
		}
	default:
		if err := json.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
		}
	}

	return &cfg, nil
}

// MaxChunkSize is the largest number of BCC recipients sent in a single campaign email.
const MaxChunkSize = 49

func (c *Config) validate() error {
	if c.Server == nil || c.DB == nil || c.JWT == nil || c.Email == nil {
		return errors.New("config: server, db, jwt and email sections are required")
	}

	if c.Campaign == nil {
		c.Campaign = &Campaign{}
	}
	if c.Campaign.ChunkSize <= 0 || c.Campaign.ChunkSize > MaxChunkSize {
		c.Campaign.ChunkSize = MaxChunkSize
	}
	if c.Campaign.PlaceholderTo == "" {
		c.Campaign.PlaceholderTo = c.Email.Sender
	}

	if c.Subscription == nil || len(c.Subscription.Plans) == 0 {
		return errors.New("config: at least one subscription plan is required")
	}

	if c.Loyalty == nil {
		c.Loyalty = &Loyalty{}
	}
	if c.Promo == nil {
		c.Promo = &Promo{}
	}
	if c.Realtime == nil {
		c.Realtime = &Realtime{}
	}
	c.Realtime.setDefaults()

	return nil
}

const (
	defaultWriteWait      = 10 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultSendBuffer     = 16
	defaultMaxMessageSize = 512
)

// setDefaults fills zero fields. Pings must go out before the pong deadline passes.
func (r *Realtime) setDefaults() {
	if r.WriteWait.Duration <= 0 {
		r.WriteWait.Duration = defaultWriteWait
	}
	if r.PongWait.Duration <= 0 {
		r.PongWait.Duration = defaultPongWait
	}
	if r.PingPeriod.Duration <= 0 || r.PingPeriod.Duration >= r.PongWait.Duration {
		r.PingPeriod.Duration = r.PongWait.Duration * 9 / 10
	}
	if r.SendBuffer <= 0 {
		r.SendBuffer = defaultSendBuffer
	}
	if r.MaxMessageSize <= 0 {
		r.MaxMessageSize = defaultMaxMessageSize
	}
}
