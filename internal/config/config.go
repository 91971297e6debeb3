package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "INTERNAI_CONFIG"

// Config is the root configuration for the InternAI service.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Cache        CacheConfig
	Jobs         JobsConfig
	AI           AIConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns the listen address for Port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// DatabaseConfig selects the local job store.
type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

// CacheConfig controls the live search cache.
type CacheConfig struct {
	Backend       string // "memory" or "redis"
	TTL           time.Duration
	SweepSchedule string // cron spec for evicting expired memory entries
	RedisURL      string
}

// JobsConfig controls the upstream job search API.
type JobsConfig struct {
	APIKey       string // empty means the mock source is used
	BaseURL      string
	MaxRetries   int
	RetryDelay   time.Duration
	RateInterval time.Duration // minimum gap between upstream calls
	RateBurst    int
	Fallback     bool // search the local store when the upstream fails
}

// AIConfig controls the LLM provider.
type AIConfig struct {
	BaseURL string
	Model   string
	APIKey  string // empty means every AI call fails as not configured
	Timeout time.Duration
}

// AuthConfig controls request authentication.
type AuthConfig struct {
	JWTSecret string
	// TrustUserHeader accepts an unsigned X-User-ID header when no valid
	// token is present. Only safe behind a trusted gateway.
	TrustUserHeader bool
}

// NotificationConfig controls which notifier announces new postings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultPort          = "5000"
	defaultAIBaseURL     = "https://api.groq.com/openai/v1"
	defaultAIModel       = "llama-3.3-70b-versatile"
	defaultJobsBaseURL   = "https://jsearch.p.rapidapi.com"
	defaultSQLitePath    = "internai.db"
	defaultSweepSchedule = "@every 1m"
)

// placeholders are sample values shipped in example env files.
var placeholders = []string{
	"your_key_here",
	"your_groq_api_key_here",
	"your_rapidapi_key_here",
	"changeme",
}

// Credential returns s trimmed, or "" when s is empty or a known placeholder.
func Credential(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range placeholders {
		if strings.EqualFold(s, p) {
			return ""
		}
	}
	return s
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	Database     rawDatabaseConfig  `yaml:"database"`
	Cache        rawCacheConfig     `yaml:"cache"`
	Jobs         rawJobsConfig      `yaml:"jobs"`
	AI           rawAIConfig        `yaml:"ai"`
	Auth         rawAuthConfig      `yaml:"auth"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

type rawDatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type rawCacheConfig struct {
	Backend       string `yaml:"backend"`
	TTL           string `yaml:"ttl"`
	SweepSchedule string `yaml:"sweep_schedule"`
	RedisURL      string `yaml:"redis_url"`
}

type rawJobsConfig struct {
	APIKey       string `yaml:"rapidapi_key"`
	BaseURL      string `yaml:"base_url"`
	MaxRetries   *int   `yaml:"max_retries"`
	RetryDelay   string `yaml:"retry_delay"`
	RateInterval string `yaml:"rate_interval"`
	RateBurst    int    `yaml:"rate_burst"`
	Fallback     *bool  `yaml:"fallback"`
}

type rawAIConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

type rawAuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TrustUserHeader bool   `yaml:"trust_user_header"`
}

// ResolvePath picks the config file: the flag value, then $INTERNAI_CONFIG,
// then ./config.yaml when it exists. An empty result means environment-only.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads and parses the YAML config file at path, fills gaps from the
// environment, validates it, and returns Config. An empty path skips the file.
func Load(path string) (*Config, error) {
	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&raw)

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv fills settings the file left empty from the conventional
// environment variables.
func applyEnv(raw *rawConfig) {
	fill := func(dst *string, env string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&raw.Server.Port, "PORT")
	fill(&raw.Database.DSN, "DATABASE_URL")
	fill(&raw.Cache.RedisURL, "REDIS_URL")
	fill(&raw.Jobs.APIKey, "RAPIDAPI_KEY")
	fill(&raw.AI.APIKey, "GROQ_API_KEY")
	fill(&raw.Auth.JWTSecret, "JWT_SECRET")
	fill(&raw.Notification.WebhookURL, "SLACK_WEBHOOK_URL")
}

func build(raw rawConfig) (*Config, error) {
	var err error
	duration := func(field, value string, def time.Duration) time.Duration {
		if err != nil || value == "" {
			return def
		}
		d, perr := time.ParseDuration(value)
		if perr != nil {
			err = fmt.Errorf("parse %s %q: %w", field, value, perr)
			return def
		}
		return d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         orDefault(raw.Server.Port, defaultPort),
			ReadTimeout:  duration("server.read_timeout", raw.Server.ReadTimeout, 15*time.Second),
			WriteTimeout: duration("server.write_timeout", raw.Server.WriteTimeout, 60*time.Second),
		},
		Database: buildDatabase(raw.Database),
		Cache: CacheConfig{
			Backend:       strings.ToLower(orDefault(raw.Cache.Backend, "memory")),
			TTL:           duration("cache.ttl", raw.Cache.TTL, 15*time.Minute),
			SweepSchedule: orDefault(raw.Cache.SweepSchedule, defaultSweepSchedule),
			RedisURL:      raw.Cache.RedisURL,
		},
		Jobs: JobsConfig{
			APIKey:       Credential(raw.Jobs.APIKey),
			BaseURL:      orDefault(raw.Jobs.BaseURL, defaultJobsBaseURL),
			MaxRetries:   2,
			RetryDelay:   duration("jobs.retry_delay", raw.Jobs.RetryDelay, 500*time.Millisecond),
			RateInterval: duration("jobs.rate_interval", raw.Jobs.RateInterval, time.Second),
			RateBurst:    raw.Jobs.RateBurst,
			Fallback:     true,
		},
		AI: AIConfig{
			BaseURL: orDefault(raw.AI.BaseURL, defaultAIBaseURL),
			Model:   orDefault(raw.AI.Model, defaultAIModel),
			APIKey:  Credential(raw.AI.APIKey),
			Timeout: duration("ai.timeout", raw.AI.Timeout, 60*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:       Credential(raw.Auth.JWTSecret),
			TrustUserHeader: raw.Auth.TrustUserHeader,
		},
		Notification: NotificationConfig{
			Type:       strings.ToLower(orDefault(raw.Notification.Type, "log")),
			WebhookURL: raw.Notification.WebhookURL,
		},
	}
	if err != nil {
		return nil, err
	}

	if raw.Jobs.MaxRetries != nil {
		cfg.Jobs.MaxRetries = *raw.Jobs.MaxRetries
	}
	if raw.Jobs.Fallback != nil {
		cfg.Jobs.Fallback = *raw.Jobs.Fallback
	}
	if cfg.Jobs.RateBurst == 0 {
		cfg.Jobs.RateBurst = 1
	}
	return cfg, nil
}

// buildDatabase infers the driver from a postgres URL when none is set and
// defaults to a local SQLite file.
func buildDatabase(raw rawDatabaseConfig) DatabaseConfig {
	db := DatabaseConfig{Driver: strings.ToLower(raw.Driver), DSN: raw.DSN}
	if db.Driver == "" {
		if strings.HasPrefix(db.DSN, "postgres://") || strings.HasPrefix(db.DSN, "postgresql://") {
			db.Driver = "postgres"
		} else {
			db.Driver = "sqlite"
		}
	}
	if db.Driver == "sqlite" && db.DSN == "" {
		db.DSN = defaultSQLitePath
	}
	return db
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be \"sqlite\" or \"postgres\", got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn (or DATABASE_URL) is required for %s", cfg.Database.Driver)
	}

	switch cfg.Cache.Backend {
	case "memory":
	case "redis":
		if cfg.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url (or REDIS_URL) is required when backend is \"redis\"")
		}
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"redis\", got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", cfg.Cache.TTL)
	}

	if cfg.Jobs.MaxRetries < 0 {
		return fmt.Errorf("jobs.max_retries must not be negative, got %d", cfg.Jobs.MaxRetries)
	}
	if cfg.Jobs.RateInterval <= 0 {
		return fmt.Errorf("jobs.rate_interval must be positive, got %v", cfg.Jobs.RateInterval)
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	return nil
}
