package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every variable Load consults so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "RAPIDAPI_KEY", "GROQ_API_KEY", "JWT_SECRET", "SLACK_WEBHOOK_URL", EnvConfigPath} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_GROQ_KEY", "gsk_live")
	path := writeConfig(t, `
server:
  port: "8080"
  read_timeout: 5s
database:
  driver: postgres
  dsn: postgres://u:p@localhost/internai
cache:
  backend: redis
  ttl: 10m
  redis_url: redis://localhost:6379/0
jobs:
  rapidapi_key: rk_123
  max_retries: 0
  rate_interval: 2s
  rate_burst: 3
  fallback: false
ai:
  api_key: ${TEST_GROQ_KEY}
  model: llama-3.1-8b-instant
auth:
  jwt_secret: s3cret
  trust_user_header: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != ":8080" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://u:p@localhost/internai" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Jobs.APIKey != "rk_123" || cfg.Jobs.MaxRetries != 0 || cfg.Jobs.Fallback {
		t.Errorf("Jobs = %+v", cfg.Jobs)
	}
	if cfg.Jobs.RateInterval != 2*time.Second || cfg.Jobs.RateBurst != 3 {
		t.Errorf("Jobs rate = %v/%d", cfg.Jobs.RateInterval, cfg.Jobs.RateBurst)
	}
	if cfg.AI.APIKey != "gsk_live" {
		t.Errorf("AI.APIKey = %q, want expanded env value", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "llama-3.1-8b-instant" || cfg.AI.BaseURL != defaultAIBaseURL {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.Auth.JWTSecret != "s3cret" || !cfg.Auth.TrustUserHeader {
		t.Errorf("Auth = %+v", cfg.Auth)
	}
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("GROQ_API_KEY", "gsk_abc")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("Port = %q, want 7000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != defaultSQLitePath {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.TTL != 15*time.Minute || cfg.Cache.SweepSchedule != defaultSweepSchedule {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Jobs.MaxRetries != 2 || !cfg.Jobs.Fallback || cfg.Jobs.RateBurst != 1 {
		t.Errorf("Jobs = %+v", cfg.Jobs)
	}
	if cfg.AI.APIKey != "gsk_abc" || cfg.AI.Model != defaultAIModel {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q", cfg.Notification.Type)
	}
}

func TestLoad_PostgresInferredFromDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgresql://localhost/internai")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
}

func TestLoad_PlaceholderCredentialsAreAbsent(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "your_groq_api_key_here")
	t.Setenv("RAPIDAPI_KEY", "your_key_here")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "" || cfg.Jobs.APIKey != "" {
		t.Errorf("placeholders kept: ai=%q jobs=%q", cfg.AI.APIKey, cfg.Jobs.APIKey)
	}
}

func TestLoad_FileWinsOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	path := writeConfig(t, "server:\n  port: \"9000\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Server.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "cache:\n  ttl: soon\n"},
		{"zero ttl", "cache:\n  ttl: 0s\n"},
		{"unknown cache backend", "cache:\n  backend: memcached\n"},
		{"redis without url", "cache:\n  backend: redis\n"},
		{"unknown driver", "database:\n  driver: mysql\n  dsn: x\n"},
		{"postgres without dsn", "database:\n  driver: postgres\n"},
		{"negative retries", "jobs:\n  max_retries: -1\n"},
		{"slack without webhook", "notification:\n  type: slack\n"},
		{"slack bad webhook", "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n"},
		{"unknown notifier", "notification:\n  type: email\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load: expected validation error")
			}
		})
	}
}

func TestCredential(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"your_key_here", ""},
		{"YOUR_GROQ_API_KEY_HERE", ""},
		{" gsk_real ", "gsk_real"},
	}
	for _, tt := range tests {
		if got := Credential(tt.in); got != tt.want {
			t.Errorf("Credential(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolvePath(t *testing.T) {
	clearEnv(t)
	if got := ResolvePath("flag.yaml"); got != "flag.yaml" {
		t.Errorf("flag: got %q", got)
	}
	t.Setenv(EnvConfigPath, "/etc/internai.yaml")
	if got := ResolvePath(""); got != "/etc/internai.yaml" {
		t.Errorf("env: got %q", got)
	}
}
