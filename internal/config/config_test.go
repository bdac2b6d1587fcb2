package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxwiser.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TAXWISER_CONFIG", "DB_PATH", "STATIC_PATH", "JWT_SECRET", "LOG_LEVEL", "LISTEN_ADDR"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if !cfg.StateRate().Equal(decimal.RequireFromString("0.03")) {
		t.Errorf("StateRate = %s, want 0.03", cfg.StateRate())
	}
	if !cfg.Autosave.Enabled {
		t.Error("autosave should default to enabled")
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  addr: ":9090"
database:
  path: /tmp/returns.db
auth:
  jwt_secret: from-file
  token_ttl: 2h
logging:
  level: debug
  format: json
indiana:
  state_rate: 0.0305
autosave:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.StaticPath != "../frontend/static" {
		t.Errorf("StaticPath = %q, want default kept", cfg.Server.StaticPath)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.Auth.TokenTTL)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if !cfg.StateRate().Equal(decimal.RequireFromString("0.0305")) {
		t.Errorf("StateRate = %s, want 0.0305", cfg.StateRate())
	}
	if cfg.Autosave.Enabled {
		t.Error("autosave should be disabled")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "database:\n  path: /from/file.db\n")
	t.Setenv("TAXWISER_CONFIG", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LISTEN_ADDR", ":7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/from/file.db" {
		t.Errorf("Database.Path = %q, want file value", cfg.Database.Path)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, want from-env", cfg.Auth.JWTSecret)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Server.Addr)
	}

	t.Setenv("DB_PATH", "/from/env.db")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/from/env.db" {
		t.Errorf("Database.Path = %q, want env value", cfg.Database.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "token_ttl"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"rate of one", func(c *Config) { c.Indiana.StateRate = 1 }, "state_rate"},
		{"negative rate", func(c *Config) { c.Indiana.StateRate = -0.01 }, "state_rate"},
		{"autosave without timeout", func(c *Config) { c.Autosave.Timeout = 0 }, "autosave.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.want)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
	if _, err := Load(writeConfig(t, "server: [not, a, map]")); err == nil {
		t.Error("Load() of malformed YAML succeeded")
	}
	if _, err := Load(writeConfig(t, "auth:\n  token_ttl: -1h\n")); err == nil {
		t.Error("Load() accepted a negative TTL")
	}
}
