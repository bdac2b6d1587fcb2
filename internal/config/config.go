// Package config loads the server configuration from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Indiana  IndianaConfig  `yaml:"indiana"`
	Autosave AutosaveConfig `yaml:"autosave"`
}

type ServerConfig struct {
	// Addr is the TCP listen address. Defaults to :8080.
	Addr string `yaml:"addr"`

	// StaticPath is the directory of frontend files.
	StaticPath string `yaml:"static_path"`
}

type DatabaseConfig struct {
	// Path is the SQLite file. Parent directories are created.
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// JWTSecret signs session tokens. A random secret is generated at
	// startup when empty, so tokens do not survive a restart.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is how long a session token stays valid.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" (colored, for terminals) or "json".
	Format string `yaml:"format"`
}

type IndianaConfig struct {
	// StateRate is the flat Indiana income tax rate as a fraction.
	StateRate float64 `yaml:"state_rate"`

	// CountiesFile replaces the built-in county rate table.
	CountiesFile string `yaml:"counties_file"`
}

type AutosaveConfig struct {
	// Enabled turns on saving when the filer moves between sections.
	Enabled bool `yaml:"enabled"`

	// Timeout bounds one background save.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			StaticPath: "../frontend/static",
		},
		Database: DatabaseConfig{
			Path: "./data/taxwiser.db",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Indiana: IndianaConfig{
			StateRate: 0.03,
		},
		Autosave: AutosaveConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
		},
	}
}

// Load reads the file at path over the defaults, then applies environment
// overrides. An empty path uses TAXWISER_CONFIG; if that is unset too,
// only defaults and environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TAXWISER_CONFIG")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (c *Config) applyEnv() {
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Server.StaticPath = getEnv("STATIC_PATH", c.Server.StaticPath)
	c.Server.Addr = getEnv("LISTEN_ADDR", c.Server.Addr)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be text or json", c.Logging.Format))
	}
	if c.Indiana.StateRate < 0 || c.Indiana.StateRate >= 1 {
		errs = append(errs, fmt.Errorf("indiana.state_rate %v must be in [0, 1)", c.Indiana.StateRate))
	}
	if c.Autosave.Enabled && c.Autosave.Timeout <= 0 {
		errs = append(errs, errors.New("autosave.timeout must be positive when autosave is enabled"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// StateRate returns the Indiana rate as a decimal.
func (c *Config) StateRate() decimal.Decimal {
	return decimal.NewFromFloat(c.Indiana.StateRate)
}
