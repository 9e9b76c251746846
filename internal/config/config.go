// ABOUTME: Configuration loader for the pickbazar client
// ABOUTME: Reads an optional .env file, then environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// AppName names the config directory
const AppName = "pickbazar"

// DefaultAPIURL is used when no URL is configured
const DefaultAPIURL = "http://localhost:8000"

type Config struct {
	// API
	APIURL  string        `env:"PICKBAZAR_API_URL" env-default:"http://localhost:8000" env-description:"Base URL of the storefront API"`
	Timeout time.Duration `env:"PICKBAZAR_TIMEOUT" env-default:"30s" env-description:"HTTP client timeout"`

	// Local state (session.json, recent.json, debug.log)
	ConfigDir string `env:"PICKBAZAR_CONFIG_DIR" env-description:"Directory for session and UI state"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text" env-description:"text or json"`
}

// Load reads configuration from envFiles (default ".env" when none given,
// missing files are ignored) and the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the environment
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.ConfigDir == "" {
		cfg.ConfigDir = DefaultConfigDir()
	}
	cfg.APIURL = NormalizeURL(cfg.APIURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid PICKBAZAR_API_URL %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("PICKBAZAR_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}

// NormalizeURL adds a scheme when missing and drops trailing slashes
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultAPIURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// Usage returns a description of the supported environment variables
func Usage() (string, error) {
	var cfg Config
	header := "Environment variables:"
	return cleanenv.GetDescription(&cfg, &header)
}
