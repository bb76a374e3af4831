// Package config defines client configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers a YAML file and environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the production ANTEKHUB API.
const DefaultBaseURL = "https://antekhub.eng.unhas.ac.id/api"

// Config contains process configuration.
type Config struct {
	// BaseURL is prepended verbatim to every request path.
	BaseURL string `koanf:"base_url"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration `koanf:"timeout"`

	// SessionFile is where the bearer token and cached profile are kept.
	// Empty keeps the session in memory only.
	SessionFile string `koanf:"session_file"`

	// UserAgent is sent on every request.
	UserAgent string `koanf:"user_agent"`

	// Output is the CLI output format: json, yaml, text.
	Output string `koanf:"output"`

	// MetricsEnabled toggles client-side Prometheus metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsFile, when set, receives the collected metrics in Prometheus
	// text format when the command finishes.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		LogLevel:       "info",
		LogFormat:      "text",
		Timeout:        30 * time.Second,
		SessionFile:    DefaultSessionFile(),
		UserAgent:      "antekhub-cli/1.0",
		Output:         "json",
		MetricsEnabled: true,
	}
}

// DefaultSessionFile returns $HOME/.antekhub/session.yaml, or a relative
// path when the home directory is unknown.
func DefaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".antekhub", "session.yaml")
	}
	return filepath.Join(home, ".antekhub", "session.yaml")
}
