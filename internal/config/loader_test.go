package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/antekhub/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, config.DefaultBaseURL)
				convey.So(cfg.Timeout, convey.ShouldEqual, 30*time.Second)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ANTEKHUB_BASE_URL", "http://localhost:8000/api")
			_ = os.Setenv("ANTEKHUB_TIMEOUT", "5s")
			_ = os.Setenv("ANTEKHUB_LOG_LEVEL", "debug")
			_ = os.Setenv("ANTEKHUB_OUTPUT", "yaml")
			_ = os.Setenv("ANTEKHUB_METRICS_ENABLED", "false")
			_ = os.Setenv("ANTEKHUB_METRICS_FILE", "/tmp/antekhub.prom")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:8000/api")
				convey.So(cfg.Timeout, convey.ShouldEqual, 5*time.Second)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Output, convey.ShouldEqual, "yaml")
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/antekhub.prom")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
base_url: "https://staging.example.org/api"
timeout: 10s
session_file: /tmp/antekhub-session.yaml
log_format: json
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ANTEKHUB_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://staging.example.org/api")
				convey.So(cfg.Timeout, convey.ShouldEqual, 10*time.Second)
				convey.So(cfg.SessionFile, convey.ShouldEqual, "/tmp/antekhub-session.yaml")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Output, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
base_url: "https://staging.example.org/api"
timeout: 10s
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ANTEKHUB_CONFIG", tmpFile)
			_ = os.Setenv("ANTEKHUB_TIMEOUT", "2s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://staging.example.org/api")
				convey.So(cfg.Timeout, convey.ShouldEqual, 2*time.Second)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ANTEKHUB_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ANTEKHUB_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid timeout", func() {
			_ = os.Setenv("ANTEKHUB_TIMEOUT", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		// A slice keeps Convey registration order stable across re-runs.
		cases := []struct{ name, key, value, msg string }{
			{"empty base url", "ANTEKHUB_BASE_URL", " ", "base_url must not be empty"},
			{"relative base url", "ANTEKHUB_BASE_URL", "/api", "absolute http(s) URL"},
			{"ftp base url", "ANTEKHUB_BASE_URL", "ftp://example.org", "absolute http(s) URL"},
			{"zero timeout", "ANTEKHUB_TIMEOUT", "0s", "timeout must be positive"},
			{"unknown output", "ANTEKHUB_OUTPUT", "table", "output must be one of"},
			{"unknown log format", "ANTEKHUB_LOG_FORMAT", "xml", "log_format must be"},
		}
		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				_ = os.Setenv(tc.key, tc.value)
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)

				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, tc.msg)
			})
		}
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			_ = os.Unsetenv(name)
		}
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "antekhub-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
