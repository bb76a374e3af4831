// Package command provides CLI command definitions for antekhub.
//
// It uses urfave/cli/v2 for command parsing. Configuration is loaded once
// in the root Before hook; global flags override the loaded values.
package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/okian/antekhub/internal/app"
	"github.com/okian/antekhub/internal/cli/output"
	"github.com/okian/antekhub/internal/config"
	"github.com/okian/antekhub/pkg/client"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const appKey = "app"

// App creates the CLI application. opts are applied after the options
// derived from configuration.
func App(opts ...app.Option) *cli.App {
	return &cli.App{
		Name:     "antekhub",
		Usage:    "ANTEKHUB alumni administration from the command line",
		Version:  fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			AlumniCommand(),
			ClaimsCommand(),
			CountriesCommand(),
			EthnicitiesCommand(),
			ProgramsCommand(),
			AdminsCommand(),
			InfoCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.Context)
			if err != nil {
				return err
			}
			applyGlobalFlags(c, cfg)
			a, err := app.New(append([]app.Option{app.WithConfig(cfg)}, opts...)...)
			if err != nil {
				return err
			}
			c.App.Metadata[appKey] = a
			return nil
		},
		After: writeMetrics,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "base-url",
			Aliases: []string{"u"},
			Usage:   "ANTEKHUB API base URL",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: json, yaml, text",
		},
		&cli.StringFlag{
			Name:  "session-file",
			Usage: "File holding the auth token and cached profile",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout (e.g., 10s)",
		},
		&cli.PathFlag{
			Name:  "metrics-file",
			Usage: "Write request metrics in Prometheus text format to `PATH` on exit",
		},
	}
}

// applyGlobalFlags overrides cfg with flags given on the command line.
func applyGlobalFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("session-file") {
		cfg.SessionFile = c.String("session-file")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.Path("metrics-file")
	}
}

// writeMetrics dumps the client metrics to the configured file. It runs
// after the command, whether or not the command failed.
func writeMetrics(c *cli.Context) error {
	a, err := appFrom(c)
	if err != nil || a.Config().MetricsFile == "" {
		return nil
	}
	g := a.Metrics().Gatherer()
	if g == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.Config().MetricsFile, g); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// appFrom retrieves the wired application from context.
func appFrom(c *cli.Context) (*app.App, error) {
	if a, ok := c.App.Metadata[appKey].(*app.App); ok {
		return a, nil
	}
	return nil, errors.New("application not initialized")
}

// apiClient returns the API client of the wired application.
func apiClient(c *cli.Context) (*client.Client, error) {
	a, err := appFrom(c)
	if err != nil {
		return nil, err
	}
	return a.Client(), nil
}

// render writes v in the configured output format.
func render(c *cli.Context, v any) error {
	a, err := appFrom(c)
	if err != nil {
		return err
	}
	return output.NewFormatter(output.Format(a.Config().Output)).Format(c.App.Writer, v)
}

// renderResult decodes res and writes it.
func renderResult(c *cli.Context, res client.Result) error {
	v, err := res.Value()
	if err != nil {
		return err
	}
	return render(c, v)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
