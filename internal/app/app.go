// Package app assembles the ANTEKHUB client and its supporting pieces
// (logger, session store, metrics) from configuration.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/antekhub/internal/config"
	"github.com/okian/antekhub/pkg/client"
	"github.com/okian/antekhub/pkg/logger"
	"github.com/okian/antekhub/pkg/metrics"
	"github.com/okian/antekhub/pkg/session"
)

// App holds the wired components for one process.
type App struct {
	cfg        *config.Config
	logger     logger.Logger
	store      session.Store
	metrics    *metrics.Manager
	httpClient *http.Client
	client     *client.Client
}

// Option applies a configuration option to the App.
type Option func(*App)

// WithConfig sets the configuration. Defaults to config.New().
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		if cfg != nil {
			a.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger instead of the global one.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithStore overrides the session store chosen from config.
func WithStore(store session.Store) Option {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// WithHTTPClient sets the *http.Client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		if hc != nil {
			a.httpClient = hc
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// New validates the configuration and builds the client.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg == nil {
		a.cfg = config.New()
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	if a.logger == nil {
		if err := logger.Init(logger.WithFormat(logger.Format(a.cfg.LogFormat))); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		a.logger = logger.Get()
		if err := logger.SetLevelString(a.cfg.LogLevel); err != nil {
			a.logger.Warn(context.Background(), "invalid log_level; falling back to info",
				logger.String("log_level", a.cfg.LogLevel), logger.Error(err))
			_ = logger.SetLevelString("info")
		}
	}

	if a.store == nil {
		if a.cfg.SessionFile == "" {
			a.store = session.NewMemoryStore()
		} else {
			a.store = session.NewFileStore(a.cfg.SessionFile)
		}
	}

	if a.metrics == nil {
		if a.cfg.MetricsEnabled {
			a.metrics = metrics.Default()
		} else {
			a.metrics = metrics.NewManager(
				metrics.WithMetricsEnabled(false),
				metrics.WithPrometheusRegistry(prometheus.NewRegistry()),
			)
		}
	}

	a.client = client.New(a.cfg.BaseURL,
		client.WithSession(a.store),
		client.WithLogger(a.logger.Named("client")),
		client.WithMetrics(a.metrics),
		client.WithTimeout(a.cfg.Timeout),
		client.WithUserAgent(a.cfg.UserAgent),
		client.WithHTTPClient(a.httpClient),
	)

	a.logger.Debug(context.Background(), "client ready",
		logger.String("base_url", a.cfg.BaseURL),
		logger.Duration("timeout", a.cfg.Timeout),
		logger.Bool("persistent_session", a.cfg.SessionFile != ""),
	)
	return a, nil
}

// Client returns the API client.
func (a *App) Client() *client.Client { return a.client }

// Config returns the effective configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the process logger.
func (a *App) Logger() logger.Logger { return a.logger }

// Store returns the session store.
func (a *App) Store() session.Store { return a.store }

// Metrics returns the metrics manager.
func (a *App) Metrics() *metrics.Manager { return a.metrics }
