// Package client is a Go client for the ANTEKHUB alumni REST API.
//
// A Client is built once per session with an explicit credential source.
// Every endpoint goes through Client.Do, which resolves the URL, attaches
// the bearer token, encodes the body, logs the exchange, parses the
// response by content type and turns non-2xx statuses into *APIError.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/antekhub/pkg/logger"
	"github.com/okian/antekhub/pkg/metrics"
	"github.com/okian/antekhub/pkg/session"
)

// Default client configuration constants.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "antekhub-go/1.0"
	requestIDHeader  = "X-Request-ID"
)

// loginPaths may be called without a token. The path, minus any query,
// must match exactly.
var loginPaths = map[string]bool{
	"/login":      true,
	"/auth/login": true,
}

// TokenSource supplies the bearer token. An empty token means no session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns token.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) { return token, nil })
}

// StoreTokenSource reads the token from store on every call, so a logout
// through the same store takes effect immediately.
func StoreTokenSource(store session.Store) TokenSource {
	return TokenSourceFunc(func(ctx context.Context) (string, error) {
		tok, err := store.Get(ctx, session.KeyAuthToken)
		if errors.Is(err, session.ErrNotFound) {
			return "", nil
		}
		return tok, err
	})
}

// Request describes one API call.
type Request struct {
	Method string // defaults to GET
	Path   string // appended verbatim to the base URL; may carry a query
	Route  string // metrics label, e.g. "/alumni/{id}"; defaults to Path without query
	Body   Body
	Header http.Header // merged over the defaults
}

func (r Request) route() string {
	if r.Route != "" {
		return r.Route
	}
	p, _, _ := strings.Cut(r.Path, "?")
	return p
}

// Client talks to one ANTEKHUB API base address.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	tokens    TokenSource
	store     session.Store
	logger    logger.Logger
	metrics   *metrics.Manager
	userAgent string

	Alumni        *AlumniService
	Claims        *ClaimService
	Countries     *CountryService
	Ethnicities   *EthnicityService
	StudyPrograms *StudyProgramService
	Admins        *AdminService
	Info          *InfoService
	Auth          *AuthService
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each round trip. Ignored when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithSession sets the session store used by Auth and, unless
// WithTokenSource is also given, as the token source.
func WithSession(store session.Store) Option {
	return func(c *Client) {
		if store != nil {
			c.store = store
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to metrics.Default().
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a Client for baseURL, e.g. "https://antekhub.eng.unhas.ac.id/api".
// Without options the session lives in memory.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultTimeout,
		logger:    logger.Nop(),
		metrics:   metrics.Default(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.store == nil {
		c.store = session.NewMemoryStore()
	}
	if c.tokens == nil {
		c.tokens = StoreTokenSource(c.store)
	}

	base := service{client: c}
	c.Alumni = (*AlumniService)(&base)
	c.Claims = (*ClaimService)(&base)
	c.Countries = (*CountryService)(&base)
	c.Ethnicities = (*EthnicityService)(&base)
	c.StudyPrograms = (*StudyProgramService)(&base)
	c.Admins = (*AdminService)(&base)
	c.Info = (*InfoService)(&base)
	c.Auth = (*AuthService)(&base)
	return c
}

// BaseURL returns the base address requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the store backing Auth.
func (c *Client) Session() session.Store { return c.store }

// service is shared by every resource group.
type service struct {
	client *Client
}

// Do executes req and returns the parsed body on 2xx.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	route := req.route()
	requestID := uuid.NewString()
	log := c.logger.With(logger.String("request_id", requestID))

	token, err := c.tokens.Token(ctx)
	if err != nil {
		log.Error(ctx, "token lookup failed", logger.String("path", req.Path), logger.Error(err))
		c.metrics.RecordError(route, metrics.KindUnauthenticated)
		return Result{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if token == "" && !isLoginPath(req.Path) {
		log.Error(ctx, "no auth token found", logger.String("path", req.Path))
		c.metrics.RecordError(route, metrics.KindUnauthenticated)
		return Result{}, ErrUnauthenticated
	}

	var (
		payload     io.Reader
		contentType = ContentTypeJSON
	)
	if req.Body != nil {
		payload, contentType, err = req.Body.Encode()
		if err != nil {
			log.Error(ctx, "API request failed", logger.String("path", req.Path), logger.Error(err))
			c.metrics.RecordError(route, metrics.KindValidation)
			return Result{}, err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, payload)
	if err != nil {
		log.Error(ctx, "API request failed", logger.String("path", req.Path), logger.Error(err))
		c.metrics.RecordError(route, metrics.KindValidation)
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(requestIDHeader, requestID)
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	log.Info(ctx, "sending request", logger.String("method", method), logger.String("path", req.Path))
	if req.Body != nil {
		log.Debug(ctx, "request payload", logger.Any("payload", req.Body.LogValue()))
	}

	start := time.Now()
	c.metrics.IncInFlight()
	resp, err := c.http.Do(httpReq)
	c.metrics.DecInFlight()
	if err != nil {
		log.Error(ctx, "API request failed", logger.String("path", req.Path), logger.Error(err))
		c.metrics.RecordError(route, metrics.KindTransport)
		return Result{}, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, req.Path, err)
	}
	defer resp.Body.Close()

	statusText := statusText(resp)
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	c.metrics.RecordRequest(route, method, strconv.Itoa(resp.StatusCode), durationMs)
	log.Info(ctx, "response received",
		logger.String("path", req.Path),
		logger.Int("status", resp.StatusCode),
		logger.String("status_text", statusText),
		logger.Any("headers", flattenHeaders(resp.Header)),
		logger.Float64("duration_ms", durationMs),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "API request failed", logger.String("path", req.Path), logger.Error(err))
		c.metrics.RecordError(route, metrics.KindTransport)
		return Result{}, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	result := TextResult(string(raw))
	if isJSONContentType(resp.Header.Get("Content-Type")) {
		result = JSONResult(raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText,
			Message:    errorMessage(result, resp.StatusCode, statusText),
			Body:       result,
		}
		log.Error(ctx, "API request failed", logger.String("path", req.Path), logger.Error(apiErr))
		c.metrics.RecordError(route, metrics.ErrorKindForStatus(resp.StatusCode))
		return result, apiErr
	}

	if result.IsJSON() && !result.Empty() && !json.Valid(raw) {
		err := fmt.Errorf("%w: %s %s returned malformed json", ErrDecode, method, req.Path)
		log.Error(ctx, "API request failed", logger.String("path", req.Path), logger.Error(err))
		c.metrics.RecordError(route, metrics.KindDecode)
		return Result{}, err
	}

	return result, nil
}

// fail records a request rejected before it reached the network.
func (c *Client) fail(ctx context.Context, route string, err error) error {
	c.logger.Error(ctx, "API request failed", logger.String("route", route), logger.Error(err))
	c.metrics.RecordError(route, metrics.KindValidation)
	return err
}

func isLoginPath(path string) bool {
	p, _, _ := strings.Cut(path, "?")
	return loginPaths[strings.TrimRight(p, "/")]
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[k] = strings.Join(vs, ", ")
	}
	return out
}
