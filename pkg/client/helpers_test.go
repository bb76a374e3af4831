package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/antekhub/pkg/client"
	"github.com/okian/antekhub/pkg/metrics"
	"github.com/okian/antekhub/pkg/session"
)

const testToken = "test-token"

// captured is one request seen by fakeAPI.
type captured struct {
	Method      string
	Path        string
	EscapedPath string
	RawQuery    string
	Header      http.Header
	Body        []byte
}

// fakeAPI records every request and answers with handler.
type fakeAPI struct {
	*httptest.Server
	mu       sync.Mutex
	requests []captured
	handler  http.HandlerFunc
}

func newFakeAPI(handler http.HandlerFunc) *fakeAPI {
	f := &fakeAPI{handler: handler}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, captured{
			Method:      r.Method,
			Path:        r.URL.Path,
			EscapedPath: r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			Header:      r.Header.Clone(),
			Body:        body,
		})
		f.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		f.handler(w, r)
	}))
	return f
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) last() captured {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
}

// newTestClient builds a client with a logged-in memory session and an
// isolated metrics registry.
func newTestClient(baseURL string, opts ...client.Option) (*client.Client, *metrics.Manager, session.Store) {
	store := session.NewMemoryStore()
	_ = store.Set(context.Background(), session.KeyAuthToken, testToken)
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	all := append([]client.Option{client.WithSession(store), client.WithMetrics(m)}, opts...)
	return client.New(baseURL, all...), m, store
}

func newRegistry() *prometheus.Registry { return prometheus.NewRegistry() }

func debugLevel() *slog.LevelVar {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelDebug)
	return lv
}
