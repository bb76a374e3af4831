package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/antekhub/internal/app"
	"github.com/okian/antekhub/pkg/logger"
	"github.com/okian/antekhub/pkg/metrics"
	"github.com/okian/antekhub/pkg/session"
)

// seenRequest is one request observed by mockServer.
type seenRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Auth        string
	Body        []byte
}

// mockServer records requests and answers with handler.
type mockServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []seenRequest
	handler  http.HandlerFunc
}

func newMockServer(handler http.HandlerFunc) *mockServer {
	m := &mockServer{handler: handler}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		m.mu.Lock()
		m.requests = append(m.requests, seenRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Auth:        r.Header.Get("Authorization"),
			Body:        body,
		})
		m.mu.Unlock()
		m.handler(w, r)
	}))
	return m
}

func (m *mockServer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockServer) last() seenRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func alumniListHandler(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"data": []any{map[string]any{"uuid": "a1", "nama": "Ana"}},
	})
}

// loggedIn returns a memory session holding a token.
func loggedIn() session.Store {
	s := session.NewMemoryStore()
	_ = s.Set(context.Background(), session.KeyAuthToken, "cli-token")
	return s
}

// runCLI runs the CLI against baseURL with store as the session and
// returns what was written to stdout.
func runCLI(baseURL string, store session.Store, args ...string) (string, error) {
	var buf bytes.Buffer
	a := App(
		app.WithStore(store),
		app.WithLogger(logger.Nop()),
		app.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
	)
	a.Writer = &buf
	a.ErrWriter = io.Discard
	err := a.Run(append([]string{"antekhub", "--base-url", baseURL}, args...))
	return buf.String(), err
}
