package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// APICall records one request received by an APIStub.
type APICall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// APIStub is an httptest server standing in for the remote REST API.
// Routes are keyed by "METHOD /path" using ServeMux patterns.
type APIStub struct {
	*httptest.Server

	mu    sync.Mutex
	mux   *http.ServeMux
	calls []APICall
}

// NewAPIStub starts a stub server; it is closed via t.Cleanup when available.
func NewAPIStub(t TestingTB) *APIStub {
	t.Helper()
	s := &APIStub{mux: http.NewServeMux()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	if tc, ok := any(t).(interface{ Cleanup(func()) }); ok {
		tc.Cleanup(s.Close)
	}
	return s
}

func (s *APIStub) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.calls = append(s.calls, APICall{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	s.mu.Unlock()
	s.mux.ServeHTTP(w, r)
}

// JSON registers a route answering with status and the JSON encoding of body.
func (s *APIStub) JSON(pattern string, status int, body any) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

// Handle registers a custom handler.
func (s *APIStub) Handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, h)
}

// Calls returns a copy of every request received so far.
func (s *APIStub) Calls() []APICall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]APICall, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests matched method and path exactly.
func (s *APIStub) CallCount(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}
