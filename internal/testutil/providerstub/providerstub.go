// Package providerstub runs an in-process fake provider for tests. It serves
// a discovery document at "/" and dispatches every other path to handlers
// registered by the test, recording all requests it receives.
package providerstub

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/model"
)

// Address is the provider address reported by the discovery document.
const Address = "0x00Bd138aBD70e2F00903268F3Db08f2D25677C9e"

// DefaultEndpoints mirrors the endpoints advertised by a v4 provider.
var DefaultEndpoints = model.EndpointDirectory{
	{Name: "nonce", Method: http.MethodGet, Path: "/api/services/nonce"},
	{Name: "encrypt", Method: http.MethodPost, Path: "/api/services/encrypt"},
	{Name: "fileinfo", Method: http.MethodPost, Path: "/api/services/fileinfo"},
	{Name: "initialize", Method: http.MethodGet, Path: "/api/services/initialize"},
	{Name: "download", Method: http.MethodGet, Path: "/api/services/download"},
}

// Request is a request received by the stub.
type Request struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        []byte
}

// Server is a fake provider backed by httptest.Server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	endpoints model.EndpointDirectory
	handlers  map[string]http.HandlerFunc
	requests  []Request
}

// Option configures a Server.
type Option func(*Server)

// WithEndpoints replaces the advertised endpoints.
func WithEndpoints(endpoints model.EndpointDirectory) Option {
	return func(s *Server) {
		s.endpoints = endpoints
	}
}

// New starts a fake provider. Close it when done.
func New(opts ...Option) *Server {
	s := &Server{
		endpoints: DefaultEndpoints,
		handlers:  make(map[string]http.HandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registers h for requests to path.
func (s *Server) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = h
}

// HandleJSON registers a handler that answers requests to path with status
// and v encoded as JSON.
func (s *Server) HandleJSON(path string, status int, v any) {
	s.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

// Requests returns the requests received so far, discovery included.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the requests received for path.
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	h := s.handlers[r.URL.Path]
	endpoints := s.endpoints
	s.mu.Unlock()

	if r.URL.Path == "/" {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"providerAddress":  Address,
			"software":         "Provider",
			"version":          "1.0.0",
			"serviceEndpoints": endpoints,
		})
		return
	}
	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}
