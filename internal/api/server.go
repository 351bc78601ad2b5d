// Package api exposes a minimal HTTP surface for the pipeline service:
// a liveness endpoint and a machine-friendly listing of the registered
// table transforms.
//
// Routes:
//
//	GET /           → liveness JSON
//	GET /api/tables → registered transform table names, JSON array
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"dataforge/internal/transform"
)

// Config controls server startup.
type Config struct {
	Addr string
}

// Server wraps http.Server routing for convenience.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// NewServer constructs a Server with routes installed.
func NewServer(cfg Config) *Server {
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.routes()
	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("api: listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

// Handler returns the route multiplexer, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/api/tables", s.handleTables)
}

// handleRoot is the liveness check.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{"status": "ok", "message": "dataforge"})
}

// handleTables lists the table names with a registered transform.
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, transform.RegisteredNames())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}
