// Package server provides the HTTP front end: a health endpoint and a
// single generic /mcp endpoint that routes method names onto the shared
// tool registry.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shopify-mcp/internal/envelope"
	"shopify-mcp/internal/errs"
	"shopify-mcp/internal/registry"
)

// Config contains the server's collaborators and optional behavior knobs.
type Config struct {
	// Registry is the tool registry both endpoints read from.
	Registry *registry.Registry

	// Token, when set, requires "Authorization: Bearer <Token>" on /mcp.
	Token string

	// CacheTTL, when positive, enables response caching for read-only
	// tools. Zero disables caching.
	CacheTTL time.Duration
}

// Server holds the configured router, registry, and response cache.
type Server struct {
	cfg    Config
	router *chi.Mux
	cache  *Cache
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		cache:  NewCache(),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.With(s.auth).Post("/mcp", s.handleMCP)

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			writeJSON(w, http.StatusUnauthorized, envelope.Failure{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMCP interprets the generic request envelope and routes by method
// name. Every dispatch path is wrapped so failures become envelopes, never
// unhandled faults.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req mcpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope.Failure{Error: err.Error()})
		return
	}

	switch req.Method {
	case "tools/list":
		s.handleToolsList(w)
	case "tools/call":
		s.handleToolsCall(w, r, req.Params)
	default:
		writeJSON(w, http.StatusBadRequest, envelope.Failure{Error: "Unknown method"})
	}
}

func (s *Server) handleToolsList(w http.ResponseWriter) {
	tools := make([]toolListing, 0, s.cfg.Registry.Len())
	for _, t := range s.cfg.Registry.List() {
		tools = append(tools, toolListing{Name: t.Name, Description: t.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}

func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, params *mcpParams) {
	if params == nil || params.Name == "" {
		writeJSON(w, http.StatusBadRequest, envelope.Failure{Error: "Tool name is required"})
		return
	}

	// Absent, null, or non-object arguments are treated as empty.
	args, _ := params.Arguments.(map[string]any)

	cacheKey, cacheable := s.cacheKey(params.Name, args)
	if cacheable {
		if cached, ok := s.cache.Get(cacheKey); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := s.cfg.Registry.Dispatch(r.Context(), params.Name, args)
	if err != nil {
		writeJSON(w, statusFor(err), envelope.Error(err))
		return
	}

	body, err := envelope.Result(result)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope.Error(err))
		return
	}
	if cacheable {
		s.cache.Set(cacheKey, body, s.cfg.CacheTTL)
	}
	writeJSON(w, http.StatusOK, body)
}

// cacheKey returns the cache key for a call and whether the call is
// cacheable at all (caching enabled and the tool is read-only).
func (s *Server) cacheKey(name string, args map[string]any) (string, bool) {
	if s.cfg.CacheTTL <= 0 {
		return "", false
	}
	tool, ok := s.cfg.Registry.Get(name)
	if !ok || !tool.ReadOnly {
		return "", false
	}
	encoded, err := json.Marshal(args)
	if err != nil {
		return "", false
	}
	return name + ":" + string(encoded), true
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidation, errs.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
