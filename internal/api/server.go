// Package api provides the Lectern resolve service: a REST endpoint for
// transcript producers and a WebSocket feed for display clients.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Lectern/core/passage"
	"github.com/FocuswithJustin/Lectern/internal/history"
	"github.com/FocuswithJustin/Lectern/internal/logging"
)

// Server ties the resolver sessions, history store and WebSocket hub
// together behind the HTTP surface.
type Server struct {
	cfg      Config
	sessions *sessionRegistry
	hub      *Hub
	history  *history.Store
	upgrader websocket.Upgrader
}

// NewServer builds a server from the configuration. The history store is
// opened when a path is configured; without one, history endpoints report
// not-found and resolutions are simply not recorded.
func NewServer(cfg Config) (*Server, error) {
	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		sessions: newSessionRegistry(),
		hub:      NewHub(),
	}
	go s.hub.Run()
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		s.history = store
	}
	return s, nil
}

// Handler builds the full middleware chain around the API routes.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.setupRoutes()
	handler = AuthMiddleware(s.cfg.Auth, handler)
	if s.cfg.RateLimitRequests > 0 {
		burst := s.cfg.RateLimitBurst
		if burst == 0 {
			burst = 10
		}
		limiter := NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: s.cfg.RateLimitRequests,
			BurstSize:         burst,
		})
		handler = limiter.Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", s.cfg.RateLimitRequests,
			"burst_size", burst)
	}
	handler = logging.CombinedMiddleware(handler)
	return s.corsMiddleware(handler)
}

// Start serves HTTP until the listener fails.
func (s *Server) Start() error {
	if s.cfg.Auth.Enabled {
		logging.SecurityEvent("authentication_configured", "api", "enabled", true)
	} else {
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", false,
			"note", "all requests allowed")
	}
	logging.ServerStartup("resolve_api", "http", s.cfg.Port,
		"websocket_protocol", "ws",
		"history", s.cfg.HistoryPath)

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	err := http.ListenAndServe(addr, s.Handler())
	return fmt.Errorf("server stopped: %w", err)
}

// Close releases the history store.
func (s *Server) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

// recordHistory writes a resolution to the history store when one is
// configured. Failures are logged, never surfaced; history is best-effort.
func (s *Server) recordHistory(ctx context.Context, sessionID, input string, p passage.Passage) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, sessionID, input, p); err != nil {
		logging.Error("history record failed", "error", err, "session_id", sessionID)
	}
}

// checkOrigin applies the configured CORS origins to WebSocket upgrades.
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// corsMiddleware mirrors the origin policy on the HTTP endpoints.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowedOrigin := "*"
		if len(s.cfg.AllowedOrigins) > 0 {
			allowed := false
			for _, candidate := range s.cfg.AllowedOrigins {
				if origin == candidate {
					allowed = true
					allowedOrigin = origin
					break
				}
			}
			if !allowed {
				// No CORS headers; the browser blocks the response.
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if allowedOrigin != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
