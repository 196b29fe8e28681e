// Package api provides the HTTP API for observing a running simulation.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/ascension/internal/engine"
	"github.com/talgya/ascension/internal/persistence"
)

// Server serves simulation state over HTTP.
type Server struct {
	Sim       *engine.Simulation
	Loop      *engine.Loop
	Chronicle *persistence.Chronicle
	Port      int
	AdminKey  string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Chronicle queries hit SQLite; keep scrapers from hammering it.
	eventLimiter := NewRateLimiter(600, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check in on the run).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/lineages", s.handleLineages)
	mux.HandleFunc("/api/v1/agents", s.handleAgents)
	mux.HandleFunc("/api/v1/godai", s.handleGodai)
	mux.HandleFunc("/api/v1/events", RateLimitMiddleware(eventLimiter, s.handleEvents))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/pause", s.adminOnly(s.handlePause))
	mux.HandleFunc("/api/v1/resume", s.adminOnly(s.handleResume))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through (for endpoints that support both GET and POST).
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no ASCENSION_ADMIN_KEY set)", http.StatusForbidden)
				return
			}

			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()

	status := map[string]any{
		"name":        "Ascension",
		"cycle":       snap.Cycle,
		"state":       snap.State,
		"population":  snap.Population,
		"speed":       s.Loop.Speed,
		"running":     s.Loop.Running,
		"stats":       snap.Stats,
		"godai":       snap.Godai,
		"monoculture": snap.Monoculture,
	}
	if snap.OverReason != "" {
		status["verdict"] = snap.OverReason
	}
	writeJSON(w, status)
}

func (s *Server) handleLineages(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	writeJSON(w, map[string]any{
		"total":    snap.Population,
		"lineages": snap.Lineages,
	})
}

// handleAgents returns a capped sample of live agents. Populations run
// into the millions; the full roster is never serialized.
func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	writeJSON(w, s.Sim.SampleAgents(limit))
}

func (s *Server) handleGodai(w http.ResponseWriter, r *http.Request) {
	snap := s.Sim.Snapshot()
	writeJSON(w, snap.Godai)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	var (
		events []engine.Event
		err    error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		events, err = s.Chronicle.EventsByCategory(category, limit)
	} else {
		events, err = s.Chronicle.RecentEvents(limit)
	}
	if err != nil {
		slog.Error("event query failed", "error", err)
		http.Error(w, "event query failed", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []engine.Event{}
	}
	writeJSON(w, events)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Loop.Speed = req.Speed
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Loop.Speed})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.Sim.SetPaused(true)
		slog.Info("simulation paused", "cycle", s.Sim.CycleCount())
	}
	writeJSON(w, map[string]string{"state": s.Sim.Snapshot().State})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.Sim.SetPaused(false)
		slog.Info("simulation resumed", "cycle", s.Sim.CycleCount())
	}
	writeJSON(w, map[string]string{"state": s.Sim.Snapshot().State})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
