// Package api provides a read-only HTTP view of the generated island
// for companion map viewers. GET only; the world never mutates through
// this surface.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/talgya/island-wanderer/internal/locations"
	"github.com/talgya/island-wanderer/internal/world"
)

// LocationView is an immutable copy of a discovered location, taken at
// publication time so handlers never read the live, mutable set.
type LocationView struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server serves the island state over HTTP. The island grids are
// immutable after generation; everything mutable arrives as a snapshot
// via Publish and is guarded by the mutex.
type Server struct {
	Island *world.Island
	Port   int

	mu         sync.RWMutex
	observerX  int
	observerY  int
	total      int
	discovered []LocationView
}

// Publish replaces the server's snapshot: observer position, total
// location count, and copies of the discovered locations. The
// exploration loop calls this after every step; handlers only ever
// see the copies.
func (s *Server) Publish(x, y, totalLocations int, discovered []*locations.Location) {
	views := make([]LocationView, 0, len(discovered))
	for _, loc := range discovered {
		views = append(views, LocationView{
			X:           loc.X,
			Y:           loc.Y,
			Type:        loc.Type.String(),
			Name:        loc.Name,
			Description: loc.Description,
		})
	}

	s.mu.Lock()
	s.observerX, s.observerY = x, y
	s.total = totalLocations
	s.discovered = views
	s.mu.Unlock()
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/locations", s.handleLocations)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ox, oy := s.observerX, s.observerY
	total := s.total
	found := len(s.discovered)
	s.mu.RUnlock()

	writeJSON(w, map[string]any{
		"seed":       s.Island.Config().Seed,
		"width":      s.Island.Width(),
		"height":     s.Island.Height(),
		"observer":   map[string]int{"x": ox, "y": oy},
		"locations":  total,
		"discovered": found,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	width := s.Island.Width()
	height := s.Island.Height()

	elevation := make([][]float64, height)
	biomes := make([][]string, height)
	for y := 0; y < height; y++ {
		elevation[y] = make([]float64, width)
		biomes[y] = make([]string, width)
		for x := 0; x < width; x++ {
			elevation[y][x] = s.Island.ElevationAt(x, y)
			biomes[y][x] = s.Island.BiomeAt(x, y).String()
		}
	}

	writeJSON(w, map[string]any{
		"width":     width,
		"height":    height,
		"elevation": elevation,
		"biomes":    biomes,
	})
}

// handleLocations lists discovered locations only — the map viewer
// must not spoil what the observer has not found.
func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := s.discovered
	s.mu.RUnlock()

	writeJSON(w, map[string]any{"locations": out})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
