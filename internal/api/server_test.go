package api

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/talgya/island-wanderer/internal/discovery"
	"github.com/talgya/island-wanderer/internal/locations"
	"github.com/talgya/island-wanderer/internal/world"
)

func testServer(t *testing.T) (*Server, []*locations.Location, *discovery.Tracker) {
	t.Helper()
	cfg := world.DefaultGenConfig()
	cfg.Seed = 42
	cfg.Width = 20
	cfg.Height = 10
	isl, err := world.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	locs := []*locations.Location{
		{X: 3, Y: 3, Type: locations.TypeBeach, Name: "Shell Cove", Description: "A secluded cove with gentle waves."},
		{X: 9, Y: 5, Type: locations.TypeRuins, Name: "Ancient Agora", Description: "Weathered stone walls tell tales of the past."},
	}
	tr := discovery.NewTracker(locs)

	s := &Server{Island: isl}
	s.Publish(0, 0, len(locs), tr.Discovered())
	return s, locs, tr
}

func TestHandlersServeSnapshot(t *testing.T) {
	s, locs, tr := testServer(t)

	tr.CheckDiscovery(locs[0].X, locs[0].Y)
	s.Publish(locs[0].X, locs[0].Y, len(locs), tr.Discovered())

	rr := httptest.NewRecorder()
	s.handleStatus(rr, httptest.NewRequest("GET", "/api/v1/status", nil))
	var status struct {
		Seed       int64 `json:"seed"`
		Locations  int   `json:"locations"`
		Discovered int   `json:"discovered"`
		Observer   struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"observer"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Seed != 42 || status.Locations != 2 || status.Discovered != 1 {
		t.Fatalf("status = %+v", status)
	}
	if status.Observer.X != locs[0].X || status.Observer.Y != locs[0].Y {
		t.Fatalf("observer = %+v", status.Observer)
	}

	rr = httptest.NewRecorder()
	s.handleLocations(rr, httptest.NewRequest("GET", "/api/v1/locations", nil))
	var listing struct {
		Locations []LocationView `json:"locations"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode locations: %v", err)
	}
	if len(listing.Locations) != 1 || listing.Locations[0].Name != "Shell Cove" {
		t.Fatalf("locations = %+v", listing.Locations)
	}
}

// The exploration loop mutates discovered flags and publishes while
// the server goroutine answers requests. Handlers must only touch the
// published copies; the race detector enforces it here.
func TestHandlersConcurrentWithExploration(t *testing.T) {
	s, locs, tr := testServer(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// One logical thread of control for all mutation, as in the
		// real loop: discover, interact, publish.
		for i := 0; i < 500; i++ {
			x := locs[i%len(locs)].X
			y := locs[i%len(locs)].Y
			tr.CheckDiscovery(x, y)
			tr.TryInteract(x, y)
			s.Publish(x, y, len(locs), tr.Discovered())
		}
	}()

	for i := 0; i < 500; i++ {
		rr := httptest.NewRecorder()
		s.handleStatus(rr, httptest.NewRequest("GET", "/api/v1/status", nil))
		if rr.Code != 200 {
			t.Fatalf("status handler returned %d", rr.Code)
		}
		rr = httptest.NewRecorder()
		s.handleLocations(rr, httptest.NewRequest("GET", "/api/v1/locations", nil))
		if rr.Code != 200 {
			t.Fatalf("locations handler returned %d", rr.Code)
		}
	}
	wg.Wait()
}
