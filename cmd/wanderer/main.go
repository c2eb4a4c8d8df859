// Command wanderer generates an island and runs a turn-based
// exploration loop over stdin: walk the island, discover its points of
// interest, and interact with them. Sessions persist to SQLite so the
// same island can be resumed from its seed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/island-wanderer/internal/api"
	"github.com/talgya/island-wanderer/internal/discovery"
	"github.com/talgya/island-wanderer/internal/entropy"
	"github.com/talgya/island-wanderer/internal/locations"
	"github.com/talgya/island-wanderer/internal/persistence"
	"github.com/talgya/island-wanderer/internal/render"
	"github.com/talgya/island-wanderer/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed    = flag.Int64("seed", 0, "world seed (0 = random)")
		width   = flag.Int("width", 80, "grid width in cells")
		height  = flag.Int("height", 40, "grid height in cells")
		dbPath  = flag.String("db", "data/wanderer.db", "session database path")
		resume  = flag.String("resume", "", "session id to resume (or 'latest')")
		apiPort = flag.Int("api", 0, "HTTP API port (0 = disabled)")
	)
	flag.Parse()

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("failed to create data directory", "path", filepath.Dir(*dbPath), "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Session / config ─────────────────────────────────────────────
	cfg := world.DefaultGenConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed

	sessionID := ""
	var resumeIndices []int
	haveObserver := false
	observerX, observerY := 0, 0

	if *resume != "" {
		id := *resume
		if id == "latest" {
			id, err = db.LatestSessionID()
			if err != nil {
				slog.Error("no session to resume", "error", err)
				os.Exit(1)
			}
		}
		session, err := db.LoadSession(id)
		if err != nil {
			slog.Error("failed to load session", "error", err)
			os.Exit(1)
		}
		cfg = session.Config
		cfg.Seed = session.Seed
		cfg.Width = session.Width
		cfg.Height = session.Height
		sessionID = session.ID
		observerX, observerY = session.ObserverX, session.ObserverY
		haveObserver = true

		resumeIndices, err = db.DiscoveredIndices(sessionID)
		if err != nil {
			slog.Error("failed to load discoveries", "error", err)
			os.Exit(1)
		}
		slog.Info("session resumed", "id", sessionID, "seed", cfg.Seed, "discovered", len(resumeIndices))
	}

	if cfg.Seed == 0 {
		src := entropy.NewSeedSource(os.Getenv("RANDOM_ORG_KEY"))
		cfg.Seed = src.Seed()
		slog.Info("seed drawn", "seed", cfg.Seed)
	}
	if sessionID == "" {
		sessionID = persistence.NewSessionID()
	}

	// ── World generation (one shot, before exploration) ──────────────
	isl, err := world.Generate(cfg)
	if err != nil {
		slog.Error("world generation failed", "error", err)
		os.Exit(1)
	}

	counts := isl.BiomeCounts()
	land := 0
	for b, c := range counts {
		if !b.IsWater() {
			land += c
		}
		slog.Info("biome", "type", b.String(), "count", humanize.Comma(int64(c)))
	}

	locs, report, err := locations.Place(isl, locations.DefaultPlaceConfig())
	if err != nil {
		slog.Error("location placement failed", "error", err)
		os.Exit(1)
	}
	persistence.ApplyDiscoveries(locs, resumeIndices)
	slog.Info("locations placed",
		"placed", report.Placed,
		"requested", report.Requested,
		"effective_spacing", report.EffectiveSpacing,
	)

	tracker := discovery.NewTracker(locs)
	if !haveObserver {
		observerX, observerY = isl.SpawnPoint()
	}

	// ── Optional HTTP viewer ──────────────────────────────────────────
	// The viewer only ever sees snapshots: the loop publishes after
	// every step, so the server goroutine never reads live flags.
	var apiServer *api.Server
	publish := func() {
		if apiServer != nil {
			apiServer.Publish(observerX, observerY, len(locs), tracker.Discovered())
		}
	}
	if *apiPort > 0 {
		apiServer = &api.Server{Island: isl, Port: *apiPort}
		publish()
		apiServer.Start()
	}

	save := func() {
		err := db.SaveSession(persistence.Session{
			ID:        sessionID,
			Seed:      cfg.Seed,
			Width:     cfg.Width,
			Height:    cfg.Height,
			Config:    cfg,
			ObserverX: observerX,
			ObserverY: observerY,
		}, locs)
		if err != nil {
			slog.Error("save failed", "error", err)
		}
	}
	save()

	fmt.Printf("\nAn island of %s land cells rises from the sea (seed %d).\n",
		humanize.Comma(int64(land)), cfg.Seed)
	fmt.Printf("Somewhere out there: %d places worth finding.\n\n", len(locs))
	fmt.Println("Move: w/a/s/d or h/j/k/l   Interact: e   Map: m   Quit: q")

	r := render.New()
	fmt.Print(r.Frame(isl, locs, observerX, observerY))

	// ── Exploration loop: one discrete step per line of input ────────
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if cmd == "" {
			continue
		}

		switch cmd {
		case "q", "quit":
			save()
			fmt.Println("The island will remember you.")
			return

		case "m", "map":
			fmt.Print(r.Frame(isl, locs, observerX, observerY))

		case "e", "interact":
			result := tracker.TryInteract(observerX, observerY)
			fmt.Println(result.Message)
			if result.Detail != "" {
				fmt.Println("  " + result.Detail)
			}
			publish()
			save()

		case "w", "k", "a", "h", "s", "j", "d", "l":
			nx, ny := observerX, observerY
			switch cmd {
			case "w", "k":
				ny--
			case "s", "j":
				ny++
			case "a", "h":
				nx--
			case "d", "l":
				nx++
			}
			if !isl.Elevation.InBounds(nx, ny) {
				fmt.Println("The sea stretches endlessly that way.")
				continue
			}
			observerX, observerY = nx, ny

			fmt.Printf("You stand on %s (elevation %.2f).\n",
				strings.ToLower(isl.BiomeAt(observerX, observerY).String()),
				isl.ElevationAt(observerX, observerY))

			for _, found := range tracker.CheckDiscovery(observerX, observerY) {
				fmt.Printf("Discovered %s!\n  %s\n", found.Name, found.Description)
			}
			publish()
			save()

		default:
			fmt.Println("Move: w/a/s/d or h/j/k/l   Interact: e   Map: m   Quit: q")
		}
	}

	save()
}
