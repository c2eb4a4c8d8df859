// Package persistence provides SQLite-based session storage. A session
// is (seed, dimensions, config) plus the observer position and the set
// of discovered location indices — enough to rebuild the identical
// world and replay discovery state.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/island-wanderer/internal/locations"
	"github.com/talgya/island-wanderer/internal/world"
)

// DB wraps a SQLite connection for session persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		observer_x INTEGER NOT NULL,
		observer_y INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS discoveries (
		session_id TEXT NOT NULL,
		location_index INTEGER NOT NULL,
		PRIMARY KEY (session_id, location_index)
	);

	CREATE INDEX IF NOT EXISTS idx_discoveries_session ON discoveries(session_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Session is a persisted exploration session.
type Session struct {
	ID        string          `db:"id"`
	Seed      int64           `db:"seed"`
	Width     int             `db:"width"`
	Height    int             `db:"height"`
	Config    world.GenConfig `db:"-"`
	ObserverX int             `db:"observer_x"`
	ObserverY int             `db:"observer_y"`
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// SaveSession writes the session row and its discovered indices in one
// transaction (full replace of the discovery set).
func (db *DB) SaveSession(s Session, locs []*locations.Location) error {
	cfgJSON, err := json.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT INTO sessions
		(id, seed, width, height, config_json, observer_x, observer_y, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			observer_x = excluded.observer_x,
			observer_y = excluded.observer_y,
			updated_at = excluded.updated_at`,
		s.ID, s.Seed, s.Width, s.Height, string(cfgJSON),
		s.ObserverX, s.ObserverY, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM discoveries WHERE session_id = ?", s.ID); err != nil {
		return err
	}
	for i, loc := range locs {
		if !loc.Discovered {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO discoveries (session_id, location_index) VALUES (?, ?)",
			s.ID, i,
		)
		if err != nil {
			return fmt.Errorf("insert discovery %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("session saved", "id", s.ID, "observer_x", s.ObserverX, "observer_y", s.ObserverY)
	return nil
}

// LoadSession reads a session row. The caller regenerates the world
// from the returned config and applies discoveries via ApplyDiscoveries.
func (db *DB) LoadSession(id string) (Session, error) {
	var row struct {
		ID         string `db:"id"`
		Seed       int64  `db:"seed"`
		Width      int    `db:"width"`
		Height     int    `db:"height"`
		ConfigJSON string `db:"config_json"`
		ObserverX  int    `db:"observer_x"`
		ObserverY  int    `db:"observer_y"`
	}
	err := db.conn.Get(&row, `SELECT id, seed, width, height, config_json, observer_x, observer_y
		FROM sessions WHERE id = ?`, id)
	if err != nil {
		return Session{}, fmt.Errorf("load session %s: %w", id, err)
	}

	var cfg world.GenConfig
	if err := json.Unmarshal([]byte(row.ConfigJSON), &cfg); err != nil {
		return Session{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return Session{
		ID:        row.ID,
		Seed:      row.Seed,
		Width:     row.Width,
		Height:    row.Height,
		Config:    cfg,
		ObserverX: row.ObserverX,
		ObserverY: row.ObserverY,
	}, nil
}

// LatestSessionID returns the most recently updated session id, or
// empty string if none exist.
func (db *DB) LatestSessionID() (string, error) {
	var id string
	err := db.conn.Get(&id, "SELECT id FROM sessions ORDER BY updated_at DESC LIMIT 1")
	if err != nil {
		return "", err
	}
	return id, nil
}

// DiscoveredIndices returns the discovered location indices for a
// session, ascending.
func (db *DB) DiscoveredIndices(sessionID string) ([]int, error) {
	var indices []int
	err := db.conn.Select(&indices,
		"SELECT location_index FROM discoveries WHERE session_id = ? ORDER BY location_index",
		sessionID,
	)
	return indices, err
}

// ApplyDiscoveries re-flags locations from persisted indices. Indices
// outside the regenerated set are skipped with a warning; that only
// happens if the stored config no longer matches the generator.
func ApplyDiscoveries(locs []*locations.Location, indices []int) {
	for _, i := range indices {
		if i < 0 || i >= len(locs) {
			slog.Warn("persisted discovery index out of range", "index", i, "locations", len(locs))
			continue
		}
		locs[i].Discover()
	}
}
