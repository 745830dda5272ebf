// Package storage provides SQLite-based persistence for sandbox run history
// and named world snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry represents one finished sandbox session.
type RunEntry struct {
	ID         int64
	SceneID    string
	Seed       int64
	Ticks      int64
	Population int // Non-empty cells when the run ended
	Painted    int // Cells written by the brush
	CreatedAt  time.Time
}

// Snapshot is a named copy of a world, stored as glyph rows.
// Transient element state (fire life, settled solids) is not kept.
type Snapshot struct {
	ID        int64
	Name      string
	SceneID   string
	Width     int
	Height    int
	Tick      int64
	Layout    string // Glyph rows joined by newlines
	CreatedAt time.Time
}

// Rows splits the layout into glyph rows.
func (s *Snapshot) Rows() []string {
	if s.Layout == "" {
		return nil
	}
	return strings.Split(s.Layout, "\n")
}

// NewSnapshot builds a snapshot from glyph rows.
func NewSnapshot(name, sceneID string, rows []string, tick int64) Snapshot {
	width := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > width {
			width = n
		}
	}
	return Snapshot{
		Name:    name,
		SceneID: sceneID,
		Width:   width,
		Height:  len(rows),
		Tick:    tick,
		Layout:  strings.Join(rows, "\n"),
	}
}

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.sandfall/sandfall.db"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			population INTEGER NOT NULL DEFAULT 0,
			painted INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);

		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			scene_id TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			tick INTEGER NOT NULL DEFAULT 0,
			layout TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (scene_id, seed, ticks, population, painted) VALUES (?, ?, ?, ?, ?)",
		run.SceneID, run.Seed, run.Ticks, run.Population, run.Painted,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest N runs. An empty sceneID means every scene.
// Results are ordered newest first.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, seed, ticks, population, painted, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SceneID, &e.Seed, &e.Ticks, &e.Population, &e.Painted, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes the run history of a scene, or of every scene when
// sceneID is empty.
func (s *Store) ClearRuns(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR scene_id = ?", sceneID, sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID       string
	Runs          int
	TotalTicks    int64
	LongestRun    int64
	MaxPopulation int
	AvgPopulation float64
	LastPlayed    time.Time
}

// GetSceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetSceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	// Get count, totals and extremes
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(MAX(ticks), 0),
		        COALESCE(MAX(population), 0), COALESCE(AVG(population), 0)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.TotalTicks, &stats.LongestRun, &stats.MaxPopulation, &stats.AvgPopulation)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scene_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		sceneID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllSceneStats retrieves statistics for every scene that has been run.
func (s *Store) GetAllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(ticks), MAX(ticks), MAX(population), AVG(population), MAX(created_at)
		 FROM runs
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastPlayed any
		if err := rows.Scan(&st.SceneID, &st.Runs, &st.TotalTicks, &st.LongestRun, &st.MaxPopulation, &st.AvgPopulation, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveSnapshot stores a snapshot, replacing any existing one with the same
// name. Returns the ID of the stored record.
func (s *Store) SaveSnapshot(snap Snapshot) (int64, error) {
	if snap.Name == "" {
		return 0, fmt.Errorf("storage: snapshot needs a name")
	}

	_, err := s.db.Exec(
		`INSERT INTO snapshots (name, scene_id, width, height, tick, layout)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   scene_id = excluded.scene_id,
		   width = excluded.width,
		   height = excluded.height,
		   tick = excluded.tick,
		   layout = excluded.layout,
		   created_at = CURRENT_TIMESTAMP`,
		snap.Name, snap.SceneID, snap.Width, snap.Height, snap.Tick, snap.Layout,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	// LastInsertId is unreliable after an upsert that updated.
	var id int64
	if err := s.db.QueryRow("SELECT id FROM snapshots WHERE name = ?", snap.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get snapshot ID: %w", err)
	}
	return id, nil
}

// LoadSnapshot retrieves a snapshot by name.
// Returns nil without error if it does not exist.
func (s *Store) LoadSnapshot(name string) (*Snapshot, error) {
	var snap Snapshot
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, name, scene_id, width, height, tick, layout, created_at
		 FROM snapshots
		 WHERE name = ?`,
		name,
	).Scan(&snap.ID, &snap.Name, &snap.SceneID, &snap.Width, &snap.Height, &snap.Tick, &snap.Layout, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	snap.CreatedAt = parseTime(createdAt)
	return &snap, nil
}

// ListSnapshots returns every snapshot without its layout, newest first.
func (s *Store) ListSnapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, name, scene_id, width, height, tick, created_at
		 FROM snapshots
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt any
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.SceneID, &snap.Width, &snap.Height, &snap.Tick, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		snap.CreatedAt = parseTime(createdAt)
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snaps, nil
}

// DeleteSnapshot removes a snapshot by name and reports whether it existed.
func (s *Store) DeleteSnapshot(name string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
