// Package storage provides SQLite-based persistence for headless
// simulation runs. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where run history lives unless --db says otherwise.
const DefaultPath = "~/.sparks/runs.db"

// Store manages the SQLite database connection for run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded simulation of an effect.
type Run struct {
	ID             string // uuid, assigned by SaveRun when empty
	Effect         string
	Seed           uint64
	Frames         int
	Step           float64 // ms per frame
	PeakParticles  int
	FinalParticles int
	Spawned        uint64
	Dropped        uint64
	Duration       time.Duration // wall-clock time the run took
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// in-memory databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

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
			id TEXT PRIMARY KEY,
			effect TEXT NOT NULL,
			seed INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			step_ms REAL NOT NULL,
			peak_particles INTEGER NOT NULL DEFAULT 0,
			final_particles INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			dropped INTEGER NOT NULL DEFAULT 0,
			duration_ns INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_effect ON runs(effect, created_at DESC);
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

// SaveRun records a run. An empty ID gets a fresh uuid and a zero
// CreatedAt gets the current time. Returns the stored run.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, effect, seed, frames, step_ms, peak_particles,
			final_particles, spawned, dropped, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Effect, int64(run.Seed), run.Frames, run.Step,
		run.PeakParticles, run.FinalParticles, int64(run.Spawned), int64(run.Dropped),
		int64(run.Duration), run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves the latest runs of the given effect, newest
// first. An empty effect matches every effect.
func (s *Store) RecentRuns(effect string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, effect, seed, frames, step_ms, peak_particles,
			final_particles, spawned, dropped, duration_ns, created_at
		 FROM runs
		 WHERE ? = '' OR effect = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		effect, effect, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                       Run
			seed, spawned, dropped  int64
			durationNs, createdAtMs int64
		)
		if err := rows.Scan(&r.ID, &r.Effect, &seed, &r.Frames, &r.Step, &r.PeakParticles,
			&r.FinalParticles, &spawned, &dropped, &durationNs, &createdAtMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Seed = uint64(seed)
		r.Spawned = uint64(spawned)
		r.Dropped = uint64(dropped)
		r.Duration = time.Duration(durationNs)
		r.CreatedAt = time.UnixMilli(createdAtMs)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// CountRuns returns how many runs are stored for effect ("" = all).
func (s *Store) CountRuns(effect string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE ? = '' OR effect = ?", effect, effect).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes every run of the given effect.
func (s *Store) ClearRuns(effect string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE effect = ?", effect)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
