// Package storage provides SQLite-based persistence for puzzle runs and solves.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run records one picture being cut into a puzzle.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	Source    string // Path of the source picture
	GridSize  int
	Seed      int64
	Placement string // Placement document (YAML)
	CreatedAt time.Time
}

// Solve records a finished interactive game.
type Solve struct {
	ID           int64
	RunID        string
	GridSize     int // Filled from the run when reading
	Player       string
	Moves        int
	Rotations    int
	DurationSecs int
	CreatedAt    time.Time
}

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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

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
			source TEXT NOT NULL,
			grid_size INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			placement TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			player TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			rotations INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_run ON solves(run_id);
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

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (id, source, grid_size, seed, placement) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Source, run.GridSize, run.Seed, run.Placement,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// RunByID retrieves a run. Returns nil without error if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	var run Run
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, source, grid_size, seed, placement, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Source, &run.GridSize, &run.Seed, &run.Placement, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, source, grid_size, seed, placement, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt any
		if err := rows.Scan(&run.ID, &run.Source, &run.GridSize, &run.Seed, &run.Placement, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		run.CreatedAt = parseTime(createdAt)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// SaveSolve records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveSolve(solve Solve) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO solves (run_id, player, moves, rotations, duration_secs)
		 VALUES (?, ?, ?, ?, ?)`,
		solve.RunID, solve.Player, solve.Moves, solve.Rotations, solve.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestSolves retrieves the best solves for a grid size: fewest moves first,
// then fastest. gridSize 0 includes every size.
func (s *Store) BestSolves(gridSize, limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.run_id, r.grid_size, s.player, s.moves, s.rotations, s.duration_secs, s.created_at
		 FROM solves s JOIN runs r ON r.id = s.run_id
		 WHERE ? = 0 OR r.grid_size = ?
		 ORDER BY s.moves ASC, s.duration_secs ASC, s.id ASC
		 LIMIT ?`,
		gridSize, gridSize, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		var sv Solve
		var createdAt any
		if err := rows.Scan(&sv.ID, &sv.RunID, &sv.GridSize, &sv.Player, &sv.Moves,
			&sv.Rotations, &sv.DurationSecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sv.CreatedAt = parseTime(createdAt)
		solves = append(solves, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return solves, nil
}

// Stats contains aggregated history.
type Stats struct {
	Runs      int
	Solves    int
	BestMoves map[int]int // Fewest moves per grid size
}

// GetStats aggregates the whole history.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{BestMoves: make(map[int]int)}

	err := s.db.QueryRow(
		`SELECT (SELECT COUNT(*) FROM runs), (SELECT COUNT(*) FROM solves)`,
	).Scan(&stats.Runs, &stats.Solves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count history: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT r.grid_size, MIN(s.moves)
		 FROM solves s JOIN runs r ON r.id = s.run_id
		 GROUP BY r.grid_size`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get best moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var size, moves int
		if err := rows.Scan(&size, &moves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.BestMoves[size] = moves
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
