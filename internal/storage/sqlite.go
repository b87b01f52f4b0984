// Package storage provides SQLite-based persistence for run records, the
// credit wallet, and the installed loadout.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrInsufficientCredits is returned by SpendCredits when the wallet cannot
// cover the amount. The balance is left untouched.
var ErrInsufficientCredits = errors.New("storage: insufficient credits")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord represents one finished run.
type RunRecord struct {
	ID             int64
	Seed           uint32
	Danger         string
	Status         string // "won" or "lost"
	Reason         string // empty on wins
	DeliveredValue int
	DeliveredUnits int
	RareDelivered  int
	Duration       int // seconds
	CreatedAt      time.Time
}

// RunStats aggregates the whole run history.
type RunStats struct {
	Runs          int
	Wins          int
	TotalValue    int64
	BestValue     int
	RareDelivered int
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
			seed INTEGER NOT NULL,
			danger TEXT NOT NULL,
			status TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			delivered_value INTEGER NOT NULL DEFAULT 0,
			delivered_units INTEGER NOT NULL DEFAULT 0,
			rare_delivered INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_value ON runs(delivered_value DESC);

		CREATE TABLE IF NOT EXISTS wallet (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			credits INTEGER NOT NULL DEFAULT 0
		);
		INSERT OR IGNORE INTO wallet (id, credits) VALUES (1, 0);

		CREATE TABLE IF NOT EXISTS loadout (
			upgrade_id TEXT PRIMARY KEY,
			level INTEGER NOT NULL
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

// RecordRun inserts a finished run into the history.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, danger, status, reason, delivered_value, delivered_units, rare_delivered, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(r.Seed),
		r.Danger,
		r.Status,
		r.Reason,
		r.DeliveredValue,
		r.DeliveredUnits,
		r.RareDelivered,
		r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent N runs, newest first. Insertion
// order breaks ties within the same timestamp second.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, danger, status, reason, delivered_value, delivered_units, rare_delivered, duration_secs, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var seed int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&seed,
			&r.Danger,
			&r.Status,
			&r.Reason,
			&r.DeliveredValue,
			&r.DeliveredUnits,
			&r.RareDelivered,
			&r.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Seed = uint32(seed)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats aggregates the run history. Returns zeroes when no runs exist.
func (s *Store) Stats() (RunStats, error) {
	var stats RunStats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(status = 'won'), 0),
		        COALESCE(SUM(delivered_value), 0),
		        COALESCE(MAX(delivered_value), 0),
		        COALESCE(SUM(rare_delivered), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Wins, &stats.TotalValue, &stats.BestValue, &stats.RareDelivered)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	return stats, nil
}

// Credits returns the wallet balance.
func (s *Store) Credits() (int, error) {
	var credits int
	err := s.db.QueryRow("SELECT credits FROM wallet WHERE id = 1").Scan(&credits)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query wallet: %w", err)
	}
	return credits, nil
}

// AddCredits deposits the amount and returns the new balance.
func (s *Store) AddCredits(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("storage: cannot deposit negative amount %d", amount)
	}
	_, err := s.db.Exec("UPDATE wallet SET credits = credits + ? WHERE id = 1", amount)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add credits: %w", err)
	}
	return s.Credits()
}

// SpendCredits withdraws the amount if the balance covers it.
// Returns ErrInsufficientCredits otherwise, leaving the balance alone.
func (s *Store) SpendCredits(amount int) error {
	if amount < 0 {
		return fmt.Errorf("storage: cannot spend negative amount %d", amount)
	}
	result, err := s.db.Exec(
		"UPDATE wallet SET credits = credits - ? WHERE id = 1 AND credits >= ?",
		amount, amount,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot spend credits: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot check spend result: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

// Loadout retrieves the installed upgrade levels keyed by upgrade slug.
// Slugs are opaque here; the upgrades package owns their meaning.
func (s *Store) Loadout() (map[string]int, error) {
	rows, err := s.db.Query("SELECT upgrade_id, level FROM loadout")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query loadout: %w", err)
	}
	defer rows.Close()

	loadout := make(map[string]int)
	for rows.Next() {
		var slug string
		var level int
		if err := rows.Scan(&slug, &level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan loadout row: %w", err)
		}
		loadout[slug] = level
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return loadout, nil
}

// SetUpgradeLevel stores the level for one upgrade slug.
// Level zero or below removes the row.
func (s *Store) SetUpgradeLevel(slug string, level int) error {
	if level <= 0 {
		if _, err := s.db.Exec("DELETE FROM loadout WHERE upgrade_id = ?", slug); err != nil {
			return fmt.Errorf("storage: cannot clear upgrade %s: %w", slug, err)
		}
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO loadout (upgrade_id, level) VALUES (?, ?)
		 ON CONFLICT(upgrade_id) DO UPDATE SET level = excluded.level`,
		slug, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set upgrade %s: %w", slug, err)
	}
	return nil
}
