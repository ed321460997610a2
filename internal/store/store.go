// Package store persists coaching state in SQLite: mastery records, the
// attempt ledger, gate verifications, and generated plans. The schema is
// small and managed with plain SQL.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// MasteryRepo returns a MasteryRepo backed by this store.
func (s *Store) MasteryRepo() MasteryRepo {
	return &masteryRepo{db: s.db}
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{db: s.db}
}

// GateRepo returns a GateRepo backed by this store.
func (s *Store) GateRepo() GateRepo {
	return &gateRepo{db: s.db}
}

// PlanRepo returns a PlanRepo backed by this store.
func (s *Store) PlanRepo() PlanRepo {
	return &planRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS mastery_records (
			user_id           TEXT NOT NULL,
			skill_id          TEXT NOT NULL,
			p_mastery         REAL NOT NULL,
			stability         REAL NOT NULL,
			last_practiced_at INTEGER NOT NULL DEFAULT 0,
			next_review_date  INTEGER NOT NULL DEFAULT 0,
			reps_count        INTEGER NOT NULL DEFAULT 0,
			is_verified       INTEGER NOT NULL DEFAULT 0,
			verified_at       INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, skill_id)
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			item_id         TEXT NOT NULL,
			skills_json     TEXT NOT NULL,
			format          TEXT NOT NULL,
			mode            TEXT NOT NULL,
			score_norm      REAL NOT NULL,
			difficulty      INTEGER NOT NULL,
			time_taken_sec  INTEGER NOT NULL DEFAULT 0,
			error_tags_json TEXT NOT NULL DEFAULT '[]',
			submitted_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_time
			ON attempts (user_id, submitted_at DESC)`,
		`CREATE TABLE IF NOT EXISTS verifications (
			user_id            TEXT NOT NULL,
			skill_id           TEXT NOT NULL,
			p_mastery          REAL NOT NULL,
			timed_pass_count   INTEGER NOT NULL,
			hours_between      REAL NOT NULL,
			error_tags_cleared INTEGER NOT NULL DEFAULT 1,
			verified_at        INTEGER NOT NULL,
			revoked_at         INTEGER NOT NULL DEFAULT 0,
			revoked_reason     TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (user_id, skill_id)
		)`,
		`CREATE TABLE IF NOT EXISTS plans (
			user_id       TEXT NOT NULL,
			plan_date     TEXT NOT NULL,
			phase         TEXT NOT NULL,
			total_minutes INTEGER NOT NULL,
			tasks_json    TEXT NOT NULL,
			PRIMARY KEY (user_id, plan_date)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. EXAMCOACH_DB environment variable
// 2. $XDG_DATA_HOME/examcoach/examcoach.db
// 3. ~/.local/share/examcoach/examcoach.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("EXAMCOACH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "examcoach", "examcoach.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
