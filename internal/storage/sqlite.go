// Package storage provides SQLite-based persistence for level scores and
// unlock progress. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
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

// MaxHiscore caps the recorded throw count; the info panel shows at most
// three digits.
const MaxHiscore = 999

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// LevelScore is the accumulated record for one level.
type LevelScore struct {
	Level    int
	Attempts int
	Wins     int
	Hiscore  int // fewest throws over all wins; 0 until the first win
	FirstWin time.Time
	HelpUsed bool
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
		CREATE TABLE IF NOT EXISTS level_scores (
			level INTEGER PRIMARY KEY,
			attempts INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			hiscore INTEGER NOT NULL DEFAULT 0,
			first_win DATETIME,
			help_used INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			max_level INTEGER NOT NULL DEFAULT 1
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

func (s *Store) ensureRow(levelNum int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO level_scores (level) VALUES (?)",
		levelNum,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create score row: %w", err)
	}
	return nil
}

// RecordWin counts a solved level: one more attempt and win, the first-win
// date on the very first win, and a new hiscore when this run used fewer
// throws than any before.
func (s *Store) RecordWin(levelNum, throws int) error {
	if throws > MaxHiscore {
		throws = MaxHiscore
	}
	if err := s.ensureRow(levelNum); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`UPDATE level_scores SET
			attempts = attempts + 1,
			wins = wins + 1,
			first_win = COALESCE(first_win, CURRENT_TIMESTAMP),
			hiscore = CASE WHEN hiscore = 0 OR hiscore > ?1 THEN ?1 ELSE hiscore END
		 WHERE level = ?2`,
		throws, levelNum,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record win: %w", err)
	}
	return nil
}

// RecordFail counts a failed or abandoned attempt.
func (s *Store) RecordFail(levelNum int) error {
	if err := s.ensureRow(levelNum); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"UPDATE level_scores SET attempts = attempts + 1 WHERE level = ?",
		levelNum,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record fail: %w", err)
	}
	return nil
}

// RecordHelpUsed marks the level as solved with help. Once the player has
// won the level on their own the mark can no longer be set.
func (s *Store) RecordHelpUsed(levelNum int) error {
	if err := s.ensureRow(levelNum); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"UPDATE level_scores SET help_used = 1 WHERE level = ? AND wins = 0",
		levelNum,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record help: %w", err)
	}
	return nil
}

// Score retrieves the record for one level. A level never played returns a
// zero record rather than an error.
func (s *Store) Score(levelNum int) (LevelScore, error) {
	e := LevelScore{Level: levelNum}
	var firstWin any
	err := s.db.QueryRow(
		`SELECT attempts, wins, hiscore, first_win, help_used
		 FROM level_scores WHERE level = ?`,
		levelNum,
	).Scan(&e.Attempts, &e.Wins, &e.Hiscore, &firstWin, &e.HelpUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return e, nil
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot query score: %w", err)
	}
	e.FirstWin = parseTime(firstWin)
	return e, nil
}

// AllScores retrieves every recorded level ordered by level number.
func (s *Store) AllScores() ([]LevelScore, error) {
	rows, err := s.db.Query(
		`SELECT level, attempts, wins, hiscore, first_win, help_used
		 FROM level_scores ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []LevelScore
	for rows.Next() {
		var e LevelScore
		var firstWin any
		if err := rows.Scan(&e.Level, &e.Attempts, &e.Wins, &e.Hiscore, &firstWin, &e.HelpUsed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.FirstWin = parseTime(firstWin)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles the driver returning DATETIME columns as either
// time.Time or string, and NULL as nil.
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

// MaxLevel returns the highest unlocked level. A fresh database starts
// with level 1 unlocked (level 0 is the demo).
func (s *Store) MaxLevel() (int, error) {
	var maxLevel int
	err := s.db.QueryRow("SELECT max_level FROM progress WHERE id = 1").Scan(&maxLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return maxLevel, nil
}

// AdvanceMax raises the highest unlocked level. Values at or below the
// current maximum are ignored, so progress never regresses.
func (s *Store) AdvanceMax(levelNum int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (id, max_level) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET max_level = excluded.max_level
		 WHERE excluded.max_level > max_level`,
		levelNum,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot advance progress: %w", err)
	}
	return nil
}
