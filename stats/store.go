package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Lifetime holds the counters kept across matches.
type Lifetime struct {
	GamesStarted int `yaml:"games_started"`
	Wins         int `yaml:"wins"`
	Losses       int `yaml:"losses"`
	PlayerMoves  int `yaml:"player_moves"`
	AIMoves      int `yaml:"ai_moves"`
	PlayerWords  int `yaml:"player_words"`
	AIWords      int `yaml:"ai_words"`
	TilesPlaced  int `yaml:"tiles_placed"`
	PointsScored int `yaml:"points_scored"`
	HighestMove  int `yaml:"highest_move"`
	TotalXP      int `yaml:"total_xp"`
}

// MoveRecord is one turn's contribution to the lifetime counters.
type MoveRecord struct {
	Human  bool
	Words  int
	Points int
	Tiles  int
}

const schema = `
CREATE TABLE IF NOT EXISTS lifetime (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	games_started INTEGER NOT NULL DEFAULT 0,
	wins          INTEGER NOT NULL DEFAULT 0,
	losses        INTEGER NOT NULL DEFAULT 0,
	player_moves  INTEGER NOT NULL DEFAULT 0,
	ai_moves      INTEGER NOT NULL DEFAULT 0,
	player_words  INTEGER NOT NULL DEFAULT 0,
	ai_words      INTEGER NOT NULL DEFAULT 0,
	tiles_placed  INTEGER NOT NULL DEFAULT 0,
	points_scored INTEGER NOT NULL DEFAULT 0,
	highest_move  INTEGER NOT NULL DEFAULT 0,
	total_xp      INTEGER NOT NULL DEFAULT 0
);
INSERT OR IGNORE INTO lifetime (id) VALUES (1);
`

// Store persists Lifetime in a single-row SQLite table.
type Store struct {
	db *sql.DB
}

// OpenStore creates the database file and its directory if needed. Use
// ":memory:" for a throwaway store.
func OpenStore(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps an in-memory database alive and
	// serializes our own writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 2000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-stats-store")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}

// exec retries while another process holds the database lock.
func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	return retry.Do(
		func() error {
			_, err := s.db.ExecContext(ctx, query, args...)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Uint("attempt", n).Err(err).Msg("stats-store-busy")
		}),
	)
}

func (s *Store) Lifetime(ctx context.Context) (Lifetime, error) {
	var l Lifetime
	err := s.db.QueryRowContext(ctx, `SELECT games_started, wins, losses,
		player_moves, ai_moves, player_words, ai_words, tiles_placed,
		points_scored, highest_move, total_xp FROM lifetime WHERE id = 1`).Scan(
		&l.GamesStarted, &l.Wins, &l.Losses, &l.PlayerMoves, &l.AIMoves,
		&l.PlayerWords, &l.AIWords, &l.TilesPlaced, &l.PointsScored,
		&l.HighestMove, &l.TotalXP)
	return l, err
}

func (s *Store) RecordGameStart(ctx context.Context) error {
	return s.exec(ctx, `UPDATE lifetime SET games_started = games_started + 1 WHERE id = 1`)
}

func (s *Store) RecordMove(ctx context.Context, m MoveRecord) error {
	moves, words := "ai_moves", "ai_words"
	if m.Human {
		moves, words = "player_moves", "player_words"
	}
	q := fmt.Sprintf(`UPDATE lifetime SET %[1]s = %[1]s + 1, %[2]s = %[2]s + ?,
		tiles_placed = tiles_placed + ?, points_scored = points_scored + ?,
		highest_move = MAX(highest_move, ?) WHERE id = 1`, moves, words)
	return s.exec(ctx, q, m.Words, m.Tiles, m.Points, m.Points)
}

func (s *Store) RecordResult(ctx context.Context, win bool) error {
	if win {
		return s.exec(ctx, `UPDATE lifetime SET wins = wins + 1 WHERE id = 1`)
	}
	return s.exec(ctx, `UPDATE lifetime SET losses = losses + 1 WHERE id = 1`)
}

// AddXP adds gain to the total and returns the new total.
func (s *Store) AddXP(ctx context.Context, gain int) (int, error) {
	if err := s.exec(ctx, `UPDATE lifetime SET total_xp = MAX(0, total_xp + ?) WHERE id = 1`, gain); err != nil {
		return 0, err
	}
	l, err := s.Lifetime(ctx)
	return l.TotalXP, err
}

func (s *Store) Progress(ctx context.Context) (LevelProgress, error) {
	l, err := s.Lifetime(ctx)
	if err != nil {
		return LevelProgress{}, err
	}
	return ComputeLevelProgress(l.TotalXP), nil
}

// Reset zeroes the counters. Experience is kept unless keepXP is false.
func (s *Store) Reset(ctx context.Context, keepXP bool) error {
	q := `UPDATE lifetime SET games_started = 0, wins = 0, losses = 0,
		player_moves = 0, ai_moves = 0, player_words = 0, ai_words = 0,
		tiles_placed = 0, points_scored = 0, highest_move = 0 WHERE id = 1`
	if err := s.exec(ctx, q); err != nil {
		return err
	}
	if keepXP {
		return nil
	}
	return s.exec(ctx, `UPDATE lifetime SET total_xp = 0 WHERE id = 1`)
}
