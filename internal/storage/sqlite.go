// Package storage provides SQLite-based persistence for game summaries
// produced by soak runs and tables. Uses the pure-Go modernc.org/sqlite
// driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hexsettle/internal/multiplayer"
)

// Sources a game summary can come from.
const (
	SourceSoak  = "soak"
	SourceTable = "table"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is the summary of one finished or abandoned game.
type GameRecord struct {
	ID           int64
	MatchID      string
	Source       string
	Seed         int64
	Players      int
	Turns        int
	Actions      int
	Rejected     int
	Winner       int // -1 if nobody won
	WinnerPoints int
	Violations   int
	DurationMS   int64
	Reasons      map[string]int // rejection reason -> count
	CreatedAt    time.Time
}

// Finished reports whether the game produced a winner.
func (r GameRecord) Finished() bool {
	return r.Winner >= 0
}

// ReasonTotal is the number of rejections recorded for one reason code.
type ReasonTotal struct {
	Reason string
	Count  int
}

// SourceStats contains aggregated statistics for one source.
type SourceStats struct {
	Source     string
	Games      int
	Finished   int
	AvgTurns   float64
	Violations int
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL,
			players INTEGER NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			actions INTEGER NOT NULL DEFAULT 0,
			rejected INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT -1,
			winner_points INTEGER NOT NULL DEFAULT 0,
			violations INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_source ON games(source);

		CREATE TABLE IF NOT EXISTS game_reasons (
			game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			reason TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (game_id, reason)
		);
		CREATE INDEX IF NOT EXISTS idx_game_reasons_reason ON game_reasons(reason);
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

// SaveGame records a game summary and its rejection histogram.
// Returns the ID of the inserted record.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO games
		 (match_id, source, seed, players, turns, actions, rejected, winner, winner_points, violations, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Source,
		rec.Seed,
		rec.Players,
		rec.Turns,
		rec.Actions,
		rec.Rejected,
		rec.Winner,
		rec.WinnerPoints,
		rec.Violations,
		rec.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for reason, n := range rec.Reasons {
		if n <= 0 {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO game_reasons (game_id, reason, count) VALUES (?, ?, ?)",
			id, reason, n,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save reason %s: %w", reason, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return id, nil
}

const gameColumns = `id, match_id, source, seed, players, turns, actions, rejected,
	winner, winner_points, violations, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var rec GameRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Source,
		&rec.Seed,
		&rec.Players,
		&rec.Turns,
		&rec.Actions,
		&rec.Rejected,
		&rec.Winner,
		&rec.WinnerPoints,
		&rec.Violations,
		&rec.DurationMS,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
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

// GameByMatchID retrieves a game with its reasons. Returns nil if not found.
func (s *Store) GameByMatchID(matchID string) (*GameRecord, error) {
	rec, err := scanGame(s.db.QueryRow(
		"SELECT "+gameColumns+" FROM games WHERE match_id = ?",
		matchID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}

	rec.Reasons, err = s.reasonsFor(rec.ID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) reasonsFor(gameID int64) (map[string]int, error) {
	rows, err := s.db.Query("SELECT reason, count FROM game_reasons WHERE game_id = ?", gameID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reasons: %w", err)
	}
	defer rows.Close()

	reasons := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan reason: %w", err)
		}
		reasons[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return reasons, nil
}

// RecentGames retrieves the most recent games, optionally for one source.
// Reasons are not loaded; use GameByMatchID for the full record.
func (s *Store) RecentGames(source string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+gameColumns+` FROM games
		 WHERE ? = '' OR source = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		source, source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// ReasonTotals sums the rejection histogram over all games of source
// (all sources when empty), most frequent first.
func (s *Store) ReasonTotals(source string) ([]ReasonTotal, error) {
	rows, err := s.db.Query(
		`SELECT r.reason, SUM(r.count)
		 FROM game_reasons r JOIN games g ON g.id = r.game_id
		 WHERE ? = '' OR g.source = ?
		 GROUP BY r.reason`,
		source, source,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reason totals: %w", err)
	}
	defer rows.Close()

	var totals []ReasonTotal
	for rows.Next() {
		var t ReasonTotal
		if err := rows.Scan(&t.Reason, &t.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan reason total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		return totals[i].Reason < totals[j].Reason
	})
	return totals, nil
}

// Stats retrieves aggregated statistics per source.
func (s *Store) Stats() (map[string]*SourceStats, error) {
	rows, err := s.db.Query(
		`SELECT source, COUNT(*), SUM(CASE WHEN winner >= 0 THEN 1 ELSE 0 END),
		        AVG(turns), SUM(violations), MAX(created_at)
		 FROM games
		 GROUP BY source`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SourceStats)
	for rows.Next() {
		var st SourceStats
		var lastPlayed any
		if err := rows.Scan(&st.Source, &st.Games, &st.Finished, &st.AvgTurns, &st.Violations, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Source] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearGames deletes every game of source along with its reasons.
// Both deletes commit together, so no reason rows outlive their game.
func (s *Store) ClearGames(source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		"DELETE FROM game_reasons WHERE game_id IN (SELECT id FROM games WHERE source = ?)",
		source,
	); err != nil {
		return fmt.Errorf("storage: cannot clear reasons: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM games WHERE source = ?", source); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// SaveTableResult implements multiplayer.ResultSaver.
func (s *Store) SaveTableResult(result multiplayer.TableResult) error {
	rec := GameRecord{
		MatchID:      string(result.MatchID),
		Source:       SourceTable,
		Seed:         result.Seed,
		Players:      len(result.Players),
		Turns:        result.Turns,
		Actions:      result.Actions,
		Winner:       int(result.Winner),
		WinnerPoints: result.Points,
		DurationMS:   result.Duration.Milliseconds(),
		Reasons:      make(map[string]int, len(result.Rejected)),
	}
	for reason, n := range result.Rejected {
		rec.Reasons[string(reason)] = n
		rec.Rejected += n
	}
	_, err := s.SaveGame(rec)
	return err
}

// Ensure Store implements ResultSaver
var _ multiplayer.ResultSaver = (*Store)(nil)
