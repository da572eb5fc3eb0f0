package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one player's win on a given date.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Target    int    `json:"target"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LBRow is a leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store reads and writes daily_results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("daily: already played: %w", err)
	}
	return cnt > 0, nil
}

// InsertResult records a win. A second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, target, attempts, elapsed_ms)
		 VALUES(?,?,?,?,?)`,
		r.UserID, r.Date, r.Target, r.Attempts, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("daily: insert result: %w", err)
	}
	return nil
}

// Leaderboard returns the best results for date: fewest attempts, then fastest.
// A non-positive limit defaults to 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, attempts, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY attempts ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("daily: leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Attempts, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
