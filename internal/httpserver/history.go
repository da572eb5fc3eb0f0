// internal/httpserver/history.go
//
// Best-effort round history in SQLite.
// Each round played under a round ID (the first one and every reset) gets one
// row in `rounds`. Failures are logged and never reach the client.

package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// owner identifies who a round row belongs to: a user or an anonymous cookie.
type owner struct {
	userID string
	anonID string
}

// owner resolves the requester, setting the anonymous cookie if needed.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) owner {
	if me := userFrom(r.Context()); me != nil {
		return owner{userID: me.ID}
	}
	return owner{anonID: s.ensureAnonID(w, r)}
}

// startRound closes any still-playing row for roundID as abandoned and
// inserts a fresh playing row.
func (s *Server) startRound(ctx context.Context, roundID string, o owner, low, high int) {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Str("roundId", roundID).Msg("begin round tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	// Stats go to whoever owns the abandoned row, not to the requester.
	var prevUser sql.NullString
	err = tx.QueryRow(`SELECT user_id FROM rounds WHERE round_id=? AND status='playing'
	                   ORDER BY id DESC LIMIT 1`, roundID).Scan(&prevUser)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		log.Warn().Err(err).Str("roundId", roundID).Msg("load playing round")
	default:
		if _, err := tx.Exec(`UPDATE rounds SET status='abandoned', finished_at=?
		                     WHERE round_id=? AND status='playing'`, now, roundID); err != nil {
			log.Warn().Err(err).Str("roundId", roundID).Msg("abandon round")
		} else if prevUser.Valid && prevUser.String != "" {
			if err := bumpStats(tx, prevUser.String, false, 0); err != nil {
				log.Warn().Err(err).Str("user", prevUser.String).Msg("bump stats")
			}
		}
	}

	if _, err := tx.Exec(`INSERT INTO rounds (round_id, user_id, anonymous_id, low, high, attempts, status, started_at)
	                     VALUES (?,?,?,?,?,0,'playing',?)`,
		roundID, nullable(o.userID), nullable(o.anonID), low, high, now); err != nil {
		log.Warn().Err(err).Str("roundId", roundID).Msg("insert round row")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("roundId", roundID).Msg("commit round row")
	}
}

// recordGuess stores the attempt count and, on a win, closes the row and
// updates the user's stats.
func (s *Server) recordGuess(ctx context.Context, roundID string, o owner, attempts int, won bool) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Str("roundId", roundID).Msg("begin guess tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE rounds SET attempts=? WHERE round_id=? AND status='playing'`,
		attempts, roundID); err != nil {
		log.Warn().Err(err).Str("roundId", roundID).Msg("update attempts")
	}
	if won {
		if _, err := tx.Exec(`UPDATE rounds SET status='won', finished_at=? WHERE round_id=? AND status='playing'`,
			time.Now().UTC().Format(time.RFC3339), roundID); err != nil {
			log.Warn().Err(err).Str("roundId", roundID).Msg("finish round")
		}
		if o.userID != "" {
			if err := bumpStats(tx, o.userID, true, attempts); err != nil {
				log.Warn().Err(err).Str("user", o.userID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("roundId", roundID).Msg("commit guess")
	}
}

// bumpStats counts a finished round; wins also track the best attempt count.
func bumpStats(tx *sql.Tx, userID string, won bool, attempts int) error {
	var played, wins, best int
	row := tx.QueryRow(`SELECT rounds_played, wins, best_attempts FROM users WHERE id=?`, userID)
	if err := row.Scan(&played, &wins, &best); err != nil {
		return err
	}
	played++
	if won {
		wins++
		if best == 0 || attempts < best {
			best = attempts
		}
	}
	_, err := tx.Exec(`UPDATE users SET rounds_played=?, wins=?, best_attempts=? WHERE id=?`,
		played, wins, best, userID)
	return err
}

// claimAnonRounds transfers anonymous history to a user account after auth.
func (s *Server) claimAnonRounds(anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.Exec(`UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon rounds")
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
