// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's round
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=)
//
// Everyone shares one hidden value per UTC day (daily.Target). Each player
// can win once per day: sessions live in memory while playing and the win
// is persisted to daily_results.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessing/internal/daily"
	"github.com/robalobadob/guessing/internal/game"
	"github.com/robalobadob/guessing/internal/random"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	now      func() time.Time
	sessions map[string]*dailySession // keyed by userID|date
	mu       sync.Mutex               // guards sessions and their rounds
}

// dailySession is an in-progress daily round.
type dailySession struct {
	Round  *game.Round
	UserID string
	Date   string
	Target int
	Start  time.Time
}

func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.With(s.rateLimited).Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and hidden value.
func (d *dailyServer) today() (string, int) {
	now := d.now().UTC()
	cfg := d.srv.cfg
	return daily.DateKey(now), daily.Target(now, cfg.DailySalt, cfg.Low, cfg.High)
}

// playerID returns the authenticated user ID, or the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r.Context()); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

type dailyNewRes struct {
	RoundID string     `json:"roundId"`
	Date    string     `json:"date"`
	Played  bool       `json:"played"`
	View    *game.View `json:"view,omitempty"`
}

// handleNew creates or reuses today's session.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	date, target := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("daily already played")
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked(date)
	sess, ok := d.sessions[key]
	if !ok {
		cfg := d.srv.cfg
		rd, err := game.New(cfg.Low, cfg.High, random.Fixed(target))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "invalid_bounds")
			return
		}
		sess = &dailySession{Round: rd, UserID: uid, Date: date, Target: target, Start: d.now()}
		d.sessions[key] = sess
	}
	view := sess.Round.View()
	writeJSON(w, http.StatusOK, dailyNewRes{RoundID: sess.Round.ID, Date: date, View: &view})
}

// pruneLocked drops sessions from earlier days. Callers hold d.mu.
func (d *dailyServer) pruneLocked(today string) {
	for k, sess := range d.sessions {
		if sess.Date != today {
			delete(d.sessions, k)
		}
	}
}

type dailyGuessReq struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess"`
}

type dailyGuessRes struct {
	Kind     game.Kind `json:"kind"`
	State    string    `json:"state"` // in_progress | won | locked
	Attempts int       `json:"attempts"`
	View     game.View `json:"view"`
}

// handleGuess submits a guess for today's session; a win is persisted once.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.RoundID == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	date, _ := d.today()

	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	if !ok || sess.Round.ID != p.RoundID {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if sess.Round.Finished {
		res := dailyGuessRes{Kind: game.KindLocked, State: "locked", Attempts: sess.Round.Attempts, View: sess.Round.View()}
		d.mu.Unlock()
		writeJSON(w, http.StatusOK, res)
		return
	}
	sess.Round.SetInput(p.Guess)
	kind := sess.Round.Submit()
	res := dailyGuessRes{Kind: kind, State: "in_progress", Attempts: sess.Round.Attempts, View: sess.Round.View()}
	elapsed := int(d.now().Sub(sess.Start).Milliseconds())
	d.mu.Unlock()

	if kind == game.KindCorrect {
		res.State = "won"
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, Target: sess.Target, Attempts: res.Attempts, ElapsedMs: elapsed,
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
