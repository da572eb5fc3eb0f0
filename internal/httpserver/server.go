// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Round endpoints (optional auth): new, get, input, guess, reset.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: see auth.go.
//
// Notes:
//   - The HTTP layer is a presentation collaborator: it maps requests onto
//     SetInput / Submit / Reset and renders the round's View.
//   - Round mutations go through store.Update so each round has one writer.
//   - Guess endpoints share a token bucket limiter.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/guessing/internal/config"
	"github.com/robalobadob/guessing/internal/game"
	"github.com/robalobadob/guessing/internal/random"
	"github.com/robalobadob/guessing/internal/store"
)

// errRoundFinished rejects guesses on a finished round.
var errRoundFinished = errors.New("round finished")

// Server bundles router, in-memory round store, DB handle and config.
type Server struct {
	r       *chi.Mux
	store   store.Store
	db      *sql.DB
	cfg     config.Config
	src     random.Source
	limiter *rate.Limiter
	daily   *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
// src draws hidden values for ordinary rounds; nil means random.Crypto().
func New(cfg config.Config, st store.Store, db *sql.DB, src random.Source) *Server {
	if src == nil {
		src = random.Crypto()
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		cfg:     cfg,
		src:     src,
		limiter: rate.NewLimiter(rate.Limit(cfg.GuessRatePerSec), cfg.GuessRateBurst),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"guessing-go","endpoints":["/health","POST /round/new","POST /round/guess","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/round", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", s.handleNewRound)
		r.Get("/{id}", s.handleGetRound)
		r.Post("/input", s.handleInput)
		r.With(s.rateLimited).Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})

	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ ROUND --------------------------------------

type newRoundReq struct {
	Low  *int `json:"low"`
	High *int `json:"high"`
}

type roundRes struct {
	RoundID string    `json:"roundId"`
	View    game.View `json:"view"`
}

// handleNewRound creates a round over the configured bounds (or the request's)
// and records its history row.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	low, high := s.cfg.Low, s.cfg.High
	if req.Low != nil {
		low = *req.Low
	}
	if req.High != nil {
		high = *req.High
	}

	rd, err := game.New(low, high, s.src)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_bounds")
		return
	}
	if err := s.store.Save(r.Context(), rd); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.startRound(r.Context(), rd.ID, s.owner(w, r), low, high)

	writeJSON(w, http.StatusOK, roundRes{RoundID: rd.ID, View: rd.View()})
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	rd, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, roundRes{RoundID: rd.ID, View: rd.View()})
}

type inputReq struct {
	RoundID string `json:"roundId"`
	Text    string `json:"text"`
}

// handleInput buffers the user's current text (InputChanged).
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var view game.View
	err := s.store.Update(r.Context(), req.RoundID, func(rd *game.Round) error {
		rd.SetInput(req.Text)
		view = rd.View()
		return nil
	})
	if err != nil {
		s.writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roundRes{RoundID: req.RoundID, View: view})
}

// guessReq carries an optional guess; without it the buffered input is used.
type guessReq struct {
	RoundID string  `json:"roundId"`
	Guess   *string `json:"guess"`
}

type guessRes struct {
	Kind     game.Kind `json:"kind"`
	Attempts int       `json:"attempts"`
	Finished bool      `json:"finished"`
	View     game.View `json:"view"`
}

// handleGuess submits the buffered guess (GuessSubmitted) and persists progress.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var res guessRes
	err := s.store.Update(r.Context(), req.RoundID, func(rd *game.Round) error {
		if rd.Finished {
			return errRoundFinished
		}
		if req.Guess != nil {
			rd.SetInput(*req.Guess)
		}
		res.Kind = rd.Submit()
		res.Attempts = rd.Attempts
		res.Finished = rd.Finished
		res.View = rd.View()
		return nil
	})
	if err != nil {
		s.writeUpdateError(w, err)
		return
	}
	s.recordGuess(r.Context(), req.RoundID, s.owner(w, r), res.Attempts, res.Finished)

	writeJSON(w, http.StatusOK, res)
}

type resetReq struct {
	RoundID string `json:"roundId"`
}

// handleReset starts a new round in place (NewRoundRequested).
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var view game.View
	err := s.store.Update(r.Context(), req.RoundID, func(rd *game.Round) error {
		rd.Reset()
		view = rd.View()
		return nil
	})
	if err != nil {
		s.writeUpdateError(w, err)
		return
	}
	s.startRound(r.Context(), req.RoundID, s.owner(w, r), view.Low, view.High)

	writeJSON(w, http.StatusOK, roundRes{RoundID: req.RoundID, View: view})
}

// writeUpdateError maps store.Update failures to HTTP responses.
func (s *Server) writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, errRoundFinished):
		writeError(w, http.StatusConflict, "finished")
	default:
		log.Error().Err(err).Msg("update round")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
