// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Kind: classification of a guess result (correct/too_low/...).
//   - Round: state for a single guessing round.
//   - View: what a presentation layer renders for a round.

package game

import "github.com/robalobadob/guessing/internal/random"

// Kind classifies the outcome of a submitted guess.
// Possible values:
//   - "correct":      the guess matched the hidden value.
//   - "too_low":      valid guess in bounds, below the hidden value.
//   - "too_high":     valid guess in bounds, above the hidden value.
//   - "out_of_range": valid integer outside [Low, High].
//   - "invalid":      the input was not an integer.
//   - "locked":       the round was already finished; nothing changed.
type Kind string

const (
	KindCorrect    Kind = "correct"
	KindTooLow     Kind = "too_low"
	KindTooHigh    Kind = "too_high"
	KindOutOfRange Kind = "out_of_range"
	KindInvalid    Kind = "invalid"
	KindLocked     Kind = "locked"
)

// Round holds the state of one guessing round.
// It is replaced in place by Reset; ID, Low and High never change.
type Round struct {
	ID       string // Unique round identifier (random hex string).
	Low      int    // Inclusive lower bound.
	High     int    // Exclusive upper bound of the draw.
	Attempts int    // Guesses submitted this round, including unparsable ones.
	Input    string // Raw text of the current candidate guess.
	Output   string // Last result message shown to the user.
	Finished bool   // True once a guess matched the hidden value.

	hidden int
	src    random.Source
}

// View is the presentation-facing snapshot of a round.
// The hidden value is never part of it.
type View struct {
	Title        string `json:"title"`
	Output       string `json:"output"`
	Input        string `json:"input"`
	Attempts     int    `json:"attempts"`
	Low          int    `json:"low"`
	High         int    `json:"high"`
	InputEnabled bool   `json:"inputEnabled"`
	ShowNewRound bool   `json:"showNewRound"`
}
