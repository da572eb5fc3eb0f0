// internal/game/engine.go
//
// Round engine for a single number-guessing round.
// Responsibilities:
//   - Create rounds with a hidden value drawn from [Low, High).
//   - Buffer the user's input text.
//   - Verify guesses with range-qualified too low / too high checks.
//   - Track state transitions: playing → finished → (reset) playing.
//
// Notes:
//   - The hidden value comes from an injected random.Source.
//   - Guesses equal to High count as too high, even though High is never drawn.
//   - Unparsable input still consumes an attempt.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/robalobadob/guessing/internal/random"
)

// New constructs a round over [low, high).
// A nil src falls back to random.Crypto().
func New(low, high int, src random.Source) (*Round, error) {
	if low >= high {
		return nil, ErrInvalidBounds
	}
	if src == nil {
		src = random.Crypto()
	}
	r := &Round{
		ID:   randomID(),
		Low:  low,
		High: high,
		src:  src,
	}
	r.hidden = r.draw()
	return r, nil
}

// SetInput replaces the buffered input text.
func (r *Round) SetInput(text string) {
	r.Input = text
}

// Guess counts an attempt and checks the buffered input against the hidden value.
// Returns the total attempts on a match, or one of ErrTooLow, ErrTooHigh,
// ErrOutOfRange, *ParseError. It does not touch Finished or Output.
func (r *Round) Guess() (int, error) {
	r.Attempts++
	g, err := strconv.Atoi(strings.TrimSpace(r.Input))
	if err != nil {
		return r.Attempts, &ParseError{Input: r.Input, Err: err}
	}
	return r.Attempts, r.verify(g)
}

// Submit runs Guess and records its outcome in Output and Finished.
// Only the Kind leaves the engine. A finished round ignores submissions
// until Reset and reports KindLocked.
func (r *Round) Submit() Kind {
	if r.Finished {
		return KindLocked
	}
	attempts, err := r.Guess()
	r.Finished = err == nil
	r.Output = Message(attempts, err)
	return KindOf(err)
}

// Reset starts a fresh round with the same bounds and source.
func (r *Round) Reset() {
	r.Input = ""
	r.Output = ""
	r.Attempts = 0
	r.Finished = false
	r.hidden = r.draw()
}

// View returns the display snapshot of the round.
func (r *Round) View() View {
	title := "Guessing Game"
	if r.Output != "" {
		title += " - " + r.Output
	}
	return View{
		Title:        title,
		Output:       r.Output,
		Input:        r.Input,
		Attempts:     r.Attempts,
		Low:          r.Low,
		High:         r.High,
		InputEnabled: !r.Finished,
		ShowNewRound: r.Finished,
	}
}

// verify applies the comparison rule. Order matters: equality first, then
// the bounded low/high checks, and anything left is out of range.
func (r *Round) verify(g int) error {
	switch {
	case g == r.hidden:
		return nil
	case g < r.hidden && g >= r.Low:
		return ErrTooLow
	case g > r.hidden && g <= r.High:
		return ErrTooHigh
	default:
		return ErrOutOfRange
	}
}

func (r *Round) draw() int { return r.src.Draw(r.Low, r.High) }

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
