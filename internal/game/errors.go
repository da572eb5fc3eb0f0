package game

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidBounds is returned by New when low >= high.
	ErrInvalidBounds = errors.New("game: low must be less than high")

	ErrTooLow     = errors.New("guess is lower than the hidden value")
	ErrTooHigh    = errors.New("guess is higher than the hidden value")
	ErrOutOfRange = errors.New("guess not in range")
)

// ParseError reports input text that is not an integer.
type ParseError struct {
	Input string
	Err   error // underlying strconv error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// KindOf maps a Guess error (or nil) to its Kind.
// Errors it does not recognise count as invalid input.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindCorrect
	case errors.Is(err, ErrTooLow):
		return KindTooLow
	case errors.Is(err, ErrTooHigh):
		return KindTooHigh
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	default:
		return KindInvalid
	}
}

// Message renders the user-facing text for a Guess result.
func Message(attempts int, err error) string {
	var pe *ParseError
	switch {
	case err == nil:
		return "It took " + strconv.Itoa(attempts) + " attempts"
	case errors.Is(err, ErrTooLow):
		return "Guess is lower than the hidden value"
	case errors.Is(err, ErrTooHigh):
		return "Guess is higher than the hidden value"
	case errors.Is(err, ErrOutOfRange):
		return "Guess not in range"
	case errors.As(err, &pe):
		return "Parsing Error: " + pe.Err.Error()
	default:
		return err.Error()
	}
}
