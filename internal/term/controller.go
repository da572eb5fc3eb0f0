// Package term is a terminal presentation layer for a guessing round.
//
// Controller turns termbox key events into round operations; ui.go draws
// the round's View. Key handling does not need an initialised terminal,
// so it can be driven directly in tests.
package term

import (
	"unicode/utf8"

	"github.com/nsf/termbox-go"

	"github.com/robalobadob/guessing/internal/game"
)

// Controller owns the round played on screen.
type Controller struct {
	round *game.Round
}

func NewController(r *game.Round) *Controller {
	return &Controller{round: r}
}

// Round returns the round being played.
func (c *Controller) Round() *game.Round { return c.round }

// HandleKey applies one key event and reports whether the user asked to quit.
//
//	Esc, Ctrl-C        quit
//	Enter              submit guess (playing) or start a new round (finished)
//	n                  start a new round (finished)
//	Backspace          delete the last input rune (playing)
//	any other rune     append to the input (playing)
func (c *Controller) HandleKey(ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return true
	}

	r := c.round
	if r.Finished {
		if ev.Key == termbox.KeyEnter || ev.Ch == 'n' || ev.Ch == 'N' {
			r.Reset()
		}
		return false
	}

	switch {
	case ev.Key == termbox.KeyEnter:
		r.Submit()
	case ev.Key == termbox.KeyBackspace || ev.Key == termbox.KeyBackspace2:
		if r.Input != "" {
			_, size := utf8.DecodeLastRuneInString(r.Input)
			r.SetInput(r.Input[:len(r.Input)-size])
		}
	case ev.Key == termbox.KeySpace:
		r.SetInput(r.Input + " ")
	case ev.Ch != 0:
		r.SetInput(r.Input + string(ev.Ch))
	}
	return false
}
