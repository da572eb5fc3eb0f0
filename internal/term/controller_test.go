package term

import (
	"strings"
	"testing"

	"github.com/nsf/termbox-go"

	"github.com/robalobadob/guessing/internal/game"
	"github.com/robalobadob/guessing/internal/random"
)

func key(k termbox.Key) termbox.Event { return termbox.Event{Type: termbox.EventKey, Key: k} }
func ch(r rune) termbox.Event        { return termbox.Event{Type: termbox.EventKey, Ch: r} }

func typeText(c *Controller, s string) {
	for _, r := range s {
		c.HandleKey(ch(r))
	}
}

func newController(t *testing.T) *Controller {
	t.Helper()
	r, err := game.New(0, 10, random.Fixed(7))
	if err != nil {
		t.Fatal(err)
	}
	return NewController(r)
}

func TestTypingAndBackspace(t *testing.T) {
	c := newController(t)
	typeText(c, "12")
	c.HandleKey(key(termbox.KeySpace))
	typeText(c, "é")
	if got := c.Round().Input; got != "12 é" {
		t.Fatalf("input = %q", got)
	}
	c.HandleKey(key(termbox.KeyBackspace2))
	c.HandleKey(key(termbox.KeyBackspace))
	if got := c.Round().Input; got != "12" {
		t.Fatalf("input after backspace = %q", got)
	}

	empty := newController(t)
	empty.HandleKey(key(termbox.KeyBackspace2))
	if empty.Round().Input != "" {
		t.Fatal("backspace on empty input changed it")
	}
}

func TestEnterSubmitsAndResets(t *testing.T) {
	c := newController(t)
	typeText(c, "3")
	c.HandleKey(key(termbox.KeyEnter))
	r := c.Round()
	if r.Output != "Guess is lower than the hidden value" || r.Attempts != 1 {
		t.Fatalf("after guess 3: output=%q attempts=%d", r.Output, r.Attempts)
	}

	c.HandleKey(key(termbox.KeyBackspace2))
	typeText(c, "7")
	c.HandleKey(key(termbox.KeyEnter))
	if !r.Finished {
		t.Fatal("round not finished after correct guess")
	}

	// Typing is ignored once finished.
	typeText(c, "5")
	if r.Input != "7" {
		t.Fatalf("input changed while finished: %q", r.Input)
	}

	c.HandleKey(ch('n'))
	if r.Finished || r.Attempts != 0 || r.Input != "" || r.Output != "" {
		t.Fatalf("round not reset: %+v", r)
	}
}

func TestQuitKeys(t *testing.T) {
	c := newController(t)
	for _, k := range []termbox.Key{termbox.KeyEsc, termbox.KeyCtrlC} {
		if !c.HandleKey(key(k)) {
			t.Errorf("key %v did not quit", k)
		}
	}
	if c.HandleKey(ch('q')) {
		t.Error("q should be typed, not quit")
	}
	if c.HandleKey(termbox.Event{Type: termbox.EventResize}) {
		t.Error("resize quit")
	}
}

func TestLines(t *testing.T) {
	c := newController(t)
	lines := Lines(c.Round().View())
	if lines[0] != "Guessing Game" || lines[1] != "Range: 0 to 9" {
		t.Fatalf("header = %q", lines[:2])
	}
	if !contains(lines, prompt) {
		t.Fatalf("input prompt missing: %q", lines)
	}

	typeText(c, "7")
	c.HandleKey(key(termbox.KeyEnter))
	lines = Lines(c.Round().View())
	if contains(lines, prompt) {
		t.Fatalf("input prompt shown while finished: %q", lines)
	}
	if !contains(lines, "New round") {
		t.Fatalf("new round hint missing: %q", lines)
	}
}

func contains(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}
