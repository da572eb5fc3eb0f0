package term

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/robalobadob/guessing/internal/game"
)

const prompt = "Enter a number ? "

// Run takes over the terminal and plays until the user quits.
func Run(c *Controller) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox init: %w", err)
	}
	defer termbox.Close()

	for {
		if err := draw(c.Round().View()); err != nil {
			return err
		}
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventError {
			return ev.Err
		}
		if c.HandleKey(ev) {
			return nil
		}
	}
}

// Lines returns the text rows shown for v, top to bottom.
func Lines(v game.View) []string {
	lines := []string{
		v.Title,
		fmt.Sprintf("Range: %d to %d", v.Low, v.High-1),
		"",
		v.Output,
	}
	if v.InputEnabled {
		lines = append(lines, prompt+v.Input)
	}
	if v.ShowNewRound {
		lines = append(lines, "[ New round: press Enter or n ]")
	}
	return append(lines, "", "Esc to quit")
}

func draw(v game.View) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	for y, line := range Lines(v) {
		fg := termbox.ColorDefault
		switch {
		case y == 0:
			fg = termbox.ColorDefault | termbox.AttrBold
		case y == 3 && v.ShowNewRound:
			fg = termbox.ColorGreen
		case y == 3:
			fg = termbox.ColorYellow
		}
		end := printLine(0, y, line, fg)
		if v.InputEnabled && y == 4 {
			termbox.SetCursor(end, y)
		}
	}
	if !v.InputEnabled {
		termbox.HideCursor()
	}
	return termbox.Flush()
}

// printLine writes s at row y and returns the column after its last cell.
func printLine(x, y int, s string, fg termbox.Attribute) int {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		x += runewidth.RuneWidth(r)
	}
	return x
}
