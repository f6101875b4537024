package model

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	aliveColor = "#4ade80"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	out *termenv.Output
}

// NewTerminalRenderer renders to f, with color only when f is a terminal
func NewTerminalRenderer(f *os.File) *TerminalRenderer {
	if term.IsTerminal(int(f.Fd())) {
		return &TerminalRenderer{out: termenv.NewOutput(f)}
	}
	return NewPlainRenderer(f)
}

// NewPlainRenderer renders to w without escape sequences
func NewPlainRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	block := r.out.String(gridPosBlock).Foreground(r.out.Color(aliveColor)).String()
	for y := range g.height {
		for x := range g.width {
			if g.Get(x, y) {
				fmt.Fprint(r.out, block)
			} else {
				fmt.Fprint(r.out, gridPosEmpty)
			}
		}
		fmt.Fprintln(r.out)
	}
}

// DisplaySequence renders every generation under a header line
func (r *TerminalRenderer) DisplaySequence(seq Sequence) {
	for i, g := range seq {
		fmt.Fprintf(r.out, "Gen: %d | Living: %d\n", i, g.CountLivingCells())
		r.Display(g)
		fmt.Fprintln(r.out)
	}
}

// Animate redraws each generation in place, waiting frameRate between frames
func (r *TerminalRenderer) Animate(seq Sequence, frameRate time.Duration) {
	for i, g := range seq {
		if i > 0 {
			time.Sleep(frameRate)
		}
		r.Clear()
		fmt.Fprintf(r.out, "Gen: %d/%d | Living: %d\n", i, seq.Len()-1, g.CountLivingCells())
		r.Display(g)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	r.out.ClearScreen()
}
