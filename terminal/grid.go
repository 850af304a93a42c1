package terminal

import (
	"bytes"
	"fmt"
	"io"
	"reversi/board"
	"reversi/game"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

const noCandidate = -1

type cell struct {
	stone     game.Stone
	value     int // captures if the cell is a candidate, noCandidate otherwise
	reverse   bool
	highlight bool
}

// Grid draws the board, a status line and optionally a help screen to a terminal.
type Grid struct {
	cells  *board.Board[cell]
	status string
	help   []string
	out    *termenv.Output
	au     aurora.Aurora
}

// NewGrid draws to w. With colors off the output is plain text.
func NewGrid(size int, w io.Writer, colors bool) (*Grid, error) {
	cells, err := board.New[cell](size)
	if err != nil {
		return nil, fmt.Errorf("create grid: %w", err)
	}
	cells.Fill(cell{value: noCandidate})

	return &Grid{
		cells: cells,
		out:   termenv.NewOutput(w),
		au:    aurora.NewAurora(colors),
	}, nil
}

func (g *Grid) Status(msg string) {
	g.status = msg
	g.Redraw()
}

func (g *Grid) MarkCandidates(moves game.MoveList, reverse bool) {
	for _, c := range moves.All() {
		current := g.cells.At(c.Pos)
		current.value = c.Value()
		current.reverse = reverse
		g.cells.Set(c.Pos, current)
	}
}

func (g *Grid) UnmarkCandidates(moves game.MoveList) {
	for _, c := range moves.All() {
		current := g.cells.At(c.Pos)
		current.value = noCandidate
		current.highlight = false
		g.cells.Set(c.Pos, current)
	}
}

func (g *Grid) Mark(pos board.Pos, reverse bool) {
	current := g.cells.At(pos)
	current.highlight = true
	current.reverse = reverse
	g.cells.Set(pos, current)
}

func (g *Grid) Unmark(pos board.Pos, reverse bool) {
	current := g.cells.At(pos)
	current.highlight = false
	g.cells.Set(pos, current)
}

func (g *Grid) SetCell(pos board.Pos, stone game.Stone) {
	current := g.cells.At(pos)
	current.stone = stone
	g.cells.Set(pos, current)
}

// ShowHelp replaces the board with lines until HideHelp.
func (g *Grid) ShowHelp(lines []string) {
	g.help = lines
	g.Redraw()
}

func (g *Grid) HideHelp() {
	g.help = nil
	g.Redraw()
}

// Redraw clears the screen and renders the whole grid in one write.
func (g *Grid) Redraw() {
	var buf bytes.Buffer
	if err := g.Render(&buf); err != nil {
		log.Warn().Err(err).Msg("failed to render grid")
		return
	}
	g.out.ClearScreen()
	g.out.MoveCursor(1, 1)
	if _, err := g.out.Write(buf.Bytes()); err != nil {
		log.Warn().Err(err).Msg("failed to draw grid")
	}
}

// Render writes the grid with y = 0 at the bottom, column numbers below and
// the status line last.
func (g *Grid) Render(w io.Writer) error {
	var sb strings.Builder
	if g.help != nil {
		for _, line := range g.help {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	size := g.cells.Size()
	for y := size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < size; x++ {
			sb.WriteString(g.glyph(g.cells.At(board.Pos{X: x, Y: y})))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(&sb, "%d ", x)
	}
	sb.WriteByte('\n')
	sb.WriteString(g.status)
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

func (g *Grid) glyph(c cell) string {
	if c.value != noCandidate {
		mark := "+"
		if c.value <= 9 {
			mark = fmt.Sprint(c.value)
		}
		value := g.au.Yellow(mark)
		if c.highlight {
			value = g.au.Red(mark).Bold()
		}
		if c.reverse {
			value = value.Reverse()
		}
		return value.String()
	}

	switch c.stone {
	case game.Black:
		return g.au.Bold("X").String()
	case game.White:
		return g.au.Bold("O").Reverse().String()
	}
	return g.au.Green(".").String()
}

// EnterAltScreen switches to the alternate screen so the shell is restored on exit.
func (g *Grid) EnterAltScreen() {
	g.out.AltScreen()
	g.out.HideCursor()
}

func (g *Grid) ExitAltScreen() {
	g.out.ShowCursor()
	g.out.ExitAltScreen()
}
