package engine

import (
	"io"
	"reversi/board"
	"reversi/game"
)

// Display is whatever shows the game. The controller reports every visible
// change through it and never reads anything back. reverse is true when the
// marks belong to White.
type Display interface {
	Status(msg string)
	MarkCandidates(moves game.MoveList, reverse bool)
	UnmarkCandidates(moves game.MoveList)
	Mark(pos board.Pos, reverse bool) // highlight the selected candidate
	Unmark(pos board.Pos, reverse bool)
	SetCell(pos board.Pos, stone game.Stone)
	Redraw()
}

// Renderable is implemented by displays that can draw themselves to a writer.
type Renderable interface {
	Render(w io.Writer) error
}

// NopDisplay discards everything.
type NopDisplay struct{}

func (NopDisplay) Status(string)                      {}
func (NopDisplay) MarkCandidates(game.MoveList, bool) {}
func (NopDisplay) UnmarkCandidates(game.MoveList)     {}
func (NopDisplay) Mark(board.Pos, bool)               {}
func (NopDisplay) Unmark(board.Pos, bool)             {}
func (NopDisplay) SetCell(board.Pos, game.Stone)      {}
func (NopDisplay) Redraw()                            {}
