package game

import (
	"iter"
	"reversi/board"
	"strings"
)

const unknownMoves = -1

// GameState owns the board and the stone tallies. It is mutated in place, both by
// real play and by the search, which undoes everything it applies.
type GameState struct {
	board  *board.Board[Stone]
	counts [3]int // stones on the board, indexed by Stone
	moves  [3]int // legal move count from the last Moves call, indexed by Stone
}

// New sets up the four center stones. Black sits on the main diagonal.
func New(size int) (*GameState, error) {
	b, err := board.New[Stone](size)
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		board: b,
		moves: [3]int{unknownMoves, unknownMoves, unknownMoves},
	}
	gs.counts[Empty] = size * size

	mid := size / 2
	gs.Place(board.Pos{X: mid - 1, Y: mid - 1}, Black)
	gs.Place(board.Pos{X: mid, Y: mid}, Black)
	gs.Place(board.Pos{X: mid - 1, Y: mid}, White)
	gs.Place(board.Pos{X: mid, Y: mid - 1}, White)
	return gs, nil
}

func (gs *GameState) Size() int {
	return gs.board.Size()
}

// Cells is the number of cells on the board, also the bound of any material score.
func (gs *GameState) Cells() int {
	return gs.board.Size() * gs.board.Size()
}

func (gs *GameState) StoneAt(pos board.Pos) Stone {
	return gs.board.At(pos)
}

// All iterates the board in traversal order.
func (gs *GameState) All() iter.Seq2[board.Pos, Stone] {
	return gs.board.All()
}

func (gs *GameState) Count(color Stone) int {
	return gs.counts[color]
}

func (gs *GameState) Empty() int {
	return gs.counts[Empty]
}

// Place puts a stone on an empty cell. The caller guarantees the cell is empty.
func (gs *GameState) Place(pos board.Pos, color Stone) {
	gs.board.Set(pos, color)
	gs.counts[color]++
	gs.counts[Empty]--
}

// Remove clears a cell, used to take back a placement.
func (gs *GameState) Remove(pos board.Pos) {
	prev := gs.board.At(pos)
	if prev == Empty {
		return
	}
	gs.board.Set(pos, Empty)
	gs.counts[prev]--
	gs.counts[Empty]++
}

// Flip turns a stone to the other color. Empty cells are left alone.
func (gs *GameState) Flip(pos board.Pos) {
	prev := gs.board.At(pos)
	if prev == Empty {
		return
	}
	next := prev.Other()
	gs.board.Set(pos, next)
	gs.counts[prev]--
	gs.counts[next]++
}

// Moves lists every legal move for color in board traversal order and caches
// how many there were for GameOver.
func (gs *GameState) Moves(color Stone) MoveList {
	var list MoveList
	if color == Empty {
		return list
	}

	for pos, stone := range gs.board.All() {
		if stone != Empty {
			continue
		}
		var captures []board.Pos
		for _, dir := range board.Directions {
			captures = gs.sweep(pos, dir, color, captures)
		}
		if len(captures) > 0 {
			list.candidates = append(list.candidates, Candidate{Pos: pos, Captures: captures})
		}
	}

	gs.moves[color] = list.Len()
	return list
}

// sweep walks from 'from' along dir collecting opponent stones. The run is kept
// only if it ends on one of color's own stones.
func (gs *GameState) sweep(from, dir board.Pos, color Stone, captures []board.Pos) []board.Pos {
	start := len(captures)
	opponent := color.Other()
	for p := from.Add(dir); gs.board.Contains(p); p = p.Add(dir) {
		switch gs.board.At(p) {
		case opponent:
			captures = append(captures, p)
		case color:
			return captures
		default:
			return captures[:start]
		}
	}
	return captures[:start]
}

// GameOver reports whether the last Moves call for each color found nothing.
// It does not rescan the board, so both colors must have been enumerated since
// the last change for the answer to be current.
func (gs *GameState) GameOver() bool {
	return gs.moves[Black] == 0 && gs.moves[White] == 0
}

// Score is color's stone count minus the opponent's.
func (gs *GameState) Score(color Stone) int {
	return gs.counts[color] - gs.counts[color.Other()]
}

// Winner is the color with more stones, Empty on a tie.
func (gs *GameState) Winner() Stone {
	switch {
	case gs.counts[Black] > gs.counts[White]:
		return Black
	case gs.counts[White] > gs.counts[Black]:
		return White
	}
	return Empty
}

// Snapshot copies every cell in traversal order, used to compare boards.
func (gs *GameState) Snapshot() []Stone {
	cells := make([]Stone, 0, gs.Cells())
	for _, stone := range gs.board.All() {
		cells = append(cells, stone)
	}
	return cells
}

// String draws the board with y = 0 at the bottom: 'X' black, 'O' white, '.' empty.
func (gs *GameState) String() string {
	var sb strings.Builder
	size := gs.Size()
	for y := size - 1; y >= 0; y-- {
		for x := 0; x < size; x++ {
			switch gs.board.At(board.Pos{X: x, Y: y}) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
