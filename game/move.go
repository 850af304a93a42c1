package game

import (
	"iter"
	"reversi/board"
)

// Candidate is a legal placement together with every opponent stone it captures,
// in direction order.
type Candidate struct {
	Pos      board.Pos
	Captures []board.Pos
}

// Value is the number of stones the move captures.
func (c Candidate) Value() int {
	return len(c.Captures)
}

// MoveList holds the legal moves of one color at one board state, in board
// traversal order. Indices into the list stay meaningful until the state changes.
type MoveList struct {
	candidates []Candidate
}

func (ml MoveList) Len() int {
	return len(ml.candidates)
}

func (ml MoveList) At(i int) Candidate {
	return ml.candidates[i]
}

// Best returns the index of the first candidate with the most captures, -1 if the list is empty.
func (ml MoveList) Best() int {
	best := -1
	for i, c := range ml.candidates {
		if best < 0 || c.Value() > ml.candidates[best].Value() {
			best = i
		}
	}
	return best
}

// IndexOf returns the index of the candidate placed at pos, -1 if there is none.
func (ml MoveList) IndexOf(pos board.Pos) int {
	for i, c := range ml.candidates {
		if c.Pos.Equal(pos) {
			return i
		}
	}
	return -1
}

func (ml MoveList) All() iter.Seq2[int, Candidate] {
	return func(yield func(int, Candidate) bool) {
		for i, c := range ml.candidates {
			if !yield(i, c) {
				return
			}
		}
	}
}
