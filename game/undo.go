package game

import "reversi/board"

type OpKind uint8

const (
	OpPlace OpKind = iota
	OpFlip
)

// Op is one reversible board mutation. An OpPlace records where a stone was put,
// an OpFlip records the set of stones turned over.
type Op struct {
	Kind  OpKind
	Pos   board.Pos
	Stone Stone
	Flips []board.Pos
}

// UndoRecord is the list of ops one move applied, in application order.
type UndoRecord []Op

// Placed returns the position of the stone the record placed.
func (r UndoRecord) Placed() board.Pos {
	for _, op := range r {
		if op.Kind == OpPlace {
			return op.Pos
		}
	}
	return board.Pos{X: -1, Y: -1}
}

// Mover returns the color of the placed stone.
func (r UndoRecord) Mover() Stone {
	for _, op := range r {
		if op.Kind == OpPlace {
			return op.Stone
		}
	}
	return Empty
}

// Flipped returns the positions the record turned over.
func (r UndoRecord) Flipped() []board.Pos {
	var flips []board.Pos
	for _, op := range r {
		if op.Kind == OpFlip {
			flips = append(flips, op.Flips...)
		}
	}
	return flips
}

// Play puts color on c.Pos and turns over everything c captures.
// The candidate must come from Moves(color) on the current state.
func (gs *GameState) Play(c Candidate, color Stone) UndoRecord {
	gs.apply(Op{Kind: OpPlace, Pos: c.Pos, Stone: color})
	flip := Op{Kind: OpFlip, Flips: c.Captures}
	gs.apply(flip)
	return UndoRecord{{Kind: OpPlace, Pos: c.Pos, Stone: color}, flip}
}

// Revert undoes a record returned by Play, last op first.
func (gs *GameState) Revert(r UndoRecord) {
	for i := len(r) - 1; i >= 0; i-- {
		gs.reverse(r[i])
	}
}

func (gs *GameState) apply(op Op) {
	switch op.Kind {
	case OpPlace:
		gs.Place(op.Pos, op.Stone)
	case OpFlip:
		for _, p := range op.Flips {
			gs.Flip(p)
		}
	}
}

func (gs *GameState) reverse(op Op) {
	switch op.Kind {
	case OpPlace:
		gs.Remove(op.Pos)
	case OpFlip:
		// flipping is its own inverse
		for _, p := range op.Flips {
			gs.Flip(p)
		}
	}
}

// History is the undo chain of applied moves.
type History struct {
	records []UndoRecord
}

func (h *History) Push(r UndoRecord) {
	h.records = append(h.records, r)
}

// Pop removes and returns the most recent record, false if the history is empty.
func (h *History) Pop() (UndoRecord, bool) {
	if len(h.records) == 0 {
		return nil, false
	}
	last := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	return last, true
}

// Last returns the most recent record without removing it.
func (h *History) Last() (UndoRecord, bool) {
	if len(h.records) == 0 {
		return nil, false
	}
	return h.records[len(h.records)-1], true
}

func (h *History) Len() int {
	return len(h.records)
}
