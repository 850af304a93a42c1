package game

// Stone occupying a board cell. The zero value is an empty cell.
type Stone int8

const (
	Empty Stone = iota
	Black
	White
)

func (s Stone) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// Other returns the opposing color. Empty has no opponent and maps to itself.
func (s Stone) Other() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Other is a convenience alias for color.Other().
func Other(color Stone) Stone {
	return color.Other()
}

// ParseStone accepts "black"/"b" and "white"/"w" in any case.
func ParseStone(s string) (Stone, bool) {
	switch s {
	case "black", "Black", "BLACK", "b", "B":
		return Black, true
	case "white", "White", "WHITE", "w", "W":
		return White, true
	}
	return Empty, false
}

// Evaluate scores the state from color's perspective, higher is better for color.
type Evaluate func(gs *GameState, color Stone) int
