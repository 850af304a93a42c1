package board

import "fmt"

// Pos is a board coordinate or, for Directions, a unit step.
type Pos struct {
	X int
	Y int
}

// Directions along which stones can be captured, starting north and turning clockwise.
// Dropping the diagonals gives a simpler variant of the game.
var Directions = [8]Pos{
	{0, 1},   // N
	{1, 1},   // NE
	{1, 0},   // E
	{1, -1},  // SE
	{0, -1},  // S
	{-1, -1}, // SW
	{-1, 0},  // W
	{-1, 1},  // NW
}

func (p Pos) Add(q Pos) Pos {
	return Pos{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Pos) Sub(q Pos) Pos {
	return Pos{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Pos) Equal(q Pos) bool {
	return p.X == q.X && p.Y == q.Y
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
