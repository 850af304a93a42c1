package board

import (
	"errors"
	"fmt"
	"iter"
)

const (
	MinSize = 4
	MaxSize = 10
)

var ErrBoardSize = errors.New("invalid board size")

// Board is a square grid of cells of type T. Cells are stored column-major
// (x outer, y inner) so a full traversal visits y fastest.
type Board[T any] struct {
	size  int
	cells []T
}

// New returns a size x size board with every cell set to the zero value of T.
// The size must be even and within [MinSize, MaxSize].
func New[T any](size int) (*Board[T], error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	return &Board[T]{
		size:  size,
		cells: make([]T, size*size),
	}, nil
}

func ValidateSize(size int) error {
	if size%2 != 0 {
		return fmt.Errorf("%w: %d is odd", ErrBoardSize, size)
	}
	if size < MinSize {
		return fmt.Errorf("%w: %d is below %d", ErrBoardSize, size, MinSize)
	}
	if size > MaxSize {
		return fmt.Errorf("%w: %d is above %d", ErrBoardSize, size, MaxSize)
	}
	return nil
}

func (b *Board[T]) Size() int {
	return b.size
}

// Contains reports whether p lies on the board.
func (b *Board[T]) Contains(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.size && p.Y < b.size
}

// At panics if p is off the board.
func (b *Board[T]) At(p Pos) T {
	return b.cells[b.index(p)]
}

// Set panics if p is off the board.
func (b *Board[T]) Set(p Pos, value T) {
	b.cells[b.index(p)] = value
}

func (b *Board[T]) Fill(value T) {
	for i := range b.cells {
		b.cells[i] = value
	}
}

func (b *Board[T]) Clone() *Board[T] {
	clone := &Board[T]{size: b.size, cells: make([]T, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

// All yields every cell exactly once, x increasing last and y fastest.
// The sequence can be ranged over any number of times.
func (b *Board[T]) All() iter.Seq2[Pos, T] {
	return func(yield func(Pos, T) bool) {
		for x := 0; x < b.size; x++ {
			for y := 0; y < b.size; y++ {
				if !yield(Pos{X: x, Y: y}, b.cells[x*b.size+y]) {
					return
				}
			}
		}
	}
}

func (b *Board[T]) index(p Pos) int {
	if !b.Contains(p) {
		panic(fmt.Sprintf("position %v is off the %dx%d board", p, b.size, b.size))
	}
	return p.X*b.size + p.Y
}
