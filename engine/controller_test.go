package engine

import (
	"errors"
	"reversi/board"
	"reversi/experiments/metrics"
	"reversi/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	statuses   []string
	cells      map[board.Pos]game.Stone
	highlight  map[board.Pos]bool
	candidates int
	redraws    int
}

func newRecorder() *recorder {
	return &recorder{
		cells:     map[board.Pos]game.Stone{},
		highlight: map[board.Pos]bool{},
	}
}

func (r *recorder) Status(msg string)                          { r.statuses = append(r.statuses, msg) }
func (r *recorder) MarkCandidates(moves game.MoveList, _ bool) { r.candidates = moves.Len() }
func (r *recorder) UnmarkCandidates(game.MoveList)             { r.candidates = 0 }
func (r *recorder) Mark(pos board.Pos, _ bool)                 { r.highlight[pos] = true }
func (r *recorder) Unmark(pos board.Pos, _ bool)               { delete(r.highlight, pos) }
func (r *recorder) SetCell(pos board.Pos, stone game.Stone)    { r.cells[pos] = stone }
func (r *recorder) Redraw()                                    { r.redraws++ }

func newController(t *testing.T, size int) (*Controller, *recorder) {
	t.Helper()
	state, err := game.New(size)
	require.NoError(t, err)
	display := newRecorder()
	return NewController(state, display), display
}

func TestNewController(t *testing.T) {
	ctrl, display := newController(t, 8)

	require.Len(t, display.cells, 64, "Every cell should be drawn")
	require.Equal(t, game.Black, display.cells[board.Pos{X: 3, Y: 3}])
	require.Equal(t, game.White, display.cells[board.Pos{X: 3, Y: 4}])
	require.Equal(t, -1, ctrl.Selected())
	require.Equal(t, 0, ctrl.History())
	require.Panics(t, func() { NewController(nil, nil) })
}

func TestOpeningMove(t *testing.T) {
	ctrl, display := newController(t, 8)

	require.True(t, ctrl.PrepareTurn(game.White))
	require.Equal(t, 4, ctrl.Candidates().Len())
	require.Equal(t, 4, display.candidates)
	require.Equal(t, 0, ctrl.Selected())
	require.Equal(t, 1, ctrl.PossibleFlips())
	require.True(t, display.highlight[board.Pos{X: 2, Y: 3}])

	white, black := ctrl.Counts()
	require.True(t, ctrl.ApplySelectedMove(game.White))
	whiteAfter, blackAfter := ctrl.Counts()

	require.Equal(t, black-1, blackAfter)
	require.Equal(t, white+2, whiteAfter)
	require.Equal(t, game.White, display.cells[board.Pos{X: 2, Y: 3}])
	require.Equal(t, game.White, display.cells[board.Pos{X: 3, Y: 3}])
	require.Equal(t, 0, display.candidates, "Candidates should be unmarked once a move is made")
	require.Equal(t, 3, ctrl.ScoreDelta(game.White))
	require.Equal(t, 1, ctrl.History())

	mover, ok := ctrl.LastMover()
	require.True(t, ok)
	require.Equal(t, game.White, mover)

	require.False(t, ctrl.ApplySelectedMove(game.Black), "Nothing is selected until the next turn is prepared")
}

func TestSelection(t *testing.T) {
	ctrl, display := newController(t, 8)
	ctrl.PrepareTurn(game.Black)

	for i := 1; i <= 4; i++ {
		ctrl.CycleSelection(game.Black)
		require.Equal(t, i%4, ctrl.Selected())
		require.Len(t, display.highlight, 1, "Only the selected candidate should be highlighted")
	}

	require.True(t, ctrl.SelectCandidate(game.Black, 2))
	require.True(t, display.highlight[ctrl.Candidates().At(2).Pos])
	require.False(t, ctrl.SelectCandidate(game.Black, 4))
	require.False(t, ctrl.SelectCandidate(game.Black, -1))
	require.Equal(t, 2, ctrl.Selected())
}

func TestUndo(t *testing.T) {
	ctrl, display := newController(t, 8)
	require.False(t, ctrl.UndoLastMove(), "Nothing to undo on a fresh game")

	before := ctrl.State().Snapshot()
	color := game.White
	for i := 0; i < 6; i++ {
		require.True(t, ctrl.PrepareTurn(color))
		ctrl.CycleSelection(color)
		require.True(t, ctrl.ApplySelectedMove(color))
		color = color.Other()
	}
	require.Equal(t, 6, ctrl.History())

	for ctrl.UndoLastMove() {
	}
	require.Equal(t, 0, ctrl.History())
	require.Equal(t, before, ctrl.State().Snapshot())

	for pos, stone := range ctrl.State().All() {
		require.Equal(t, stone, display.cells[pos], "Display out of sync at %v", pos)
	}
}

func TestComputedMove(t *testing.T) {
	t.Run("synchronous", func(t *testing.T) {
		ctrl, _ := newController(t, 8)
		ctrl.PrepareTurn(game.White)
		ctrl.CycleSelection(game.White)

		info := ctrl.RequestComputedMove(game.White, 1)
		require.Equal(t, 0, info.Index)
		require.Equal(t, board.Pos{X: 2, Y: 3}, info.Pos)
		require.Equal(t, 0, ctrl.Selected(), "Computed move should be selected")
		require.Equal(t, 1, ctrl.TakeSearchMetrics().Depth)
		require.Equal(t, metrics.SearchMetric{}, ctrl.TakeSearchMetrics(), "Metrics are handed out once")
	})

	t.Run("asynchronous", func(t *testing.T) {
		ctrl, _ := newController(t, 8)
		result, err := ctrl.ComputeMove(game.Black, 3)
		require.NoError(t, err)

		select {
		case info := <-result:
			require.True(t, info.Found())
			require.True(t, ctrl.AdoptMove(game.Black, info))
			require.Equal(t, info.Index, ctrl.Selected())
		case <-time.After(10 * time.Second):
			t.Fatal("search did not finish")
		}
		require.False(t, ctrl.Searching())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctrl, _ := newController(t, 10)
		before := ctrl.State().Snapshot()

		result, err := ctrl.ComputeMove(game.White, 40)
		require.NoError(t, err)

		_, err = ctrl.ComputeMove(game.White, 1)
		require.True(t, errors.Is(err, ErrSearchRunning))
		require.False(t, ctrl.PrepareTurn(game.White), "State must not change while searching")
		require.False(t, ctrl.UndoLastMove())

		time.Sleep(20 * time.Millisecond)
		ctrl.Cancel()

		select {
		case info := <-result:
			require.True(t, info.Found())
			require.Equal(t, metrics.StopInterrupt, ctrl.TakeSearchMetrics().Stopped)
		case <-time.After(5 * time.Second):
			t.Fatal("search did not stop after cancel")
		}
		require.Equal(t, before, ctrl.State().Snapshot())
	})

	t.Run("cancel before the search polls", func(t *testing.T) {
		ctrl, _ := newController(t, 10)
		result, err := ctrl.ComputeMove(game.White, 40)
		require.NoError(t, err)
		ctrl.Cancel()

		select {
		case info := <-result:
			require.True(t, info.Found())
		case <-time.After(5 * time.Second):
			t.Fatal("an early cancel was lost")
		}
	})

	t.Run("no move", func(t *testing.T) {
		state, err := game.New(4)
		require.NoError(t, err)
		state.Flip(board.Pos{X: 1, Y: 2})
		state.Flip(board.Pos{X: 2, Y: 1})
		ctrl := NewController(state, nil)

		info := ctrl.RequestComputedMove(game.White, 3)
		require.False(t, info.Found())
		require.True(t, ctrl.Ended())
		require.Equal(t, 0, ctrl.PossibleFlips())
	})
}
