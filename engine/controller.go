package engine

import (
	"context"
	"errors"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

var ErrSearchRunning = errors.New("a search is already running")

// Controller drives one game session: it owns the state, keeps the display in
// sync, remembers which candidate is selected and keeps the undo chain.
//
// Every method except Cancel must be called from the same goroutine. While a
// search started by ComputeMove is running, methods that change the board or
// the selection refuse to act.
type Controller struct {
	state    *game.GameState
	display  Display
	search   *searcher.AlphaBeta
	stopper  *searcher.Stopper
	history  game.History
	moves    game.MoveList
	selected int

	searching atomic.Bool
	mu        sync.Mutex
	cancel    context.CancelFunc
	metric    metrics.SearchMetric
}

// NewController draws the initial board on display. Search options apply to
// the controller's own search engine, which always collects metrics and always
// uses the controller's stopper.
func NewController(state *game.GameState, display Display, options ...searcher.Option) *Controller {
	if state == nil {
		panic("controller needs a game state")
	}
	if display == nil {
		display = NopDisplay{}
	}
	stopper := searcher.NewStopper()
	options = append([]searcher.Option{searcher.WithMetrics()}, options...)
	options = append(options, searcher.WithStopper(stopper))

	c := &Controller{
		state:    state,
		display:  display,
		search:   searcher.NewAlphaBeta(options...),
		stopper:  stopper,
		selected: -1,
	}
	for pos, stone := range state.All() {
		display.SetCell(pos, stone)
	}
	return c
}

func (c *Controller) State() *game.GameState {
	return c.state
}

func (c *Controller) busy(op string) bool {
	if c.searching.Load() {
		log.Warn().Msgf("ignoring %s while a search is running", op)
		return true
	}
	return false
}

// PrepareTurn lists color's legal moves, marks them and preselects the one with
// the most captures. It also refreshes the opponent's move count so Ended is
// accurate afterwards. Returns whether color can move.
func (c *Controller) PrepareTurn(color game.Stone) bool {
	if c.busy("prepare") {
		return false
	}
	reverse := color == game.White

	c.display.UnmarkCandidates(c.moves)
	c.state.Moves(color.Other())
	c.moves = c.state.Moves(color)
	c.selected = c.moves.Best()

	c.display.MarkCandidates(c.moves, reverse)
	if c.selected >= 0 {
		c.display.Mark(c.moves.At(c.selected).Pos, reverse)
	}
	c.display.Redraw()
	return c.selected >= 0
}

// CycleSelection moves the highlight to the next candidate, wrapping around.
func (c *Controller) CycleSelection(color game.Stone) {
	if c.busy("selection") || c.moves.Len() == 0 {
		return
	}
	c.SelectCandidate(color, (c.selected+1)%c.moves.Len())
}

// SelectCandidate highlights the candidate at index. Returns false if the index
// is outside the current list.
func (c *Controller) SelectCandidate(color game.Stone, index int) bool {
	if c.busy("selection") || index < 0 || index >= c.moves.Len() {
		return false
	}
	reverse := color == game.White
	if c.selected >= 0 {
		c.display.Unmark(c.moves.At(c.selected).Pos, reverse)
	}
	c.selected = index
	c.display.Mark(c.moves.At(index).Pos, reverse)
	c.display.Redraw()
	return true
}

// ApplySelectedMove plays the highlighted candidate for color and pushes it
// onto the undo chain. The candidate list is consumed; call PrepareTurn for the next turn.
func (c *Controller) ApplySelectedMove(color game.Stone) bool {
	if c.busy("move") || c.selected < 0 {
		return false
	}
	candidate := c.moves.At(c.selected)
	c.display.UnmarkCandidates(c.moves)

	record := c.state.Play(candidate, color)
	c.history.Push(record)
	c.show(record)

	c.moves = game.MoveList{}
	c.selected = -1
	log.Debug().Msgf("%s played %v flipping %d", color, candidate.Pos, candidate.Value())
	return true
}

// UndoLastMove takes back the most recent move. Returns false if there is nothing to undo.
func (c *Controller) UndoLastMove() bool {
	if c.busy("undo") {
		return false
	}
	record, ok := c.history.Pop()
	if !ok {
		return false
	}
	c.display.UnmarkCandidates(c.moves)

	c.state.Revert(record)
	c.show(record)

	c.moves = game.MoveList{}
	c.selected = -1
	log.Debug().Msgf("undid %s at %v", record.Mover(), record.Placed())
	return true
}

// show copies every cell a record touched from the state to the display.
func (c *Controller) show(record game.UndoRecord) {
	placed := record.Placed()
	c.display.SetCell(placed, c.state.StoneAt(placed))
	for _, pos := range record.Flipped() {
		c.display.SetCell(pos, c.state.StoneAt(pos))
	}
	c.display.Redraw()
}

// LastMover is the color that made the most recent move still on the undo chain.
func (c *Controller) LastMover() (game.Stone, bool) {
	record, ok := c.history.Last()
	if !ok {
		return game.Empty, false
	}
	return record.Mover(), true
}

// ScoreDelta is color's stone count minus the opponent's.
func (c *Controller) ScoreDelta(color game.Stone) int {
	return c.state.Score(color)
}

// RequestComputedMove searches synchronously, then prepares color's turn with
// the result selected so ApplySelectedMove plays it.
func (c *Controller) RequestComputedMove(color game.Stone, depth int) searcher.MoveInfo {
	if !c.searching.CompareAndSwap(false, true) {
		log.Warn().Msg("ignoring computed move request while a search is running")
		return searcher.NoMove
	}
	c.stopper.SetContext(nil)
	info, metric := c.search.Search(c.state, color, depth)
	c.setMetric(metric)
	c.searching.Store(false)

	c.AdoptMove(color, info)
	return info
}

// ComputeMove starts a search in its own goroutine and delivers the result on
// the returned channel. The board must be left alone until the result arrives;
// Cancel may be called at any time to get a best-effort answer sooner.
// Pass the result to AdoptMove to select it.
func (c *Controller) ComputeMove(color game.Stone, depth int) (<-chan searcher.MoveInfo, error) {
	if !c.searching.CompareAndSwap(false, true) {
		return nil, ErrSearchRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	c.stopper.SetContext(ctx)

	result := make(chan searcher.MoveInfo, 1)
	go func() {
		defer cancel()
		info, metric := c.search.Search(c.state, color, depth)
		c.setMetric(metric)
		c.searching.Store(false)
		result <- info
		close(result)
	}()
	return result, nil
}

// Cancel asks a running ComputeMove search to stop. Safe from any goroutine.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// Searching reports whether a ComputeMove search is still running.
func (c *Controller) Searching() bool {
	return c.searching.Load()
}

// AdoptMove re-lists color's moves and selects the computed one.
func (c *Controller) AdoptMove(color game.Stone, info searcher.MoveInfo) bool {
	if !c.PrepareTurn(color) || !info.Found() {
		return false
	}
	return c.SelectCandidate(color, info.Index)
}

func (c *Controller) setMetric(metric metrics.SearchMetric) {
	c.mu.Lock()
	c.metric = metric
	c.mu.Unlock()
}

// TakeSearchMetrics returns the metrics of the last search and clears them.
func (c *Controller) TakeSearchMetrics() metrics.SearchMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	metric := c.metric
	c.metric = metrics.SearchMetric{}
	return metric
}

// Ended reports whether neither color could move when their moves were last listed.
func (c *Controller) Ended() bool {
	return c.state.GameOver()
}

func (c *Controller) Counts() (white, black int) {
	return c.state.Count(game.White), c.state.Count(game.Black)
}

// PossibleFlips is the capture count of the best candidate in the current list.
func (c *Controller) PossibleFlips() int {
	best := c.moves.Best()
	if best < 0 {
		return 0
	}
	return c.moves.At(best).Value()
}

func (c *Controller) Candidates() game.MoveList {
	return c.moves
}

// Selected returns the index of the highlighted candidate, -1 if none.
func (c *Controller) Selected() int {
	return c.selected
}

// History is the number of moves that can be undone.
func (c *Controller) History() int {
	return c.history.Len()
}
