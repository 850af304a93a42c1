package searcher

import (
	"math"
	"reversi/board"
	"reversi/experiments/metrics"
	"reversi/game"

	"github.com/rs/zerolog/log"
)

type Option func(ab *AlphaBeta)

// MoveInfo is the move a search settled on: its position and its index in the
// root MoveList, so the caller can reselect it after re-enumerating.
type MoveInfo struct {
	Pos   board.Pos
	Index int
	Score int
}

// NoMove is returned when the searched color has no legal move.
var NoMove = MoveInfo{Pos: board.Pos{X: -1, Y: -1}, Index: -1}

func (mi MoveInfo) Found() bool {
	return mi.Index >= 0
}

// AlphaBeta is a fixed-depth minimax search with alpha-beta pruning. It plays
// and reverts moves on the caller's GameState instead of copying it, so the
// state must not be touched by anyone else while a search runs.
type AlphaBeta struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
	stopper  *Stopper
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func WithStopper(stopper *Stopper) Option {
	return func(ab *AlphaBeta) {
		if stopper != nil {
			ab.stopper = stopper
		}
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		evaluate: game.EvaluateMaterial,
		metrics:  metrics.NewDummyCollector(),
		stopper:  NewStopper(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) Stopper() *Stopper {
	return ab.stopper
}

// BestMove is Search without the metrics.
func (ab *AlphaBeta) BestMove(state *game.GameState, color game.Stone, depth int) MoveInfo {
	move, _ := ab.Search(state, color, depth)
	return move
}

// Search looks depth plies ahead and returns color's best move, NoMove if color
// cannot move. A depth below 1 searches one ply. The stop flag is cleared on
// entry; once it is raised the search unwinds and the best root move among the
// fully searched ones is returned, the first move if none finished.
// The state is left exactly as it was given.
func (ab *AlphaBeta) Search(state *game.GameState, color game.Stone, depth int) (MoveInfo, metrics.SearchMetric) {
	if depth < 1 {
		depth = 1
	}
	ab.stopper.Reset()
	ab.metrics.Start(depth)
	ab.metrics.AddNode()

	moves := state.Moves(color)
	if moves.Len() == 0 {
		return NoMove, ab.metrics.Complete()
	}

	alpha, beta := -state.Cells(), state.Cells()
	best := 0
	for i, c := range moves.All() {
		if ab.stopped() {
			break
		}
		undo := state.Play(c, color)
		score, complete := ab.minValue(state, color, color.Other(), depth-1, alpha, beta)
		state.Revert(undo)

		// a subtree cut short by the stop flag is not scored
		if !complete {
			break
		}
		if score > alpha {
			alpha = score
			best = i
		}
	}

	move := MoveInfo{Pos: moves.At(best).Pos, Index: best, Score: alpha}
	metric := ab.metrics.Complete()
	log.Debug().Msgf("%s searched depth %d: picked %v (index %d, score %d) after %d nodes, %d cutoffs, stopped=%s",
		color, depth, move.Pos, move.Index, move.Score, metric.Nodes, metric.Cutoffs, metric.Stopped)
	return move, metric
}

// maxValue scores a node where toMove is the root color. The second result is
// false when the stop flag cut the subtree short.
func (ab *AlphaBeta) maxValue(state *game.GameState, root, toMove game.Stone, depth, alpha, beta int) (int, bool) {
	ab.metrics.AddNode()
	if ab.stopped() {
		return 0, false
	}
	if depth == 0 {
		return ab.leaf(state, root), true
	}

	moves := state.Moves(toMove)
	if moves.Len() == 0 {
		if state.Moves(toMove.Other()).Len() == 0 {
			return ab.leaf(state, root), true
		}
		// pass: the opponent moves again at the same depth
		return ab.minValue(state, root, toMove.Other(), depth, alpha, beta)
	}

	value := math.MinInt
	for i, c := range moves.All() {
		if i > 0 && ab.stopped() {
			return value, false
		}
		undo := state.Play(c, toMove)
		score, complete := ab.minValue(state, root, toMove.Other(), depth-1, alpha, beta)
		state.Revert(undo)
		if !complete {
			return value, false
		}

		value = max(value, score)
		alpha = max(alpha, value)
		if alpha >= beta {
			ab.metrics.AddCutoff()
			break
		}
	}
	return value, true
}

// minValue scores a node where toMove is the root color's opponent.
func (ab *AlphaBeta) minValue(state *game.GameState, root, toMove game.Stone, depth, alpha, beta int) (int, bool) {
	ab.metrics.AddNode()
	if ab.stopped() {
		return 0, false
	}
	if depth == 0 {
		return ab.leaf(state, root), true
	}

	moves := state.Moves(toMove)
	if moves.Len() == 0 {
		if state.Moves(toMove.Other()).Len() == 0 {
			return ab.leaf(state, root), true
		}
		return ab.maxValue(state, root, toMove.Other(), depth, alpha, beta)
	}

	value := math.MaxInt
	for i, c := range moves.All() {
		if i > 0 && ab.stopped() {
			return value, false
		}
		undo := state.Play(c, toMove)
		score, complete := ab.maxValue(state, root, toMove.Other(), depth-1, alpha, beta)
		state.Revert(undo)
		if !complete {
			return value, false
		}

		value = min(value, score)
		beta = min(beta, value)
		if alpha >= beta {
			ab.metrics.AddCutoff()
			break
		}
	}
	return value, true
}

func (ab *AlphaBeta) leaf(state *game.GameState, root game.Stone) int {
	ab.metrics.AddLeaf()
	return ab.evaluate(state, root)
}

func (ab *AlphaBeta) stopped() bool {
	if ab.stopper.Stopped() {
		ab.metrics.Interrupted()
		return true
	}
	return false
}
