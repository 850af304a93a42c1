package engine

import (
	"reversi/experiments/metrics"
	"reversi/game"
)

// MaxMoves bounds a game loop against agents that keep undoing.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game until it is over, a player quits, or MaxMoves turns have been taken
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Action is what an agent decided to do with its turn.
type Action int

const (
	ActionMove Action = iota // apply the selected candidate
	ActionUndo               // take back moves until it is this agent's turn again
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionUndo:
		return "undo"
	case ActionQuit:
		return "quit"
	}
	return "unknown"
}

// Agent decides a turn. Choose is only called after PrepareTurn found a legal
// move for color; to move, the agent leaves its pick selected on the controller
// and returns ActionMove.
type Agent interface {
	Choose(ctrl *Controller, color game.Stone) (Action, error)
}
