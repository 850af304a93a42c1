package engine

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	ctrl    *Controller
	agents  [3]Agent // indexed by game.Stone
	start   game.Stone
	counter int
}

// NewLocalEngine plays black against white on ctrl's state, start moving first.
func NewLocalEngine(ctrl *Controller, black, white Agent, start game.Stone) *LocalEngine {
	if ctrl == nil {
		panic("engine needs a controller")
	}
	if black == nil || white == nil {
		panic("need an agent for each color")
	}
	if start == game.Empty {
		panic("starting color must be black or white")
	}

	e := &LocalEngine{
		ctrl:  ctrl,
		start: start,
	}
	e.agents[game.Black] = black
	e.agents[game.White] = white
	return e
}

// Status writes the status line: a message counter, both stone counts, the best
// capture available to the current list, and msg.
func (e *LocalEngine) Status(msg string) {
	e.counter++
	white, black := e.ctrl.Counts()
	e.ctrl.display.Status(fmt.Sprintf("C=%d W=%2d B=%2d V=%2d - %s", e.counter, white, black, e.ctrl.PossibleFlips(), msg))
}

// Run executes the game loop until the game is over or an agent quits.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.start,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.start)

	color := e.start
	step := 1
	finished := false
	for turn := 0; turn < MaxMoves; turn++ {
		canMove := e.ctrl.PrepareTurn(color)

		if e.ctrl.Ended() {
			e.Status("Game Over!")
			finished = true
			break
		}
		if !canMove {
			e.Status(fmt.Sprintf("%s No Move", strings.ToUpper(color.String())))
			log.Debug().Msgf("%s has no move and passes", color)
			moveMetrics = append(moveMetrics, metrics.MoveMetric{Step: step, Player: color, Passed: true})
			color = color.Other()
			continue
		}

		e.Status(fmt.Sprintf("Move for %s...", strings.ToUpper(color.String())))
		action, err := e.agents[color].Choose(e.ctrl, color)
		if err != nil {
			return e.complete(gameMetric, step-1, false), moveMetrics, fmt.Errorf("%s failed to choose a move: %w", color, err)
		}

		switch action {
		case ActionMove:
			if !e.ctrl.ApplySelectedMove(color) {
				return e.complete(gameMetric, step-1, false), moveMetrics, fmt.Errorf("%s chose a move that could not be applied", color)
			}
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       color,
				SearchMetric: e.ctrl.TakeSearchMetrics(),
			})
			step++
			color = color.Other()

		case ActionUndo:
			undone := e.undoTurn(color)
			if undone == 0 {
				e.Status("Nothing to undo")
				continue
			}
			step -= undone
			// the undone moves drop out of the record, passes in between stay
			for len(moveMetrics) > 0 && undone > 0 {
				last := moveMetrics[len(moveMetrics)-1]
				moveMetrics = moveMetrics[:len(moveMetrics)-1]
				if !last.Passed {
					undone--
				}
			}
			if e.ctrl.History() == 0 {
				color = e.start
			}

		case ActionQuit:
			log.Info().Msgf("%s quit the game", color)
			return e.complete(gameMetric, step-1, false), moveMetrics, nil
		}
	}

	gameMetric = e.complete(gameMetric, step-1, finished)
	if finished {
		log.Info().Msgf("game over after %d moves: winner %s (white %d, black %d)",
			gameMetric.TotalMoves, gameMetric.Winner, gameMetric.WhiteCount, gameMetric.BlackCount)
	} else {
		log.Warn().Msgf("stopped after %d turns without a result", MaxMoves)
	}
	return gameMetric, moveMetrics, nil
}

// undoTurn takes back moves until color's own last move is undone, so color is
// to move again. Returns how many moves were undone.
func (e *LocalEngine) undoTurn(color game.Stone) int {
	undone := 0
	for {
		mover, ok := e.ctrl.LastMover()
		if !ok || !e.ctrl.UndoLastMove() {
			return undone
		}
		undone++
		if mover == color {
			return undone
		}
	}
}

func (e *LocalEngine) complete(gameMetric metrics.GameMetric, moves int, finished bool) metrics.GameMetric {
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	gameMetric.WhiteCount, gameMetric.BlackCount = e.ctrl.Counts()
	gameMetric.Finished = finished
	if finished {
		gameMetric.Winner = e.ctrl.State().Winner()
	}
	return gameMetric
}
