package player

import (
	"reversi/engine"
	"reversi/game"

	"golang.org/x/exp/rand"
)

// Random picks a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Choose(ctrl *engine.Controller, color game.Stone) (engine.Action, error) {
	ctrl.SelectCandidate(color, r.rng.Intn(ctrl.Candidates().Len()))
	return engine.ActionMove, nil
}

// Opening plays its first Plies moves at random and then hands over to Then.
// Experiments use it so repeated games between the same agents differ.
type Opening struct {
	Plies  int
	Random *Random
	Then   engine.Agent

	played int
}

func (o *Opening) Choose(ctrl *engine.Controller, color game.Stone) (engine.Action, error) {
	if o.played < o.Plies {
		o.played++
		return o.Random.Choose(ctrl, color)
	}
	return o.Then.Choose(ctrl, color)
}
