package game

// EvaluateMaterial counts own stones minus opponent stones. It ignores position
// entirely, so corners and edges are worth the same as any other cell.
func EvaluateMaterial(gs *GameState, color Stone) int {
	return gs.Score(color)
}

// EvaluateMobility adds the difference in legal move counts to the material score.
// It enumerates moves for both colors, so it refreshes the GameOver cache.
func EvaluateMobility(gs *GameState, color Stone) int {
	own := gs.Moves(color).Len()
	opp := gs.Moves(color.Other()).Len()
	return gs.Score(color) + own - opp
}
