package experiments

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// RunThroughputExperiment times searches at every configured depth from the
// same set of random mid-game positions, one position per game.
// It returns the output directory.
func RunThroughputExperiment(s Settings) (string, error) {
	positions, err := randomPositions(s)
	if err != nil {
		return "", err
	}

	configs := []metrics.AgentConfig{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msg("starting throughput experiment...")

	for i, depth := range s.Depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Evaluate: s.Evaluate}
		configs = append(configs, config)
		ab := searcher.NewAlphaBeta(searcher.WithMetrics(), searcher.WithEvaluationFn(config.EvaluateFn()))

		nodes := 0
		var elapsed float64
		for pi, p := range positions {
			_, metric := ab.Search(p.state, p.color, depth)
			nodes += metric.Nodes
			elapsed += metric.Duration.Seconds()
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       pi + 1,
				MoveMetric: metrics.MoveMetric{Step: config.ID, Player: p.color, SearchMetric: metric},
			})
		}

		rate := 0.0
		if elapsed > 0 {
			rate = float64(nodes) / elapsed
		}
		log.Info().Msgf("depth %d: %d nodes over %d positions, %.0f nodes/s", depth, nodes, len(positions), rate)
	}

	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter(s.OutputDir, "throughput")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %d searches in %s", len(moveRecords), writer.Dir())

	return writer.Dir(), nil
}

type position struct {
	state *game.GameState
	color game.Stone
}

// randomPositions plays 2*OpeningPlies random moves from the start for each
// game and keeps positions where the side to move has a choice.
func randomPositions(s Settings) ([]position, error) {
	rng := rand.New(rand.NewSource(s.Seed))
	positions := make([]position, 0, s.Games)
	for attempt := 0; len(positions) < s.Games && attempt < 100*s.Games; attempt++ {
		state, err := game.New(s.BoardSize)
		if err != nil {
			return nil, err
		}
		color := game.White
		for ply := 0; ply < 2*s.OpeningPlies; ply++ {
			moves := state.Moves(color)
			if moves.Len() == 0 {
				break
			}
			state.Play(moves.At(rng.Intn(moves.Len())), color)
			color = color.Other()
		}
		if state.Moves(color).Len() > 1 {
			positions = append(positions, position{state: state, color: color})
		}
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no playable positions after %d random plies", 2*s.OpeningPlies)
	}
	return positions, nil
}
