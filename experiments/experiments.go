package experiments

import (
	"fmt"
	"reversi/config"
	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/player"
	"reversi/searcher"

	"github.com/rs/zerolog/log"
)

// Settings shared by every experiment run.
type Settings struct {
	BoardSize int
	config.ExperimentConfig
}

// RunDepthExperiment pairs the shallowest configured depth against every
// configured depth, itself included, and records who wins and how much each
// search costs. Colors alternate between games. It returns the output directory.
func RunDepthExperiment(s Settings) (string, error) {
	if len(s.Depths) == 0 {
		return "", fmt.Errorf("no depths to compare")
	}

	configs := make([]metrics.AgentConfig, 0, len(s.Depths))
	for i, depth := range s.Depths {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Depth: depth, Evaluate: s.Evaluate})
	}
	baseline := metrics.AgentConfig{ID: 0, Depth: configs[0].Depth, Evaluate: s.Evaluate}

	// Each matchup pairs the baseline agent against a deeper agent
	matchUps := [][]metrics.AgentConfig{}
	for _, agent := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, agent})
	}

	return runExperiment("depth", s, append(configs, baseline), matchUps)
}

func runExperiment(name string, s Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < s.Games; i++ {
			// Alternate which agent plays black
			black, white := matchup[0], matchup[1]
			if i%2 == 1 {
				black, white = white, black
			}
			seed := s.Seed + uint64(count)

			gameMetric, moveMetrics, err := runGame(s, black, white, seed)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     black.ID,
				Agent2:     white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(matchUps), i+1, s.Games, gameMetric.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(s.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	chart, err := writer.WriteChart(name, metrics.Summarize(configs, gameRecords, moveRecords))
	if err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	log.Info().Msgf("stored %d games and %d moves in %s, chart at %s", len(gameRecords), len(moveRecords), writer.Dir(), chart)

	return writer.Dir(), nil
}

// runGame plays one game without a display. Both agents open with random moves
// drawn from seed so repeated games diverge.
func runGame(s Settings, black, white metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := game.New(s.BoardSize)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	// one search engine serves both agents, they share the experiment's evaluation
	ctrl := engine.NewController(state, nil, searcher.WithEvaluationFn(black.EvaluateFn()))
	random := player.NewRandom(seed)

	blackAgent := &player.Opening{Plies: s.OpeningPlies / 2, Random: random, Then: &player.Computer{Depth: black.Depth}}
	whiteAgent := &player.Opening{Plies: s.OpeningPlies - s.OpeningPlies/2, Random: random, Then: &player.Computer{Depth: white.Depth}}

	return engine.NewLocalEngine(ctrl, blackAgent, whiteAgent, game.White).Run()
}
