package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"reversi/game"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// AgentSummary aggregates every game an agent took part in.
type AgentSummary struct {
	Agent    AgentConfig
	Games    int
	Wins     int
	Draws    int
	Moves    int
	AvgNodes float64 // per searched move
}

func (s AgentSummary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Summarize folds game and move records into one summary per agent config, in config order.
func Summarize(configs []AgentConfig, games []GameRecord, moves []MoveRecord) []AgentSummary {
	index := make(map[int]int, len(configs))
	summaries := make([]AgentSummary, len(configs))
	for i, config := range configs {
		index[config.ID] = i
		summaries[i].Agent = config
	}

	// which agent played which color in which game
	seats := make(map[int][3]int, len(games))
	nodes := make([]int, len(configs))
	for _, g := range games {
		seats[g.ID] = [3]int{game.Black: g.Agent1, game.White: g.Agent2}
		for _, color := range []game.Stone{game.Black, game.White} {
			i, ok := index[seats[g.ID][color]]
			if !ok {
				continue
			}
			summaries[i].Games++
			switch g.Winner {
			case color:
				summaries[i].Wins++
			case game.Empty:
				summaries[i].Draws++
			}
		}
	}

	for _, m := range moves {
		if m.Passed {
			continue
		}
		seat, ok := seats[m.Game]
		if !ok {
			continue
		}
		i, ok := index[seat[m.Player]]
		if !ok {
			continue
		}
		summaries[i].Moves++
		nodes[i] += m.Nodes
	}
	for i := range summaries {
		if summaries[i].Moves > 0 {
			summaries[i].AvgNodes = float64(nodes[i]) / float64(summaries[i].Moves)
		}
	}
	return summaries
}

// WriteChart renders win rate and search effort per agent as an HTML page in the run directory.
func (w *Writer) WriteChart(title string, summaries []AgentSummary) (string, error) {
	labels := make([]string, 0, len(summaries))
	winRates := make([]opts.BarData, 0, len(summaries))
	avgNodes := make([]opts.LineData, 0, len(summaries))
	for _, s := range summaries {
		labels = append(labels, fmt.Sprintf("agent %d (depth %d)", s.Agent.ID, s.Agent.Depth))
		winRates = append(winRates, opts.BarData{Value: s.WinRate()})
		avgNodes = append(avgNodes, opts.LineData{Value: s.AvgNodes})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "win rate"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	bar.SetXAxis(labels).AddSeries("win rate", winRates)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "nodes per move"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	line.SetXAxis(labels).AddSeries("nodes per move", avgNodes)

	page := components.NewPage()
	page.AddCharts(bar, line)

	path := filepath.Join(w.baseDir, "summary.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err = page.Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return path, nil
}
