package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"reversi/config"
	"reversi/engine"
	"reversi/experiments"
	"reversi/game"
	"reversi/player"
	"reversi/terminal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	size := flag.Int("size", 0, "Board size, even from 4 to 10")
	depth := flag.Int("depth", 0, "Search depth in plies")
	start := flag.String("start", "", "Color that moves first: white or black")
	computer := flag.String("computer", "", "Colors the computer plays: white, black, both or none")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stderr")
	experiment := flag.String("experiment", "", "Run an experiment instead of a game: depth or throughput")
	noColor := flag.Bool("no-color", false, "Draw the board without colors")
	flag.Parse()

	cfg, err := config.Read(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	// flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.BoardSize = *size
		case "depth":
			cfg.Depth = *depth
		case "start":
			cfg.Start = *start
		case "computer":
			cfg.Computer = *computer
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if *experiment != "" {
		if err := runExperiment(*experiment, cfg); err != nil {
			log.Error().Err(err).Msg("experiment failed")
			closeLog()
			os.Exit(1)
		}
		return
	}

	if err := play(cfg, !*noColor); err != nil {
		log.Error().Err(err).Msg("game failed")
		closeLog()
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) (func(), error) {
	zerolog.SetGlobalLevel(cfg.Level())
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	closeLog := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = zerolog.ConsoleWriter{Out: f, NoColor: true}
		closeLog = func() { f.Close() }
	}
	log.Logger = log.Output(out)
	return closeLog, nil
}

func runExperiment(name string, cfg config.Config) error {
	settings := experiments.Settings{BoardSize: cfg.BoardSize, ExperimentConfig: cfg.Experiment}

	var dir string
	var err error
	switch name {
	case "depth":
		dir, err = experiments.RunDepthExperiment(settings)
	case "throughput":
		dir, err = experiments.RunThroughputExperiment(settings)
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		return err
	}
	fmt.Printf("results written to %s\n", dir)
	return nil
}

func play(cfg config.Config, colors bool) error {
	state, err := game.New(cfg.BoardSize)
	if err != nil {
		return err
	}
	grid, err := terminal.NewGrid(cfg.BoardSize, os.Stdout, colors)
	if err != nil {
		return err
	}
	input := terminal.NewInput(os.Stdin)
	ctrl := engine.NewController(state, grid)

	help := func() {
		grid.ShowHelp(terminal.HelpText)
		for {
			cmd, err := input.Next()
			if err != nil || cmd == player.CommandApply {
				break
			}
		}
		grid.HideHelp()
	}

	computer := &player.Computer{Depth: cfg.Depth, Interrupt: input.Interrupts(), Flush: input.Flush}
	human := &player.Human{Input: input, OnHelp: help}

	agents := [3]engine.Agent{game.Black: human, game.White: human}
	computerBlack, computerWhite := cfg.ComputerPlays()
	if computerBlack {
		agents[game.Black] = computer
	}
	if computerWhite {
		agents[game.White] = computer
	}

	e := engine.NewLocalEngine(ctrl, agents[game.Black], agents[game.White], cfg.StartColor())
	computer.OnThink = func(color game.Stone) {
		e.Status(fmt.Sprintf("Calculating %s... type c to abort", color))
	}

	grid.EnterAltScreen()
	help()
	gameMetric, _, err := e.Run()
	grid.ExitAltScreen()
	if err != nil {
		return err
	}

	white, black := ctrl.Counts()
	if !gameMetric.Finished {
		fmt.Printf("Game abandoned at white %d, black %d\n", white, black)
		return nil
	}
	if gameMetric.Winner == game.Empty {
		fmt.Printf("Draw at %d all after %d moves\n", white, gameMetric.TotalMoves)
		return nil
	}
	fmt.Printf("%s wins %d to %d after %d moves\n", gameMetric.Winner, max(white, black), min(white, black), gameMetric.TotalMoves)
	return nil
}
