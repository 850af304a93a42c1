package config

import (
	"errors"
	"fmt"
	"os"
	"reversi/board"
	"reversi/game"
	"reversi/meta"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDepth    = errors.New("invalid search depth")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidGames    = errors.New("invalid number of experiment games")
)

type Config struct {
	BoardSize  int              `yaml:"board_size"`
	Depth      int              `yaml:"depth"`
	Start      string           `yaml:"start"`    // white or black
	Computer   string           `yaml:"computer"` // white, black, both or none
	LogLevel   string           `yaml:"log_level"`
	LogFile    string           `yaml:"log_file"` // empty logs to stderr
	Experiment ExperimentConfig `yaml:"experiment"`
}

type ExperimentConfig struct {
	Games        int    `yaml:"games"` // per match up
	Depths       []int  `yaml:"depths"`
	Evaluate     string `yaml:"evaluate"` // material or mobility
	OpeningPlies int    `yaml:"opening_plies"`
	Seed         uint64 `yaml:"seed"`
	OutputDir    string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		BoardSize: meta.BOARD_SIZE,
		Depth:     meta.SEARCH_DEPTH,
		Start:     meta.START_COLOR,
		Computer:  meta.COMPUTER_COLOR,
		LogLevel:  "info",
		Experiment: ExperimentConfig{
			Games:        meta.EXPERIMENT_GAMES,
			Depths:       []int{1, 2, 3, 4},
			Evaluate:     "material",
			OpeningPlies: meta.OPENING_PLIES,
			Seed:         1,
			OutputDir:    meta.EXPERIMENT_DIR,
		},
	}
}

// Load is Read followed by Validate.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Read reads path over the defaults and applies environment overrides without
// validating, so callers can layer further overrides first. An empty path
// skips the file.
func Read(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides fields from REVERSI_* variables. Malformed numbers are ignored.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("REVERSI_BOARD_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BoardSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("REVERSI_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Depth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("REVERSI_START")); v != "" {
		c.Start = v
	}
	if v := strings.TrimSpace(os.Getenv("REVERSI_COMPUTER")); v != "" {
		c.Computer = v
	}
	if v := strings.TrimSpace(os.Getenv("REVERSI_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
}

func (c Config) Validate() error {
	if err := board.ValidateSize(c.BoardSize); err != nil {
		return fmt.Errorf("board_size: %w", err)
	}
	if err := validateDepth(c.Depth); err != nil {
		return fmt.Errorf("depth: %w", err)
	}
	if _, ok := game.ParseStone(c.Start); !ok {
		return fmt.Errorf("start: %w: %q", ErrInvalidColor, c.Start)
	}
	if _, _, err := parseComputer(c.Computer); err != nil {
		return fmt.Errorf("computer: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Experiment.Games < 1 {
		return fmt.Errorf("experiment.games: %w: %d", ErrInvalidGames, c.Experiment.Games)
	}
	for _, depth := range c.Experiment.Depths {
		if err := validateDepth(depth); err != nil {
			return fmt.Errorf("experiment.depths: %w", err)
		}
	}
	return nil
}

func validateDepth(depth int) error {
	if depth < 1 || depth > meta.MAX_DEPTH {
		return fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidDepth, depth, meta.MAX_DEPTH)
	}
	return nil
}

// StartColor is the color that moves first. Only valid after Validate.
func (c Config) StartColor() game.Stone {
	color, _ := game.ParseStone(c.Start)
	return color
}

// ComputerPlays reports which colors the computer controls. Only valid after Validate.
func (c Config) ComputerPlays() (black, white bool) {
	black, white, _ = parseComputer(c.Computer)
	return black, white
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func parseComputer(s string) (black, white bool, err error) {
	switch strings.ToLower(s) {
	case "none", "":
		return false, false, nil
	case "both":
		return true, true, nil
	}
	color, ok := game.ParseStone(s)
	if !ok {
		return false, false, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color == game.Black, color == game.White, nil
}
