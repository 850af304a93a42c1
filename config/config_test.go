package config

import (
	"os"
	"path/filepath"
	"reversi/board"
	"reversi/game"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reversi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 8, cfg.BoardSize)
	require.Equal(t, 5, cfg.Depth)
	require.Equal(t, game.White, cfg.StartColor())

	black, white := cfg.ComputerPlays()
	require.False(t, black)
	require.True(t, white)
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default().BoardSize, cfg.BoardSize)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
board_size: 6
depth: 3
start: black
computer: both
log_level: debug
experiment:
  games: 2
  depths: [1, 3]
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 6, cfg.BoardSize)
		require.Equal(t, 3, cfg.Depth)
		require.Equal(t, game.Black, cfg.StartColor())
		require.Equal(t, zerolog.DebugLevel, cfg.Level())
		require.Equal(t, []int{1, 3}, cfg.Experiment.Depths)
		require.Equal(t, "material", cfg.Experiment.Evaluate, "Unset fields keep their default")

		black, white := cfg.ComputerPlays()
		require.True(t, black)
		require.True(t, white)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "depth: 3\n")
		t.Setenv("REVERSI_DEPTH", "7")
		t.Setenv("REVERSI_BOARD_SIZE", "10")
		t.Setenv("REVERSI_COMPUTER", "none")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 7, cfg.Depth)
		require.Equal(t, 10, cfg.BoardSize)

		black, white := cfg.ComputerPlays()
		require.False(t, black)
		require.False(t, white)
	})

	t.Run("read leaves validation to the caller", func(t *testing.T) {
		t.Setenv("REVERSI_DEPTH", "0")

		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalidDepth)

		cfg, err := Read("")
		require.NoError(t, err)
		require.Equal(t, 0, cfg.Depth)

		cfg.Depth = 4 // a command line flag fixes it
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "depth: [oops"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"odd board", func(c *Config) { c.BoardSize = 7 }, board.ErrBoardSize},
		{"huge board", func(c *Config) { c.BoardSize = 12 }, board.ErrBoardSize},
		{"zero depth", func(c *Config) { c.Depth = 0 }, ErrInvalidDepth},
		{"deep depth", func(c *Config) { c.Depth = 99 }, ErrInvalidDepth},
		{"start color", func(c *Config) { c.Start = "red" }, ErrInvalidColor},
		{"computer color", func(c *Config) { c.Computer = "green" }, ErrInvalidColor},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
		{"experiment games", func(c *Config) { c.Experiment.Games = 0 }, ErrInvalidGames},
		{"experiment depth", func(c *Config) { c.Experiment.Depths = []int{2, 0} }, ErrInvalidDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}
