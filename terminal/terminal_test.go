package terminal

import (
	"bytes"
	"errors"
	"io"
	"reversi/board"
	"reversi/engine"
	"reversi/game"
	"reversi/player"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ engine.Display = (*Grid)(nil)
var _ engine.Renderable = (*Grid)(nil)
var _ player.Input = (*Input)(nil)

func TestGridRender(t *testing.T) {
	var screen bytes.Buffer
	grid, err := NewGrid(4, &screen, false)
	require.NoError(t, err)

	state, err := game.New(4)
	require.NoError(t, err)
	ctrl := engine.NewController(state, grid)

	var out bytes.Buffer
	require.NoError(t, grid.Render(&out))
	require.Equal(t, strings.Join([]string{
		" 3 . . . . ",
		" 2 . O X . ",
		" 1 . X O . ",
		" 0 . . . . ",
		"   0 1 2 3 ",
		"",
		"",
	}, "\n"), out.String())

	t.Run("candidates show their value", func(t *testing.T) {
		require.True(t, ctrl.PrepareTurn(game.White))
		grid.Status("Move for WHITE...")

		out.Reset()
		require.NoError(t, grid.Render(&out))
		lines := strings.Split(out.String(), "\n")
		// White can take (1,1) from (0,1) or (1,0) and (2,2) from (2,3) or (3,2).
		require.Equal(t, " 3 . . 1 . ", lines[0])
		require.Equal(t, " 2 . O X 1 ", lines[1])
		require.Equal(t, " 1 1 X O . ", lines[2])
		require.Equal(t, " 0 . 1 . . ", lines[3])
		require.Equal(t, "Move for WHITE...", lines[5])
		require.NotZero(t, screen.Len(), "Status should redraw the screen")
	})

	t.Run("applied move clears the marks", func(t *testing.T) {
		require.True(t, ctrl.ApplySelectedMove(game.White))

		out.Reset()
		require.NoError(t, grid.Render(&out))
		lines := strings.Split(out.String(), "\n")
		require.Equal(t, " 1 O O O . ", lines[2])
		require.NotContains(t, out.String(), "1 .")
	})

	t.Run("help replaces the board", func(t *testing.T) {
		grid.ShowHelp(HelpText)
		out.Reset()
		require.NoError(t, grid.Render(&out))
		require.True(t, strings.HasPrefix(out.String(), HelpText[0]))

		grid.HideHelp()
		out.Reset()
		require.NoError(t, grid.Render(&out))
		require.True(t, strings.HasPrefix(out.String(), " 3 "))
	})

	t.Run("colors", func(t *testing.T) {
		colored, err := NewGrid(4, io.Discard, true)
		require.NoError(t, err)
		colored.SetCell(board.Pos{X: 0, Y: 0}, game.Black)
		out.Reset()
		require.NoError(t, colored.Render(&out))
		require.Contains(t, out.String(), "\x1b[")
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewGrid(5, io.Discard, false)
		require.ErrorIs(t, err, board.ErrBoardSize)
	})
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want player.Command
	}{
		{"", player.CommandApply},
		{"\r", player.CommandApply},
		{" ", player.CommandNext},
		{"n", player.CommandNext},
		{"U", player.CommandUndo},
		{"h", player.CommandHelp},
		{"c", player.CommandCancel},
		{" q ", player.CommandQuit},
	}
	for _, tt := range tests {
		cmd, ok := ParseCommand(tt.line)
		require.True(t, ok, "line %q", tt.line)
		require.Equal(t, tt.want, cmd, "line %q", tt.line)
	}

	_, ok := ParseCommand("xyzzy")
	require.False(t, ok)
}

func TestInput(t *testing.T) {
	t.Run("commands and interrupts", func(t *testing.T) {
		in := NewInput(strings.NewReader("n\nc\nbogus\n\nq\n"))

		cmd, err := in.Next()
		require.NoError(t, err)
		require.Equal(t, player.CommandNext, cmd)

		cmd, err = in.Next()
		require.NoError(t, err)
		require.Equal(t, player.CommandApply, cmd, "Cancel and unknown lines are not commands")

		select {
		case <-in.Interrupts():
		case <-time.After(time.Second):
			t.Fatal("cancel did not raise an interrupt")
		}

		cmd, err = in.Next()
		require.NoError(t, err)
		require.Equal(t, player.CommandQuit, cmd)

		_, err = in.Next()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("read error", func(t *testing.T) {
		broken := errors.New("broken")
		in := NewInput(io.MultiReader(strings.NewReader("u\n"), &failingReader{err: broken}))

		cmd, err := in.Next()
		require.NoError(t, err)
		require.Equal(t, player.CommandUndo, cmd)

		_, err = in.Next()
		require.ErrorIs(t, err, broken)
	})
}

func TestCancelAfterTypeAhead(t *testing.T) {
	r, w := io.Pipe()
	in := NewInput(r)

	state, err := game.New(10)
	require.NoError(t, err)
	ctrl := engine.NewController(state, nil)
	c := &player.Computer{Depth: 40, Interrupt: in.Interrupts(), Flush: in.Flush}

	done := make(chan engine.Action, 1)
	go func() {
		action, _ := c.Choose(ctrl, game.White)
		done <- action
	}()
	require.Eventually(t, ctrl.Searching, time.Second, time.Millisecond)

	go func() {
		// lines typed while thinking must not hold up the cancel behind them
		w.Write([]byte("n\n\nu\nc\n"))
		w.Close()
	}()

	select {
	case action := <-done:
		require.Equal(t, engine.ActionMove, action)
	case <-time.After(5 * time.Second):
		ctrl.Cancel()
		t.Fatal("c typed after other lines did not stop the search")
	}
	require.GreaterOrEqual(t, ctrl.Selected(), 0)

	_, err = in.Next()
	require.ErrorIs(t, err, io.EOF, "Lines typed while thinking are discarded")
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
