package terminal

import (
	"bufio"
	"fmt"
	"io"
	"reversi/player"
	"strings"

	"github.com/rs/zerolog/log"
)

// pendingCommands bounds the lines queued while nobody reads commands.
const pendingCommands = 16

// Input turns lines from a reader into player commands. A line holding only
// "c" goes to the interrupt channel instead, so it can stop a search while no
// one is reading commands. The reader never blocks: lines beyond the queue
// are dropped.
type Input struct {
	commands   chan player.Command
	interrupts chan struct{}
	err        error
}

func NewInput(r io.Reader) *Input {
	in := &Input{
		commands:   make(chan player.Command, pendingCommands),
		interrupts: make(chan struct{}, 1),
	}
	go in.read(r)
	return in
}

func (in *Input) read(r io.Reader) {
	defer close(in.commands)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, ok := ParseCommand(scanner.Text())
		if !ok {
			log.Debug().Msgf("ignoring input %q", scanner.Text())
			continue
		}
		if cmd == player.CommandCancel {
			select {
			case in.interrupts <- struct{}{}:
			default: // one pending interrupt is enough
			}
			continue
		}
		select {
		case in.commands <- cmd:
		default:
			log.Debug().Msgf("dropping input %q, too many pending commands", scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		in.err = fmt.Errorf("read input: %w", err)
	}
}

// Next blocks for the next command. It returns io.EOF when the reader is exhausted.
func (in *Input) Next() (player.Command, error) {
	cmd, ok := <-in.commands
	if !ok {
		if in.err != nil {
			return 0, in.err
		}
		return 0, io.EOF
	}
	return cmd, nil
}

func (in *Input) Interrupts() <-chan struct{} {
	return in.interrupts
}

// Flush drops queued commands and interrupts, typically lines typed while the
// computer was thinking.
func (in *Input) Flush() {
	for {
		select {
		case cmd, ok := <-in.commands:
			if !ok {
				return
			}
			log.Debug().Msgf("discarding queued command %d", cmd)
		case <-in.interrupts:
		default:
			return
		}
	}
}

// ParseCommand maps one input line to a command: an empty line applies, a
// blank line or n selects the next move, and u, h, c and q undo, show help,
// cancel and quit.
func ParseCommand(line string) (player.Command, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return player.CommandApply, true
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "n":
		return player.CommandNext, true
	case "u":
		return player.CommandUndo, true
	case "h", "?":
		return player.CommandHelp, true
	case "c":
		return player.CommandCancel, true
	case "q":
		return player.CommandQuit, true
	}
	return 0, false
}

// HelpText is shown by the h command.
var HelpText = []string{
	"Simple game of REVERSI",
	"",
	"The status line shows a C(ounter), the W(hite) and",
	"B(lack) stone counts and the V(alue) of the best move",
	"",
	"Empty cells are dots, X is black and O is white",
	"",
	"Valid moves are marked by the stones they capture,",
	"'0'..'9' or '+', the selected one is printed RED.",
	"The move capturing most is preselected.",
	"",
	"Type a line and press ENTER:",
	"  h      help",
	"  q      quit",
	"  n      select the next move",
	"  (none) play the selected move",
	"  u      undo a move",
	"  c      stop the computer thinking",
	"",
	"Press ENTER to continue...",
}
