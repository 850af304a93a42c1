package player

import (
	"errors"
	"fmt"
	"io"
	"reversi/engine"
	"reversi/game"

	"github.com/rs/zerolog/log"
)

var ErrNoComputedMove = errors.New("search returned no move")

// Command is one keystroke's worth of human input.
type Command int

const (
	CommandNext   Command = iota // highlight the next candidate
	CommandApply                 // play the highlighted candidate
	CommandUndo
	CommandQuit
	CommandHelp
	CommandCancel // stop a running search
)

// Input yields human commands. It returns io.EOF once no more input will come.
type Input interface {
	Next() (Command, error)
}

// Human plays whatever the input says.
type Human struct {
	Input  Input
	OnHelp func()
}

func (h *Human) Choose(ctrl *engine.Controller, color game.Stone) (engine.Action, error) {
	for {
		cmd, err := h.Input.Next()
		if errors.Is(err, io.EOF) {
			return engine.ActionQuit, nil
		}
		if err != nil {
			return engine.ActionQuit, fmt.Errorf("failed to read input: %w", err)
		}

		switch cmd {
		case CommandNext:
			ctrl.CycleSelection(color)
		case CommandApply:
			return engine.ActionMove, nil
		case CommandUndo:
			return engine.ActionUndo, nil
		case CommandQuit:
			return engine.ActionQuit, nil
		case CommandHelp:
			if h.OnHelp != nil {
				h.OnHelp()
			}
		}
	}
}

// Computer searches Depth plies ahead. Any value received on Interrupt while it
// is thinking stops the search early and plays the best move found so far;
// interrupts raised before the search starts are discarded.
type Computer struct {
	Depth     int
	Interrupt <-chan struct{}
	OnThink   func(color game.Stone) // called before the search starts
	Flush     func()                 // called after the search, drops input typed meanwhile
}

func (c *Computer) Choose(ctrl *engine.Controller, color game.Stone) (engine.Action, error) {
	if c.OnThink != nil {
		c.OnThink(color)
	}
	drain(c.Interrupt)
	if c.Flush != nil {
		defer c.Flush()
	}
	result, err := ctrl.ComputeMove(color, c.Depth)
	if err != nil {
		return engine.ActionQuit, fmt.Errorf("failed to start search: %w", err)
	}

	for {
		select {
		case info := <-result:
			if !ctrl.AdoptMove(color, info) {
				return engine.ActionQuit, ErrNoComputedMove
			}
			log.Debug().Msgf("%s computed %v", color, info.Pos)
			return engine.ActionMove, nil
		case <-c.Interrupt:
			log.Info().Msgf("interrupting %s search", color)
			ctrl.Cancel()
		}
	}
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
