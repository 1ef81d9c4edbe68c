// Package actions is the external surface of the engine: it lists the
// actions a player may take right now and executes named actions with
// id-based arguments.
package actions

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/registry"
)

var (
	// ErrUnknownAction is returned for action names no handler serves.
	ErrUnknownAction = errors.New("actions: unknown action")

	// ErrMissingArgument is returned when a request omits an id the
	// action cannot be resolved without.
	ErrMissingArgument = errors.New("actions: missing argument")

	// ErrInvalidArgument is returned for malformed argument tokens.
	ErrInvalidArgument = errors.New("actions: invalid argument")
)

// Dispatcher drives one game through the registered handlers.
// It is not safe for concurrent use; see multiplayer.Table.
type Dispatcher struct {
	game *engine.Game
}

// New returns a dispatcher for g.
func New(g *engine.Game) *Dispatcher {
	return &Dispatcher{game: g}
}

// Game returns the game being driven.
func (d *Dispatcher) Game() *engine.Game {
	return d.game
}

// AvailableActions returns, in action order, every action whose
// zero-argument check passes for player id.
func (d *Dispatcher) AvailableActions(id engine.PlayerID) ([]engine.Action, error) {
	p, err := d.game.Player(id)
	if err != nil {
		return nil, err
	}

	turn := d.game.Turn()
	var out []engine.Action
	for _, info := range registry.List() {
		if turn.Allows(p, info.Action).OK() {
			out = append(out, info.Action)
		}
	}
	return out, nil
}

// ExecuteAction performs the named action for player id.
func (d *Dispatcher) ExecuteAction(id engine.PlayerID, name string, args registry.Args) error {
	h, err := registry.Create(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	p, err := d.game.Player(id)
	if err != nil {
		return err
	}
	return h.Execute(d.game, p, args)
}
