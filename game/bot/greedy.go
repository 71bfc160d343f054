// Package bot provides automatic players used by the analysis tools and as a
// reference opponent for presenters.
package bot

import (
	"context"
	"math"

	"github.com/wricardo/shadok-gibby/game/command"
	"github.com/wricardo/shadok-gibby/game/engine"
)

// Greedy walks toward the nearest flower. Cells held by enemies are avoided
// and a direction that would not change the player's cell is never chosen
// while another one exists.
type Greedy struct{}

// Next picks the direction for the current state
func (Greedy) Next(state engine.State, config *engine.Config) engine.Direction {
	player := state.Player.Position
	target, hasTarget := nearestFlower(state)

	best, bestDist := engine.None, math.MaxInt
	for _, d := range engine.Directions[1:] {
		to := clampToBoard(player.Add(d.Vector()), config)
		if to == player || engine.EnemyIndexAt(state.Enemies, to) >= 0 {
			continue
		}
		if !hasTarget {
			return d
		}
		if dist := engine.ChebyshevDistance(to, target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// nearestFlower returns the flower closest to the player, lowest slot first
func nearestFlower(state engine.State) (engine.Position, bool) {
	var target engine.Position
	found := false
	bestDist := math.MaxInt
	for _, pos := range state.Flowers.Positions {
		if dist := engine.ChebyshevDistance(state.Player.Position, pos); dist < bestDist {
			target, bestDist, found = pos, dist, true
		}
	}
	return target, found
}

func clampToBoard(pos engine.Position, config *engine.Config) engine.Position {
	return engine.Position{
		X: min(max(pos.X, 0), config.FieldWidth-1),
		Y: min(max(pos.Y, 0), config.FieldHeight-1),
	}
}

// Presenter lets a policy play through the driver loop. It quits once the
// game is over or after MaxTurns commands.
type Presenter struct {
	Policy   Greedy
	Config   *engine.Config
	MaxTurns int

	state engine.State
	turns int
}

// NewPresenter creates a bot presenter for games played with config
func NewPresenter(config *engine.Config, maxTurns int) *Presenter {
	return &Presenter{Config: config, MaxTurns: maxTurns}
}

// Render records the state the next command is computed from
func (p *Presenter) Render(_ context.Context, state engine.State) error {
	p.state = state.Clone()
	return nil
}

// PollCommand returns the policy's next move, or Quit when done
func (p *Presenter) PollCommand(ctx context.Context) (command.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.state.Status.IsTerminal() || p.turns >= p.MaxTurns {
		return command.Quit{}, nil
	}
	p.turns++
	return command.Move{Direction: p.Policy.Next(p.state, p.Config)}, nil
}

// State returns the last rendered state
func (p *Presenter) State() engine.State {
	return p.state
}

// Turns returns the number of moves issued
func (p *Presenter) Turns() int {
	return p.turns
}
