// Package driver runs the turn loop between a presenter and the game service.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/wricardo/shadok-gibby/game/command"
	"github.com/wricardo/shadok-gibby/game/engine"
	"github.com/wricardo/shadok-gibby/game/service"
)

// Presenter shows the game and collects the player's commands. PollCommand
// blocks until a command is available; io.EOF means the input is exhausted
// and is treated as Quit.
type Presenter interface {
	Render(ctx context.Context, state engine.State) error
	PollCommand(ctx context.Context) (command.Command, error)
}

// Run starts a game in the session and alternates Render and PollCommand
// until the presenter quits or ctx is cancelled.
func Run(ctx context.Context, svc service.GameService, sessionID string, presenter Presenter) error {
	state, err := svc.Start(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := presenter.Render(ctx, *state); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		cmd, err := presenter.PollCommand(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("poll command: %w", err)
		}

		switch c := cmd.(type) {
		case command.Move:
			result, err := svc.Move(ctx, sessionID, c.Direction)
			if errors.Is(err, engine.ErrGameOver) {
				continue
			}
			if err != nil {
				return fmt.Errorf("move: %w", err)
			}
			state = &result.GameState
		case command.Start:
			if state, err = svc.Start(ctx, sessionID); err != nil {
				return fmt.Errorf("start game: %w", err)
			}
		case command.Quit:
			return nil
		default:
			return fmt.Errorf("unsupported command %T", cmd)
		}
	}
}
