package driver

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/shadok-gibby/game/command"
	"github.com/wricardo/shadok-gibby/game/engine"
	"github.com/wricardo/shadok-gibby/game/service"
	"github.com/wricardo/shadok-gibby/game/session"
)

// scriptedPresenter replays a fixed list of commands and records every
// rendered state.
type scriptedPresenter struct {
	commands []command.Command
	end      error
	rendered []engine.State
}

func (p *scriptedPresenter) Render(_ context.Context, state engine.State) error {
	p.rendered = append(p.rendered, state.Clone())
	return nil
}

func (p *scriptedPresenter) PollCommand(context.Context) (command.Command, error) {
	if len(p.commands) == 0 {
		if p.end != nil {
			return nil, p.end
		}
		return nil, io.EOF
	}
	cmd := p.commands[0]
	p.commands = p.commands[1:]
	return cmd, nil
}

type unknownCommand struct{ command.Quit }

type staticConfig struct{ config *engine.Config }

func (s staticConfig) Current() *engine.Config { return s.config }

func newSession(t *testing.T, config *engine.Config) (service.GameService, string) {
	t.Helper()
	log, _ := test.NewNullLogger()
	svc := service.NewGameService(session.NewManager(log, engine.WithSeed(3)), staticConfig{config}, log)
	info, err := svc.CreateSession(context.Background(), nil)
	require.NoError(t, err)
	return svc, info.ID
}

func TestRun_QuitStopsLoop(t *testing.T) {
	svc, id := newSession(t, engine.DefaultConfig())
	p := &scriptedPresenter{commands: []command.Command{
		command.Move{Direction: engine.Up},
		command.Move{Direction: engine.None},
		command.Quit{},
		command.Move{Direction: engine.Down},
	}}

	require.NoError(t, Run(context.Background(), svc, id, p))

	assert.Len(t, p.rendered, 3)
	assert.Equal(t, engine.SoundGameStarted, p.rendered[0].Sound)
	assert.Len(t, p.commands, 1, "commands after Quit are not consumed")
}

func TestRun_EOFIsQuit(t *testing.T) {
	svc, id := newSession(t, engine.DefaultConfig())
	p := &scriptedPresenter{}

	require.NoError(t, Run(context.Background(), svc, id, p))
	assert.Len(t, p.rendered, 1)
}

func TestRun_PresenterErrorIsReturned(t *testing.T) {
	svc, id := newSession(t, engine.DefaultConfig())
	boom := errors.New("terminal gone")
	p := &scriptedPresenter{end: boom}

	err := Run(context.Background(), svc, id, p)
	assert.ErrorIs(t, err, boom)
}

func TestRun_UnknownSession(t *testing.T) {
	svc, _ := newSession(t, engine.DefaultConfig())

	err := Run(context.Background(), svc, "nope", &scriptedPresenter{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRun_UnsupportedCommand(t *testing.T) {
	svc, id := newSession(t, engine.DefaultConfig())
	p := &scriptedPresenter{commands: []command.Command{unknownCommand{}}}

	err := Run(context.Background(), svc, id, p)
	assert.ErrorContains(t, err, "unsupported command")
}

func TestRun_CancelledContext(t *testing.T) {
	svc, id := newSession(t, engine.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, svc, id, &scriptedPresenter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RestartAfterGameOver(t *testing.T) {
	// One step ends the game on a 1x2 board with an unreachable score target
	config := &engine.Config{
		FieldWidth: 1, FieldHeight: 2,
		FlowerScoresMin: 1, FlowerScoresMax: 2,
		MaxPlayerSteps: 1, MinPlayerScores: 50,
	}
	svc, id := newSession(t, config)
	p := &scriptedPresenter{commands: []command.Command{
		command.Move{Direction: engine.Up},
		command.Move{Direction: engine.Down},
		command.Start{},
		command.Quit{},
	}}

	// Whichever row the player starts on, one of Up/Down moves it
	require.NoError(t, Run(context.Background(), svc, id, p))

	require.Len(t, p.rendered, 4)
	assert.Equal(t, engine.SoundGameStarted, p.rendered[3].Sound)
	assert.Equal(t, engine.PlayerTurn, p.rendered[3].Status)

	var lost bool
	for _, s := range p.rendered[1:3] {
		lost = lost || s.Status == engine.PlayerLost
	}
	assert.True(t, lost)
}
