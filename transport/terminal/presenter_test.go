package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/shadok-gibby/game/command"
	"github.com/wricardo/shadok-gibby/game/engine"
)

func testConfig() *engine.Config {
	return &engine.Config{
		FieldWidth: 4, FieldHeight: 3,
		NumberOfEnemies: 1, NumberOfFlowers: 2,
		FlowerScoresMin: 1, FlowerScoresMax: 5,
		MaxPlayerSteps: 20, MinPlayerScores: 15,
	}
}

func testState() engine.State {
	return engine.State{
		Player:  engine.Player{Position: engine.Position{X: 0, Y: 0}, Score: 7, Steps: 3},
		Enemies: engine.Enemies{Positions: []engine.Position{{X: 3, Y: 2}}},
		Flowers: engine.Flowers{
			Positions: []engine.Position{{X: 1, Y: 1}, {X: 3, Y: 0}},
			Scores:    []uint{2, 4},
		},
		Status: engine.PlayerTurn,
		Sound:  engine.SoundPlayerAteFlower,
	}
}

func TestRenderBoard_YGrowsUp(t *testing.T) {
	board := RenderBoard(testState(), testConfig())

	assert.Equal(t, "...E\n.*..\n@..*\n", board)
}

func TestPresenter_Render(t *testing.T) {
	var out bytes.Buffer
	log, _ := test.NewNullLogger()
	p := NewPresenter(testConfig(), strings.NewReader(""), &out, log)

	require.NoError(t, p.Render(context.Background(), testState()))

	text := out.String()
	assert.Contains(t, text, "...E\n.*..\n@..*\n")
	assert.Contains(t, text, "Score: 7/15  Steps: 3/20")
	assert.Contains(t, text, "Yum! You ate a flower.")
	assert.True(t, strings.HasSuffix(text, "> "))
}

func TestPresenter_PollCommand(t *testing.T) {
	var out bytes.Buffer
	log, _ := test.NewNullLogger()
	p := NewPresenter(testConfig(), strings.NewReader("hello\nq\n8\n"), &out, log)
	ctx := context.Background()
	require.NoError(t, p.Render(ctx, testState()))

	cmd, err := p.PollCommand(ctx)
	require.NoError(t, err)
	assert.Equal(t, command.Move{Direction: engine.UpLeft}, cmd)
	assert.Contains(t, out.String(), `Unknown command "hello"`)

	cmd, err = p.PollCommand(ctx)
	require.NoError(t, err)
	assert.Equal(t, command.Move{Direction: engine.Up}, cmd)

	_, err = p.PollCommand(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPresenter_GameOverMenu(t *testing.T) {
	var out bytes.Buffer
	log, _ := test.NewNullLogger()
	p := NewPresenter(testConfig(), strings.NewReader("w\ny\n"), &out, log)
	ctx := context.Background()

	state := testState()
	state.Status = engine.PlayerWon
	state.Sound = engine.SoundPlayerWon
	require.NoError(t, p.Render(ctx, state))
	assert.Contains(t, out.String(), "You won!")
	assert.Contains(t, out.String(), "New game? y/n")

	cmd, err := p.PollCommand(ctx)
	require.NoError(t, err)
	assert.Equal(t, command.Start{}, cmd)
}

func TestPresenter_CancelledContext(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := NewPresenter(testConfig(), strings.NewReader("w\n"), io.Discard, log)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PollCommand(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
