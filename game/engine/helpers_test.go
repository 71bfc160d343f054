package engine

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		FieldWidth:      7,
		FieldHeight:     7,
		NumberOfEnemies: 1,
		NumberOfFlowers: 1,
		FlowerScoresMin: 5,
		FlowerScoresMax: 10,
		MaxPlayerSteps:  50,
		MinPlayerScores: 100,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEngine(t *testing.T, config *Config) *Engine {
	t.Helper()
	e, err := NewEngine(config, WithSeed(42), WithLogger(quietLogger()))
	require.NoError(t, err)
	return e
}

// arrange replaces the dealt board with a hand-made one
func arrange(t *testing.T, e *Engine, player Position, enemies, flowers []Position, scores []uint) {
	t.Helper()
	require.Len(t, enemies, len(e.state.Enemies.Positions), "enemy count is fixed by config")
	require.Len(t, flowers, len(e.state.Flowers.Positions), "flower count is fixed by config")
	require.Len(t, scores, len(flowers))

	e.grid.Clear()
	e.state.Player = Player{Position: player}
	e.grid.Set(player, PlayerKind)
	for i, p := range enemies {
		require.Equal(t, Empty, e.grid.Get(p), "enemy %d overlaps %s", i, p)
		e.state.Enemies.Positions[i] = p
		e.grid.Set(p, EnemyKind)
	}
	for i, p := range flowers {
		require.Equal(t, Empty, e.grid.Get(p), "flower %d overlaps %s", i, p)
		e.state.Flowers.Positions[i] = p
		e.state.Flowers.Scores[i] = scores[i]
		e.grid.Set(p, FlowerKind)
	}
	e.state.Status = PlayerTurn
	e.state.Sound = SoundGameStarted
	e.started = true
}

// requireConsistent checks that the grid indexes exactly the entities in
// State and that no two entities share a cell.
func requireConsistent(t *testing.T, e *Engine) {
	t.Helper()
	state := e.GetState()

	expected := map[Position]OccupantKind{state.Player.Position: PlayerKind}
	for i, p := range state.Enemies.Positions {
		_, taken := expected[p]
		require.False(t, taken, "enemy %d shares cell %s", i, p)
		expected[p] = EnemyKind
	}
	for i, p := range state.Flowers.Positions {
		_, taken := expected[p]
		require.False(t, taken, "flower %d shares cell %s", i, p)
		expected[p] = FlowerKind
	}

	require.Equal(t, expected, e.grid.Occupied())
	require.Equal(t, e.grid.Width()*e.grid.Height()-len(expected), e.grid.Free())
}
