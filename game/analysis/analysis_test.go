package analysis

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/shadok-gibby/game/engine"
)

func smallConfig() *engine.Config {
	return &engine.Config{
		FieldWidth: 8, FieldHeight: 8,
		NumberOfEnemies: 2, NumberOfFlowers: 5,
		FlowerScoresMin: 2, FlowerScoresMax: 6,
		MaxPlayerSteps: 30, MinPlayerScores: 40,
	}
}

func TestSimulate_Reproducible(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()

	first, err := Simulate(ctx, smallConfig(), 10, 99, log)
	require.NoError(t, err)
	second, err := Simulate(ctx, smallConfig(), 10, 99, log)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 10)
}

func TestSimulate_RecordsAreConsistent(t *testing.T) {
	log, _ := test.NewNullLogger()
	config := smallConfig()

	records, err := Simulate(context.Background(), config, 25, 1, log)
	require.NoError(t, err)

	for i, r := range records {
		assert.Equal(t, i, r.Game)
		assert.LessOrEqual(t, r.Turns, TurnLimit(config))
		assert.LessOrEqual(t, r.Steps, config.MaxPlayerSteps)
		switch r.Outcome {
		case OutcomeWon:
			assert.GreaterOrEqual(t, r.Score, config.MinPlayerScores, "game %d", i)
		case OutcomeLost:
			assert.Less(t, r.Score, config.MinPlayerScores, "game %d", i)
			assert.Equal(t, config.MaxPlayerSteps, r.Steps, "game %d", i)
		default:
			assert.Equal(t, OutcomeUnfinished, r.Outcome)
		}
	}
}

func TestSimulate_TrivialWin(t *testing.T) {
	log, _ := test.NewNullLogger()
	config := &engine.Config{
		FieldWidth: 2, FieldHeight: 1,
		NumberOfFlowers: 1,
		FlowerScoresMin: 1, FlowerScoresMax: 2,
		MaxPlayerSteps: 5, MinPlayerScores: 1,
	}

	records, err := Simulate(context.Background(), config, 3, 5, log)
	require.NoError(t, err)

	for _, r := range records {
		assert.Equal(t, OutcomeWon, r.Outcome)
		assert.Equal(t, uint(1), r.Steps)
		assert.Equal(t, 1, r.Turns)
	}
}

func TestSimulate_Errors(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()

	bad := smallConfig()
	bad.FieldHeight = 0
	_, err := Simulate(ctx, bad, 1, 0, log)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, err = Simulate(ctx, smallConfig(), -1, 0, log)
	assert.Error(t, err)

	records, err := Simulate(ctx, smallConfig(), 0, 0, log)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSimulate_Cancelled(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, smallConfig(), 3, 0, log)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{
		{Game: 0, Outcome: OutcomeWon, Score: 41, Steps: 12, Turns: 13},
		{Game: 1, Outcome: OutcomeLost, Score: 20, Steps: 30, Turns: 30},
	}

	require.NoError(t, WriteCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"game,outcome,score,steps,turns",
		"0,won,41,12,13",
		"1,lost,20,30,30",
	}, lines)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Record{
		{Outcome: OutcomeWon, Score: 120, Steps: 40},
		{Outcome: OutcomeLost, Score: 50, Steps: 100},
		{Outcome: OutcomeLost, Score: 80, Steps: 100},
	})

	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Zero(t, s.Unfinished)
	assert.InDelta(t, 1.0/3, s.WinRate, 1e-9)
	assert.InDelta(t, 250.0/3, s.MeanScore, 1e-9)
	assert.InDelta(t, 35.119, s.StdDevScore, 1e-3)
	assert.Equal(t, 80.0, s.MedianScore)
	assert.InDelta(t, 80.0, s.MeanSteps, 1e-9)
	assert.Equal(t, 100.0, s.MedianSteps)
	assert.Contains(t, s.String(), "won=1 lost=2")
}

func TestSummarize_EdgeCases(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	s := Summarize([]Record{{Outcome: OutcomeUnfinished, Score: 7, Steps: 3}})
	assert.Equal(t, 1, s.Unfinished)
	assert.Zero(t, s.StdDevScore)
	assert.Equal(t, 7.0, s.MedianScore)
}

func TestInspect(t *testing.T) {
	r := Inspect(engine.DefaultConfig())
	assert.Equal(t, 324, r.Area)
	assert.InDelta(t, 21.0/324, r.Density, 1e-9)
	assert.Equal(t, 7.5, r.MeanFlowerScore)
	assert.Equal(t, 14, r.FlowersToWin)
	assert.Empty(t, r.Warnings)

	hard := engine.DefaultConfig()
	hard.MaxPlayerSteps = 5
	r = Inspect(hard)
	assert.Len(t, r.Warnings, 2)
}
