// Package analysis plays batches of bot games and summarizes the outcomes so
// configurations can be compared.
package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/shadok-gibby/game/bot"
	"github.com/wricardo/shadok-gibby/game/driver"
	"github.com/wricardo/shadok-gibby/game/engine"
	"github.com/wricardo/shadok-gibby/game/service"
	"github.com/wricardo/shadok-gibby/game/session"
)

// Outcomes recorded per game
const (
	OutcomeWon        = "won"
	OutcomeLost       = "lost"
	OutcomeUnfinished = "unfinished"
)

// Record is the result of one simulated game
type Record struct {
	Game    int    `csv:"game" json:"game"`
	Outcome string `csv:"outcome" json:"outcome"`
	Score   uint   `csv:"score" json:"score"`
	Steps   uint   `csv:"steps" json:"steps"`
	Turns   int    `csv:"turns" json:"turns"`
}

type fixedConfig struct {
	config *engine.Config
}

func (f fixedConfig) Current() *engine.Config { return f.config }

// TurnLimit bounds a bot game. Blocked moves cost no step, so a stuck bot
// would otherwise never reach the step limit.
func TurnLimit(config *engine.Config) int {
	return 2*int(config.MaxPlayerSteps) + 1
}

// Simulate plays games bot games with config. Game i is seeded with seed+i,
// so a run is reproducible.
func Simulate(ctx context.Context, config *engine.Config, games int, seed uint64, log logrus.FieldLogger) ([]Record, error) {
	if err := engine.ValidateConfig(config); err != nil {
		return nil, err
	}
	if games < 0 {
		return nil, fmt.Errorf("games must not be negative, got %d", games)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	records := make([]Record, 0, games)
	for i := range games {
		record, err := playOne(ctx, config, i, seed+uint64(i), log)
		if err != nil {
			return records, fmt.Errorf("game %d: %w", i, err)
		}
		records = append(records, record)

		log.WithFields(logrus.Fields{
			"game":    i,
			"outcome": record.Outcome,
			"score":   record.Score,
			"steps":   record.Steps,
		}).Debug("game simulated")
	}

	return records, nil
}

func playOne(ctx context.Context, config *engine.Config, game int, seed uint64, log logrus.FieldLogger) (Record, error) {
	sessions := session.NewManager(log, engine.WithSeed(seed))
	svc := service.NewGameService(sessions, fixedConfig{config}, log)

	info, err := svc.CreateSession(ctx, config)
	if err != nil {
		return Record{}, err
	}

	player := bot.NewPresenter(config, TurnLimit(config))
	if err := driver.Run(ctx, svc, info.ID, player); err != nil {
		return Record{}, err
	}

	state := player.State()
	record := Record{
		Game:    game,
		Outcome: OutcomeUnfinished,
		Score:   state.Player.Score,
		Steps:   state.Player.Steps,
		Turns:   player.Turns(),
	}
	switch state.Status {
	case engine.PlayerWon:
		record.Outcome = OutcomeWon
	case engine.PlayerLost:
		record.Outcome = OutcomeLost
	}
	return record, nil
}

// WriteCSV writes the records with a header row
func WriteCSV(w io.Writer, records []Record) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}
