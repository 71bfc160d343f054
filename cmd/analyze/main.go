// Command analyze prints quick, human-readable heuristics about configuration
// files and plays batches of greedy bot games with each of them. It reports
// board density, the number of flowers a win needs, and the bot's win rate
// with score and step statistics.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/shadok-gibby/game/analysis"
	"github.com/wricardo/shadok-gibby/game/config"
	"github.com/wricardo/shadok-gibby/game/engine"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("analyze failed")
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "simulate bot games for each configuration file",
		ArgsUsage: "[config.yaml ...]",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Value: 100, Usage: "games to simulate per configuration"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "seed of the first game"},
			&cli.StringFlag{Name: "csv-dir", Usage: "write per-game records to <dir>/<config>.csv"},
			&cli.BoolFlag{Name: "debug", Usage: "log every simulated game"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := log.New()
			logger.SetOutput(os.Stderr)
			logger.SetLevel(log.WarnLevel)
			if cmd.Bool("debug") {
				logger.SetLevel(log.DebugLevel)
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				paths = []string{""}
			}

			for _, path := range paths {
				if err := analyzeConfig(ctx, out, path, cmd, logger); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func analyzeConfig(ctx context.Context, out io.Writer, path string, cmd *cli.Command, logger *log.Logger) error {
	name := "defaults"
	gameConfig := engine.DefaultConfig()
	if path != "" {
		name = filepath.Base(path)
		loaded, err := config.NewManager(path, logger).Load()
		if err != nil {
			fmt.Fprintf(out, "\n=== Analyzing %s ===\nError: %v\n", name, err)
			return nil
		}
		gameConfig = loaded
	}

	fmt.Fprintf(out, "\n=== Analyzing %s ===\n", name)
	printReport(out, gameConfig)

	records, err := analysis.Simulate(ctx, gameConfig, int(cmd.Int("games")), uint64(cmd.Int("seed")), logger)
	if err != nil {
		return fmt.Errorf("simulating %s: %w", name, err)
	}
	fmt.Fprintf(out, "Greedy bot: %s\n", analysis.Summarize(records))

	if dir := cmd.String("csv-dir"); dir != "" {
		if err := writeRecords(dir, name, records); err != nil {
			return err
		}
	}
	return nil
}

func printReport(out io.Writer, c *engine.Config) {
	r := analysis.Inspect(c)

	fmt.Fprintf(out, "Field: %d x %d (%d cells, %.1f%% occupied)\n", c.FieldWidth, c.FieldHeight, r.Area, 100*r.Density)
	fmt.Fprintf(out, "Enemies: %d | Flowers: %d worth %d..%d\n", c.NumberOfEnemies, c.NumberOfFlowers, c.FlowerScoresMin, c.FlowerScoresMax)
	fmt.Fprintf(out, "Goal: %d points within %d steps (about %d flowers)\n", c.MinPlayerScores, c.MaxPlayerSteps, r.FlowersToWin)

	if len(r.Warnings) == 0 {
		fmt.Fprintf(out, "✅ Configuration looks playable\n")
		return
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(out, "⚠️  WARNING: %s\n", w)
	}
}

func writeRecords(dir, name string, records []analysis.Record) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return analysis.WriteCSV(f, records)
}
