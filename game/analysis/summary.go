package analysis

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/wricardo/shadok-gibby/game/engine"
)

// Summary aggregates a batch of records
type Summary struct {
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Unfinished  int     `json:"unfinished"`
	WinRate     float64 `json:"win_rate"`
	MeanScore   float64 `json:"mean_score"`
	StdDevScore float64 `json:"stddev_score"`
	MedianScore float64 `json:"median_score"`
	MeanSteps   float64 `json:"mean_steps"`
	StdDevSteps float64 `json:"stddev_steps"`
	MedianSteps float64 `json:"median_steps"`
}

// Summarize computes outcome counts and score/step statistics
func Summarize(records []Record) Summary {
	s := Summary{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	scores := make([]float64, 0, len(records))
	steps := make([]float64, 0, len(records))
	for _, r := range records {
		switch r.Outcome {
		case OutcomeWon:
			s.Wins++
		case OutcomeLost:
			s.Losses++
		default:
			s.Unfinished++
		}
		scores = append(scores, float64(r.Score))
		steps = append(steps, float64(r.Steps))
	}

	s.WinRate = float64(s.Wins) / float64(s.Games)
	s.MeanScore, s.StdDevScore, s.MedianScore = describe(scores)
	s.MeanSteps, s.StdDevSteps, s.MedianSteps = describe(steps)
	return s
}

func describe(x []float64) (mean, stddev, median float64) {
	slices.Sort(x)
	mean = stat.Mean(x, nil)
	if len(x) > 1 {
		stddev = stat.StdDev(x, nil)
	}
	median = stat.Quantile(0.5, stat.Empirical, x, nil)
	return mean, stddev, median
}

func (s Summary) String() string {
	return fmt.Sprintf("games=%d won=%d lost=%d unfinished=%d win_rate=%.1f%% score=%.1f±%.1f (median %.0f) steps=%.1f±%.1f (median %.0f)",
		s.Games, s.Wins, s.Losses, s.Unfinished, 100*s.WinRate,
		s.MeanScore, s.StdDevScore, s.MedianScore,
		s.MeanSteps, s.StdDevSteps, s.MedianSteps)
}

// Report holds static heuristics about a configuration
type Report struct {
	Area            int      `json:"area"`
	Density         float64  `json:"density"`
	MeanFlowerScore float64  `json:"mean_flower_score"`
	FlowersToWin    int      `json:"flowers_to_win"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Inspect estimates how demanding a configuration is without playing it
func Inspect(config *engine.Config) Report {
	r := Report{
		Area:            config.Area(),
		Density:         float64(config.Entities()) / float64(config.Area()),
		MeanFlowerScore: float64(config.FlowerScoresMin+config.FlowerScoresMax) / 2,
	}
	r.FlowersToWin = int(math.Ceil(float64(config.MinPlayerScores) / r.MeanFlowerScore))

	if uint(r.FlowersToWin) > config.MaxPlayerSteps {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"about %d flowers are needed but only %d steps are allowed", r.FlowersToWin, config.MaxPlayerSteps))
	}
	if config.FlowerScoresMax*config.MaxPlayerSteps < config.MinPlayerScores {
		r.Warnings = append(r.Warnings, "the game cannot be won: even a max-score flower every step falls short")
	}
	if config.NumberOfFlowers == 0 {
		r.Warnings = append(r.Warnings, "no flowers on the board")
	}
	if r.Density > 0.5 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("crowded board: %.0f%% of cells are occupied", 100*r.Density))
	}
	return r
}
