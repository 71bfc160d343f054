package engine

import "math/rand/v2"

// ScoreGenerator draws flower rewards uniformly from [min, max]
type ScoreGenerator struct {
	min uint
	max uint
	rng *rand.Rand
}

// NewScoreGenerator creates a generator over the inclusive range [min, max].
// min == max yields a constant generator.
func NewScoreGenerator(min, max uint, rng *rand.Rand) *ScoreGenerator {
	if max < min {
		min, max = max, min
	}
	return &ScoreGenerator{min: min, max: max, rng: rng}
}

// Generate returns the next reward
func (s *ScoreGenerator) Generate() uint {
	return s.min + uint(s.rng.Uint64N(uint64(s.max-s.min)+1))
}
