package engine

import "fmt"

const (
	MinFieldSize = 1
	MaxFieldSize = 100

	DefaultFieldWidth      = 18
	DefaultFieldHeight     = 18
	DefaultNumberOfEnemies = 5
	DefaultNumberOfFlowers = 15
	DefaultFlowerScoresMin = 5
	DefaultFlowerScoresMax = 10
	DefaultMaxPlayerSteps  = 100
	DefaultMinPlayerScores = 100
)

// Config holds the rules of one game. The engine never mutates it.
type Config struct {
	FieldWidth      int  `yaml:"field_width" json:"field_width"`
	FieldHeight     int  `yaml:"field_height" json:"field_height"`
	NumberOfEnemies uint `yaml:"number_of_enemies" json:"number_of_enemies"`
	NumberOfFlowers uint `yaml:"number_of_flowers" json:"number_of_flowers"`
	FlowerScoresMin uint `yaml:"flower_scores_min" json:"flower_scores_min"`
	FlowerScoresMax uint `yaml:"flower_scores_max" json:"flower_scores_max"`
	MaxPlayerSteps  uint `yaml:"max_player_steps" json:"max_player_steps"`
	MinPlayerScores uint `yaml:"min_player_scores" json:"min_player_scores"`
}

// DefaultConfig returns the stock 18x18 game
func DefaultConfig() *Config {
	return &Config{
		FieldWidth:      DefaultFieldWidth,
		FieldHeight:     DefaultFieldHeight,
		NumberOfEnemies: DefaultNumberOfEnemies,
		NumberOfFlowers: DefaultNumberOfFlowers,
		FlowerScoresMin: DefaultFlowerScoresMin,
		FlowerScoresMax: DefaultFlowerScoresMax,
		MaxPlayerSteps:  DefaultMaxPlayerSteps,
		MinPlayerScores: DefaultMinPlayerScores,
	}
}

// Area is the number of cells on the board
func (c *Config) Area() int {
	return c.FieldWidth * c.FieldHeight
}

// Entities is the number of tokens placed on the board. Only meaningful for a
// validated config.
func (c *Config) Entities() int {
	return 1 + int(c.NumberOfEnemies) + int(c.NumberOfFlowers)
}

// ValidateConfig validates a game configuration for correctness and playability
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if config.FieldWidth < MinFieldSize || config.FieldWidth > MaxFieldSize {
		return fmt.Errorf("%w: field_width must be between %d and %d, got %d",
			ErrInvalidConfig, MinFieldSize, MaxFieldSize, config.FieldWidth)
	}
	if config.FieldHeight < MinFieldSize || config.FieldHeight > MaxFieldSize {
		return fmt.Errorf("%w: field_height must be between %d and %d, got %d",
			ErrInvalidConfig, MinFieldSize, MaxFieldSize, config.FieldHeight)
	}

	if config.FlowerScoresMin >= config.FlowerScoresMax {
		return fmt.Errorf("%w: invalid flowers scores range, flower_scores_min < flower_scores_max expected, got %d..%d",
			ErrInvalidConfig, config.FlowerScoresMin, config.FlowerScoresMax)
	}

	// Every token needs its own cell, otherwise random placement never ends.
	// Each count is capped before the sum so huge values cannot wrap.
	area := uint(config.Area())
	if config.NumberOfEnemies >= area || config.NumberOfFlowers >= area ||
		1+config.NumberOfEnemies+config.NumberOfFlowers > area {
		return fmt.Errorf("%w: 1 player + %d enemies + %d flowers do not fit on a %dx%d field",
			ErrInvalidConfig, config.NumberOfEnemies, config.NumberOfFlowers, config.FieldWidth, config.FieldHeight)
	}

	return nil
}
