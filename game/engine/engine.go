package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Option customizes an Engine at construction
type Option func(*Engine)

// WithGridRand sets the random source used for entity placement
func WithGridRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.gridRand = rng }
}

// WithScoreRand sets the random source used for flower rewards
func WithScoreRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.scoreRand = rng }
}

// WithSeed makes placement and rewards reproducible
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.gridRand = rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
		e.scoreRand = rand.New(rand.NewPCG(seed, 0xbf58476d1ce4e5b9))
	}
}

// WithLogger sets the logger; the standard logrus logger is used otherwise
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// Engine is the authoritative game state machine
type Engine struct {
	config    *Config
	grid      *Grid
	scores    *ScoreGenerator
	state     State
	started   bool
	gridRand  *rand.Rand
	scoreRand *rand.Rand
	log       logrus.FieldLogger
}

// NewEngine creates a new game engine with the provided configuration. The
// entity counts are fixed for the engine's lifetime; call StartGame to deal
// the board.
func NewEngine(config *Config, opts ...Option) (*Engine, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	e := &Engine{config: config}
	for _, opt := range opts {
		opt(e)
	}
	if e.gridRand == nil {
		e.gridRand = newEntropyRand()
	}
	if e.scoreRand == nil {
		e.scoreRand = newEntropyRand()
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}

	e.grid = NewGrid(config.FieldWidth, config.FieldHeight, e.gridRand)
	e.scores = NewScoreGenerator(config.FlowerScoresMin, config.FlowerScoresMax, e.scoreRand)
	e.state.Enemies.Positions = make([]Position, config.NumberOfEnemies)
	e.state.Flowers.Positions = make([]Position, config.NumberOfFlowers)
	e.state.Flowers.Scores = make([]uint, config.NumberOfFlowers)

	return e, nil
}

// GetConfig returns the configuration the engine was built with
func (e *Engine) GetConfig() *Config {
	return e.config
}

// GetState returns the current state. The slices inside alias engine memory:
// read them before the next Move/StartGame or Clone the state.
func (e *Engine) GetState() State {
	return e.state
}

// Started reports whether StartGame has been called
func (e *Engine) Started() bool {
	return e.started
}

// IsGameOver reports whether the game reached a terminal status
func (e *Engine) IsGameOver() bool {
	return e.state.Status.IsTerminal()
}

// Occupant returns what the grid holds at pos
func (e *Engine) Occupant(pos Position) OccupantKind {
	return e.grid.Get(pos)
}

// StartGame resets scores, steps and placement. The player is placed first,
// then every enemy, then every flower, each on a random empty cell.
func (e *Engine) StartGame() {
	e.grid.Clear()

	e.state.Player.Score = 0
	e.state.Player.Steps = 0
	e.state.Player.Position = e.place(PlayerKind)

	for i := range e.state.Enemies.Positions {
		e.state.Enemies.Positions[i] = e.place(EnemyKind)
	}
	for i := range e.state.Flowers.Positions {
		e.placeFlower(i)
	}

	e.state.Status = PlayerTurn
	e.state.Sound = SoundGameStarted
	e.started = true

	e.log.WithFields(logrus.Fields{
		"player":  e.state.Player.Position,
		"enemies": len(e.state.Enemies.Positions),
		"flowers": len(e.state.Flowers.Positions),
	}).Debug("game started")
}

// Move runs one turn: the player's half-turn and, unless the player was
// blocked or the game ended, the enemies' half-turn. The caller never
// observes EnemiesTurn.
func (e *Engine) Move(direction Vector) error {
	if !e.started {
		return ErrNotStarted
	}
	if e.state.Status.IsTerminal() {
		return fmt.Errorf("move %v: %w (%s)", direction, ErrGameOver, e.state.Status)
	}
	if !direction.Valid() {
		return fmt.Errorf("%w: components of %v must be in {-1,0,1}", ErrInvalidDirection, direction)
	}

	if !e.movePlayer(direction) {
		return nil
	}

	e.state.Status = e.nextStatus()

	e.log.WithFields(logrus.Fields{
		"score":  e.state.Player.Score,
		"steps":  e.state.Player.Steps,
		"status": e.state.Status,
	}).Debug("player moved")

	switch e.state.Status {
	case PlayerWon:
		e.state.Sound = SoundPlayerWon
	case PlayerLost:
		e.state.Sound = SoundPlayerLost
	case EnemiesTurn:
		e.moveEnemies()
	}

	return nil
}

// nextStatus applies the end conditions: winning beats losing
func (e *Engine) nextStatus() GameStatus {
	if e.state.Player.Score >= e.config.MinPlayerScores {
		return PlayerWon
	}
	if e.state.Player.Steps >= e.config.MaxPlayerSteps {
		return PlayerLost
	}
	return EnemiesTurn
}

// place puts kind on a random empty cell. Validation guarantees a free cell,
// so running out of room means the grid and state diverged.
func (e *Engine) place(kind OccupantKind) Position {
	pos, err := e.grid.PlaceRandom(kind)
	if err != nil {
		e.fatal(err)
	}
	return pos
}

// placeFlower recycles flower slot i: new cell, new reward
func (e *Engine) placeFlower(i int) {
	e.state.Flowers.Positions[i] = e.place(FlowerKind)
	e.state.Flowers.Scores[i] = e.scores.Generate()
}

// fatal aborts on a broken invariant; continuing would corrupt the game
func (e *Engine) fatal(err error) {
	err = fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	e.log.WithError(err).Error("aborting game engine")
	panic(err)
}

func newEntropyRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
