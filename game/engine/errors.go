package engine

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrGameOver           = errors.New("game is over")
	ErrNotStarted         = errors.New("game has not been started")
	ErrGridFull           = errors.New("no empty cell left on the grid")
	ErrInvariantViolation = errors.New("engine invariant violated")
)
