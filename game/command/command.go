// Package command defines the closed set of commands a presenter can hand to
// the game loop and the key bindings that produce them.
package command

import (
	"strings"

	"github.com/wricardo/shadok-gibby/game/engine"
)

// Command is one of Move, Start or Quit
type Command interface {
	isCommand()
}

// Move asks the engine to run one turn in Direction
type Move struct {
	Direction engine.Direction
}

// Start begins a new game, discarding the current one
type Start struct{}

// Quit ends the game loop
type Quit struct{}

func (Move) isCommand()  {}
func (Start) isCommand() {}
func (Quit) isCommand()  {}

// Keyboard layout around "s": the letter block and the numpad block map to
// the same nine directions.
var playKeys = map[string]engine.Direction{
	"q": engine.UpLeft, "w": engine.Up, "e": engine.UpRight,
	"a": engine.Left, "s": engine.None, "d": engine.Right,
	"z": engine.DownLeft, "x": engine.Down, "c": engine.DownRight,

	"7": engine.UpLeft, "8": engine.Up, "9": engine.UpRight,
	"4": engine.Left, "5": engine.None, "6": engine.Right,
	"1": engine.DownLeft, "2": engine.Down, "3": engine.DownRight,
}

// Parse maps raw input to a command for the given status. While a game is
// running only directions are accepted (keys or names such as "up-left");
// after a win or loss only "y" (new game) and "n" (quit) are.
func Parse(input string, status engine.GameStatus) (Command, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return nil, false
	}

	if status.IsTerminal() {
		switch key {
		case "y", "yes":
			return Start{}, true
		case "n", "no":
			return Quit{}, true
		}
		return nil, false
	}

	if d, ok := playKeys[key]; ok {
		return Move{Direction: d}, true
	}
	if d, err := engine.ParseDirection(key); err == nil {
		return Move{Direction: d}, true
	}
	return nil, false
}

// Help describes the key bindings for status
func Help(status engine.GameStatus) string {
	if status.IsTerminal() {
		return "New game? y/n"
	}
	return "Move: q w e / a s d / z x c (or numpad 7-9 4-6 1-3), s or 5 waits"
}
