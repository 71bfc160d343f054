package engine

import (
	"fmt"
	"strings"
)

// OccupantKind represents what occupies a grid cell
type OccupantKind uint8

const (
	Empty OccupantKind = iota
	PlayerKind
	EnemyKind
	FlowerKind
)

func (k OccupantKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case PlayerKind:
		return "player"
	case EnemyKind:
		return "enemy"
	case FlowerKind:
		return "flower"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// GameStatus is the engine state machine status
type GameStatus uint8

const (
	PlayerTurn GameStatus = iota
	EnemiesTurn
	PlayerWon
	PlayerLost
)

func (s GameStatus) String() string {
	switch s {
	case PlayerTurn:
		return "player_turn"
	case EnemiesTurn:
		return "enemies_turn"
	case PlayerWon:
		return "player_won"
	case PlayerLost:
		return "player_lost"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// IsTerminal reports whether the status ends the game
func (s GameStatus) IsTerminal() bool {
	return s == PlayerWon || s == PlayerLost
}

// MarshalText renders the status by name in JSON output
func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SoundEffect is the last audible event produced by the engine. It has no
// effect on game logic.
type SoundEffect uint8

const (
	SoundNone SoundEffect = iota
	SoundPlayerMoved
	SoundPlayerCouldNotMove
	SoundPlayerAteFlower
	SoundGameStarted
	SoundPlayerWon
	SoundPlayerLost
)

func (e SoundEffect) String() string {
	switch e {
	case SoundNone:
		return "none"
	case SoundPlayerMoved:
		return "player_moved"
	case SoundPlayerCouldNotMove:
		return "player_could_not_move"
	case SoundPlayerAteFlower:
		return "player_ate_flower"
	case SoundGameStarted:
		return "game_started"
	case SoundPlayerWon:
		return "player_won"
	case SoundPlayerLost:
		return "player_lost"
	default:
		return fmt.Sprintf("sound(%d)", uint8(e))
	}
}

// MarshalText renders the sound effect by name in JSON output
func (e SoundEffect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Position represents x,y coordinates of a cell
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position displaced by v
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vector is a single-step displacement with components in {-1,0,1}
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Valid reports whether both components are in {-1,0,1}
func (v Vector) Valid() bool {
	return v.X >= -1 && v.X <= 1 && v.Y >= -1 && v.Y <= 1
}

// IsZero reports whether the vector is the "none" displacement
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rotate45 rotates the vector 45 degrees counter-clockwise, keeping it a
// unit step.
func (v Vector) Rotate45() Vector {
	return Vector{X: sign(v.X - v.Y), Y: sign(v.X + v.Y)}
}

// RotateMinus45 rotates the vector 45 degrees clockwise, keeping it a unit
// step.
func (v Vector) RotateMinus45() Vector {
	return Vector{X: sign(v.X + v.Y), Y: sign(v.Y - v.X)}
}

// Direction enumerates the nine player commands
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// Y grows upwards: Up is (0,+1).
var directionVectors = [...]Vector{
	None:      {0, 0},
	Up:        {0, 1},
	Down:      {0, -1},
	Left:      {-1, 0},
	Right:     {1, 0},
	UpLeft:    {-1, 1},
	UpRight:   {1, 1},
	DownLeft:  {-1, -1},
	DownRight: {1, -1},
}

var directionNames = [...]string{
	None:      "none",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	UpLeft:    "up_left",
	UpRight:   "up_right",
	DownLeft:  "down_left",
	DownRight: "down_right",
}

// Directions lists every direction in declaration order
var Directions = []Direction{None, Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

// Vector returns the displacement for the direction
func (d Direction) Vector() Vector {
	if int(d) >= len(directionVectors) {
		return Vector{}
	}
	return directionVectors[d]
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// DirectionNames returns the accepted direction names in declaration order
func DirectionNames() []string {
	names := make([]string, len(directionNames))
	copy(names, directionNames[:])
	return names
}

// ParseDirection parses a direction name. Dashes, spaces and case are
// ignored so "Up-Left" and "up_left" are equivalent.
func ParseDirection(name string) (Direction, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for i, n := range directionNames {
		if n == normalized {
			return Direction(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidDirection, name)
}

// DirectionOf maps a unit vector back to its direction
func DirectionOf(v Vector) (Direction, bool) {
	for i, dv := range directionVectors {
		if dv == v {
			return Direction(i), true
		}
	}
	return None, false
}

// Player is the player token
type Player struct {
	Position Position `json:"position"`
	Score    uint     `json:"score"`
	Steps    uint     `json:"steps"`
}

// Enemies are addressed by their stable index for the whole game
type Enemies struct {
	Positions []Position `json:"positions"`
}

// Flowers are fixed slots; Positions[i] and Scores[i] describe slot i
type Flowers struct {
	Positions []Position `json:"positions"`
	Scores    []uint     `json:"scores"`
}

// State represents the complete game state exposed to presenters
type State struct {
	Player  Player      `json:"player"`
	Enemies Enemies     `json:"enemies"`
	Flowers Flowers     `json:"flowers"`
	Status  GameStatus  `json:"status"`
	Sound   SoundEffect `json:"sound"`
}

// Clone returns a deep copy that stays valid across later engine calls
func (s State) Clone() State {
	c := s
	c.Enemies.Positions = append([]Position(nil), s.Enemies.Positions...)
	c.Flowers.Positions = append([]Position(nil), s.Flowers.Positions...)
	c.Flowers.Scores = append([]uint(nil), s.Flowers.Scores...)
	return c
}
