package service

import (
	"time"

	"github.com/wricardo/shadok-gibby/game/engine"
)

// Event types reported in MoveResult.Events
const (
	EventPlayerMoved     = "player_moved"
	EventPlayerBlocked   = "player_blocked"
	EventFlowerEaten     = "flower_eaten"
	EventEnemyMoved      = "enemy_moved"
	EventFlowerRespawned = "flower_respawned"
	EventWon             = "won"
	EventLost            = "lost"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	Started        bool           `json:"started"`
	GameState      engine.State   `json:"game_state"`
	GameConfig     *engine.Config `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Moved      bool               `json:"moved"`
	Direction  string             `json:"direction"`
	From       engine.Position    `json:"from"`
	To         engine.Position    `json:"to"`
	ScoreDelta uint               `json:"score_delta"`
	Status     engine.GameStatus  `json:"status"`
	Sound      engine.SoundEffect `json:"sound"`
	GameState  engine.State       `json:"game_state"`
	Message    string             `json:"message"`
	Events     []GameEvent        `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during one turn
type GameEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
	Index     int             `json:"index,omitempty"`
}

// SoundMessage is the text shown for a sound effect
func SoundMessage(sound engine.SoundEffect) string {
	switch sound {
	case engine.SoundGameStarted:
		return "Game started, go eat some flowers!"
	case engine.SoundPlayerMoved:
		return "You moved."
	case engine.SoundPlayerCouldNotMove:
		return "You could not move there."
	case engine.SoundPlayerAteFlower:
		return "Yum! You ate a flower."
	case engine.SoundPlayerWon:
		return "You won!"
	case engine.SoundPlayerLost:
		return "You lost."
	}
	return ""
}
