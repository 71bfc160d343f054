package service

import (
	"context"
	"time"

	"github.com/wricardo/shadok-gibby/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, config *engine.Config) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Start(ctx context.Context, sessionID string) (*engine.State, error)
	Move(ctx context.Context, sessionID string, direction engine.Direction) (*MoveResult, error)

	// Game State
	State(ctx context.Context, sessionID string) (*engine.State, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.Config) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	Touch(id string) error
}

// ConfigProvider supplies the configuration used when a session is created
// without one
type ConfigProvider interface {
	Current() *engine.Config
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.Engine
	Config         *engine.Config
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
