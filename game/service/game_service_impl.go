package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/shadok-gibby/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigProvider
	log      logrus.FieldLogger
	now      func() time.Time
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. Every engine call goes
// through one mutex, so sessions can be driven from several goroutines.
func NewGameService(sessions SessionManager, configs ConfigProvider, log logrus.FieldLogger) GameService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		log:      log,
		now:      time.Now,
	}
}

// CreateSession creates a new, not yet started, game session. A nil config
// uses the provider's current configuration.
func (s *gameServiceImpl) CreateSession(ctx context.Context, config *engine.Config) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if config == nil {
		config = s.configs.Current()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.WithField("session", session.ID).Info("session created")
	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// Start begins a new game in the session, discarding any game in progress
func (s *gameServiceImpl) Start(ctx context.Context, sessionID string) (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.StartGame()
	state := sess.Engine.GetState().Clone()
	return &state, nil
}

// Move executes one turn for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, direction engine.Direction) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	before := sess.Engine.GetState().Clone()
	if err := sess.Engine.Move(direction.Vector()); err != nil {
		if errors.Is(err, engine.ErrGameOver) || errors.Is(err, engine.ErrNotStarted) {
			return nil, err
		}
		return nil, fmt.Errorf("move %s: %w", direction, err)
	}
	after := sess.Engine.GetState().Clone()

	result := &MoveResult{
		Moved:      before.Player.Position != after.Player.Position,
		Direction:  direction.String(),
		From:       before.Player.Position,
		To:         after.Player.Position,
		ScoreDelta: after.Player.Score - before.Player.Score,
		Status:     after.Status,
		Sound:      after.Sound,
		GameState:  after,
		Message:    SoundMessage(after.Sound),
		Events:     s.extractMoveEvents(before, after),
	}

	s.log.WithFields(logrus.Fields{
		"session":   sess.ID,
		"direction": direction,
		"moved":     result.Moved,
		"status":    after.Status,
	}).Debug("move processed")

	return result, nil
}

// State returns a snapshot of the session's game
func (s *gameServiceImpl) State(ctx context.Context, sessionID string) (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState().Clone()
	return &state, nil
}

func (s *gameServiceImpl) session(id string) (*Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", id, err)
	}
	// Touch only fails for unknown sessions, which Get already ruled out
	_ = s.sessions.Touch(id)
	return sess, nil
}

// extractMoveEvents derives the turn's events from two snapshots
func (s *gameServiceImpl) extractMoveEvents(before, after engine.State) []GameEvent {
	now := s.now()
	events := []GameEvent{}

	from, to := before.Player.Position, after.Player.Position
	if from == to {
		events = append(events, GameEvent{
			Type:      EventPlayerBlocked,
			Message:   fmt.Sprintf("player stays at %s", from),
			Timestamp: now,
			Position:  from,
		})
	} else {
		events = append(events, GameEvent{
			Type:      EventPlayerMoved,
			Message:   fmt.Sprintf("player moved from %s to %s", from, to),
			Timestamp: now,
			Position:  to,
		})
	}

	// Zero-point flowers count as eaten too.
	eaten := -1
	if from != to {
		eaten = engine.FlowerIndexAt(before.Flowers, to)
	}
	if eaten >= 0 {
		events = append(events, GameEvent{
			Type:      EventFlowerEaten,
			Message:   fmt.Sprintf("ate a flower worth %d", before.Flowers.Scores[eaten]),
			Timestamp: now,
			Position:  to,
			Index:     eaten,
		})
	}

	for i, pos := range after.Enemies.Positions {
		if prev := before.Enemies.Positions[i]; prev != pos {
			events = append(events, GameEvent{
				Type:      EventEnemyMoved,
				Message:   fmt.Sprintf("enemy %d moved from %s to %s", i, prev, pos),
				Timestamp: now,
				Position:  pos,
				Index:     i,
			})
		}
	}

	for i, pos := range after.Flowers.Positions {
		prev := before.Flowers.Positions[i]
		if prev == pos {
			continue
		}
		// Snapshots only show the final slot position. When an enemy eats the
		// flower the player just respawned, both eats collapse into this one.
		eater := "an enemy"
		if i == eaten {
			eater = "the player"
		}
		events = append(events, GameEvent{
			Type:      EventFlowerRespawned,
			Message:   fmt.Sprintf("flower %d eaten by %s at %s, respawned at %s worth %d", i, eater, prev, pos, after.Flowers.Scores[i]),
			Timestamp: now,
			Position:  pos,
			Index:     i,
		})
	}

	switch after.Status {
	case engine.PlayerWon:
		events = append(events, GameEvent{
			Type:      EventWon,
			Message:   fmt.Sprintf("won with %d points in %d steps", after.Player.Score, after.Player.Steps),
			Timestamp: now,
			Position:  to,
		})
	case engine.PlayerLost:
		events = append(events, GameEvent{
			Type:      EventLost,
			Message:   fmt.Sprintf("lost with %d points after %d steps", after.Player.Score, after.Player.Steps),
			Timestamp: now,
			Position:  to,
		})
	}

	return events
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Started:        sess.Engine.Started(),
		GameState:      sess.Engine.GetState().Clone(),
		GameConfig:     sess.Config,
	}
}
