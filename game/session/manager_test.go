package session

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/shadok-gibby/game/engine"
)

func createTestConfig() *engine.Config {
	return &engine.Config{
		FieldWidth:      6,
		FieldHeight:     6,
		NumberOfEnemies: 2,
		NumberOfFlowers: 3,
		FlowerScoresMin: 1,
		FlowerScoresMax: 3,
		MaxPlayerSteps:  20,
		MinPlayerScores: 10,
	}
}

func newTestManager() *Manager {
	log, _ := test.NewNullLogger()
	return NewManager(log, engine.WithSeed(7))
}

func TestManager_Create(t *testing.T) {
	manager := newTestManager()

	sess, err := manager.Create("", createTestConfig())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{4}$`), sess.ID)
	assert.NotNil(t, sess.Engine)
	assert.False(t, sess.Engine.Started())
	assert.Equal(t, createTestConfig(), sess.Config)
	assert.Equal(t, sess.CreatedAt, sess.LastAccessedAt)
	assert.Equal(t, 1, manager.Count())
}

func TestManager_CreateWithID(t *testing.T) {
	manager := newTestManager()

	sess, err := manager.Create("Game1", createTestConfig())
	require.NoError(t, err)
	assert.Equal(t, "Game1", sess.ID)

	_, err = manager.Create("game1", createTestConfig())
	assert.ErrorIs(t, err, ErrSessionAlreadyExists)

	_, err = manager.Create(" padded ", createTestConfig())
	assert.ErrorIs(t, err, ErrInvalidSessionID)
}

func TestManager_CreateInvalidConfig(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()
	config.FlowerScoresMax = config.FlowerScoresMin

	_, err := manager.Create("", config)
	require.ErrorIs(t, err, engine.ErrInvalidConfig)
	assert.Zero(t, manager.Count())
}

func TestManager_Get(t *testing.T) {
	manager := newTestManager()
	created, err := manager.Create("AbCd", createTestConfig())
	require.NoError(t, err)

	for _, id := range []string{"AbCd", "abcd", "ABCD"} {
		got, err := manager.Get(id)
		require.NoError(t, err, id)
		assert.Same(t, created, got)
	}

	_, err = manager.Get("zzzz")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Delete(t *testing.T) {
	manager := newTestManager()
	_, err := manager.Create("dead", createTestConfig())
	require.NoError(t, err)

	require.NoError(t, manager.Delete("DEAD"))
	assert.Zero(t, manager.Count())

	assert.ErrorIs(t, manager.Delete("dead"), ErrSessionNotFound)
	_, err = manager.Get("dead")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_List(t *testing.T) {
	manager := newTestManager()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	manager.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"c3", "a1", "b2"} {
		_, err := manager.Create(id, createTestConfig())
		require.NoError(t, err)
	}

	var ids []string
	for _, sess := range manager.List() {
		ids = append(ids, sess.ID)
	}
	assert.Equal(t, []string{"c3", "a1", "b2"}, ids, "oldest first")
}

func TestManager_Touch(t *testing.T) {
	manager := newTestManager()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	sess, err := manager.Create("t1", createTestConfig())
	require.NoError(t, err)

	now = now.Add(time.Hour)
	require.NoError(t, manager.Touch("T1"))
	assert.Equal(t, now, sess.LastAccessedAt)
	assert.Equal(t, now.Add(-time.Hour), sess.CreatedAt)

	assert.ErrorIs(t, manager.Touch("nope"), ErrSessionNotFound)
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := newTestManager()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	_, err := manager.Create("old", createTestConfig())
	require.NoError(t, err)
	now = now.Add(30 * time.Minute)
	_, err = manager.Create("new", createTestConfig())
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	removed := manager.CleanupExpired(time.Hour)

	assert.Equal(t, 1, removed)
	_, err = manager.Get("old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = manager.Get("new")
	assert.NoError(t, err)
}

func TestManager_RunCleanup(t *testing.T) {
	manager := newTestManager()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }
	_, err := manager.Create("idle", createTestConfig())
	require.NoError(t, err)
	later := now.Add(2 * time.Hour)
	manager.now = func() time.Time { return later }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.RunCleanup(ctx, 5*time.Millisecond, time.Hour)
	}()

	require.Eventually(t, func() bool { return manager.Count() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop after cancel")
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := newTestManager()
	a, err := manager.Create("a", createTestConfig())
	require.NoError(t, err)
	b, err := manager.Create("b", createTestConfig())
	require.NoError(t, err)

	a.Engine.StartGame()

	assert.True(t, a.Engine.Started())
	assert.False(t, b.Engine.Started())
	assert.NotSame(t, a.Engine, b.Engine)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := newTestManager()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%02d", i)
			_, err := manager.Create(id, createTestConfig())
			assert.NoError(t, err)
			_, err = manager.Get(strings.ToUpper(id))
			assert.NoError(t, err)
			assert.NoError(t, manager.Touch(id))
			manager.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, manager.Count())
}

func TestManager_GeneratedIDsAreUnique(t *testing.T) {
	manager := newTestManager()
	seen := make(map[string]bool)

	for range 200 {
		sess, err := manager.Create("", createTestConfig())
		require.NoError(t, err)
		assert.False(t, seen[sess.ID], "duplicate ID %s", sess.ID)
		seen[sess.ID] = true
	}
}
