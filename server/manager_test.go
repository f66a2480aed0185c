package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spaceshooter/game"
)

func TestSessionManager_MountUnmount(t *testing.T) {
	clock := game.NewManualClock()
	m := NewSessionManager(game.DefaultField(), clock, zap.NewNop().Sugar())

	bus := game.NewKeyBus()
	s := m.Mount("v1", bus, nil)
	require.NoError(t, s.Start())
	got, ok := m.Get("v1")
	require.True(t, ok)
	assert.Same(t, s, got)

	m.Unmount("v1", s)
	_, ok = m.Get("v1")
	assert.False(t, ok)
	assert.Equal(t, 0, bus.Listeners())
	assert.Equal(t, 0, clock.Pending())
}

func TestSessionManager_StaleUnmountKeepsReplacement(t *testing.T) {
	m := NewSessionManager(game.DefaultField(), game.NewManualClock(), zap.NewNop().Sugar())
	old := m.Mount("v1", game.NewKeyBus(), nil)
	cur := m.Mount("v1", game.NewKeyBus(), nil)

	// 旧连接迟到的卸载不能移除新视图
	m.Unmount("v1", old)
	got, ok := m.Get("v1")
	require.True(t, ok)
	assert.Same(t, cur, got)
	assert.ErrorIs(t, old.Start(), game.ErrSessionClosed)
	assert.NoError(t, cur.Start())
}

func TestSessionManager_SetField(t *testing.T) {
	m := NewSessionManager(game.DefaultField(), game.NewManualClock(), zap.NewNop().Sugar())
	assert.Error(t, m.SetField(game.Field{Width: 10, ActorWidth: 20}))
	assert.Equal(t, game.DefaultField(), m.Field())

	f := game.Field{Width: 100, ActorWidth: 10, Step: 1}
	require.NoError(t, m.SetField(f))
	s := m.Mount("v2", game.NewKeyBus(), nil)
	assert.Equal(t, 45.0, s.Position())

	m.CloseAll()
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, s.Start(), game.ErrSessionClosed)
}
