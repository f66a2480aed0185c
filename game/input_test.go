package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		id   string
		want Key
		ok   bool
	}{
		{"ArrowLeft", KeyLeft, true},
		{"ArrowRight", KeyRight, true},
		{"ArrowUp", 0, false},
		{"arrowleft", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParseKey(tt.id)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.id, got.String())
			}
		})
	}
}

func TestInputState_PressRelease(t *testing.T) {
	var s InputState

	assert.True(t, s.OnKeyDown(KeyIDRight))
	assert.True(t, s.Held(KeyRight))
	assert.False(t, s.Held(KeyLeft))

	// 重复按下无影响
	assert.True(t, s.OnKeyDown(KeyIDRight))
	assert.Equal(t, []string{KeyIDRight}, s.Keys())

	assert.True(t, s.OnKeyUp(KeyIDRight))
	assert.False(t, s.Held(KeyRight))
	assert.Empty(t, s.Keys())
}

func TestInputState_KeyUpNeverPressed(t *testing.T) {
	var s InputState
	assert.NotPanics(t, func() {
		assert.True(t, s.OnKeyUp(KeyIDLeft))
	})
	assert.Empty(t, s.Keys())
}

func TestInputState_UnrecognizedIgnored(t *testing.T) {
	var s InputState
	assert.False(t, s.OnKeyDown("Space"))
	assert.False(t, s.OnKeyUp("Space"))
	assert.Empty(t, s.Keys())
}

func TestInputState_Reset(t *testing.T) {
	var s InputState
	s.OnKeyDown(KeyIDLeft)
	s.OnKeyDown(KeyIDRight)
	assert.Equal(t, []string{KeyIDLeft, KeyIDRight}, s.Keys())
	s.Reset()
	assert.False(t, s.Held(KeyLeft))
	assert.False(t, s.Held(KeyRight))
}
