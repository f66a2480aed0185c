package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBus_DispatchByKind(t *testing.T) {
	bus := NewKeyBus()
	var downs, ups []string
	removeDown := bus.AddKeyListener(KeyDown, func(k string) { downs = append(downs, k) })
	removeUp := bus.AddKeyListener(KeyUp, func(k string) { ups = append(ups, k) })
	assert.Equal(t, 2, bus.Listeners())

	assert.Equal(t, 1, bus.Dispatch(KeyDown, KeyIDLeft))
	assert.Equal(t, 1, bus.Dispatch(KeyUp, KeyIDLeft))
	assert.Equal(t, []string{KeyIDLeft}, downs)
	assert.Equal(t, []string{KeyIDLeft}, ups)

	removeDown()
	removeDown()
	assert.Equal(t, 1, bus.Listeners())
	assert.Equal(t, 0, bus.Dispatch(KeyDown, KeyIDRight))

	removeUp()
	assert.Equal(t, 0, bus.Listeners())
}

func TestKeyBus_RemoveInsideListener(t *testing.T) {
	bus := NewKeyBus()
	calls := 0
	var remove func()
	remove = bus.AddKeyListener(KeyDown, func(string) {
		calls++
		remove()
	})
	bus.Dispatch(KeyDown, KeyIDRight)
	bus.Dispatch(KeyDown, KeyIDRight)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Listeners())
}

func TestKeyEventKind_String(t *testing.T) {
	assert.Equal(t, "keydown", KeyDown.String())
	assert.Equal(t, "keyup", KeyUp.String())
}
