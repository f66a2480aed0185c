package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClock_RequestedDuringFrameRunsNextFrame(t *testing.T) {
	clock := NewManualClock()
	var order []string
	clock.RequestFrame(func() {
		order = append(order, "a")
		clock.RequestFrame(func() { order = append(order, "c") })
	})
	clock.RequestFrame(func() { order = append(order, "b") })

	assert.Equal(t, 2, clock.Fire())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, clock.Fire())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, clock.Fire())
}

func TestManualClock_Cancel(t *testing.T) {
	clock := NewManualClock()
	ran := false
	id := clock.RequestFrame(func() { ran = true })
	clock.CancelFrame(id)
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, 0, clock.Fire())
	assert.False(t, ran)

	// 取消不存在的句柄无影响
	clock.CancelFrame(999)
}

func TestManualClock_CancelLaterInSameFrame(t *testing.T) {
	clock := NewManualClock()
	ran := false
	var second FrameID
	clock.RequestFrame(func() { clock.CancelFrame(second) })
	second = clock.RequestFrame(func() { ran = true })

	assert.Equal(t, 1, clock.Fire())
	assert.False(t, ran)
}

func TestFrameClock_Dispatches(t *testing.T) {
	clock := NewFrameClock(200)
	defer clock.Close()
	assert.Equal(t, 5*time.Millisecond, clock.Interval())

	var n atomic.Int32
	var tick func()
	tick = func() {
		if n.Add(1) < 3 {
			clock.RequestFrame(tick)
		}
	}
	clock.RequestFrame(tick)
	clock.Start()
	clock.Start()

	require.Eventually(t, func() bool { return n.Load() == 3 }, 2*time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, clock.Frames(), uint64(3))
}

func TestFrameClock_CloseDiscardsPending(t *testing.T) {
	clock := NewFrameClock(0)
	assert.Equal(t, time.Second/DefaultFrameRate, clock.Interval())
	clock.RequestFrame(func() { t.Error("closed clock must not dispatch") })
	clock.Close()
	clock.Close()
	assert.Equal(t, 0, clock.Pending())

	// 关闭后 Start 不会再启动协程
	clock.Start()
}

func TestFrameClock_CloseWithoutStart(t *testing.T) {
	clock := NewFrameClock(60)
	clock.Close()
}
