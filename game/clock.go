package game

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultFrameRate 默认刷新频率（60 FPS，接近显示器刷新）
	DefaultFrameRate = 60
)

// frameQueue 预约队列：某一帧只执行在该帧开始前预约的回调，
// 帧内新预约的回调顺延到下一帧
type frameQueue struct {
	mu      sync.Mutex
	nextID  FrameID
	order   []FrameID
	pending map[FrameID]func()
}

func (q *frameQueue) request(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[FrameID]func())
	}
	q.nextID++
	id := q.nextID
	q.pending[id] = fn
	q.order = append(q.order, id)
	return id
}

func (q *frameQueue) cancel(id FrameID) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

func (q *frameQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *frameQueue) clear() {
	q.mu.Lock()
	q.order = nil
	q.pending = nil
	q.mu.Unlock()
}

// dispatch 执行一帧，回调在锁外逐个执行；返回实际执行的数量
func (q *frameQueue) dispatch() int {
	q.mu.Lock()
	ids := q.order
	q.order = nil
	q.mu.Unlock()

	n := 0
	for _, id := range ids {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()
		if !ok {
			// 已被取消
			continue
		}
		fn()
		n++
	}
	return n
}

// FrameClock 生产环境的帧时钟：单协程 Ticker 推进，所有回调在该协程内串行执行
type FrameClock struct {
	queue    frameQueue
	interval time.Duration
	frames   atomic.Uint64

	mu      sync.Mutex
	started bool
	closed  bool
	quit    chan struct{}
	done    chan struct{}
}

// NewFrameClock 按给定频率创建帧时钟（<=0 时使用默认值）
func NewFrameClock(rate int) *FrameClock {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &FrameClock{
		interval: time.Second / time.Duration(rate),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Interval 帧间隔
func (c *FrameClock) Interval() time.Duration { return c.interval }

// Frames 已推进的帧数
func (c *FrameClock) Frames() uint64 { return c.frames.Load() }

// RequestFrame 预约下一帧执行 fn
func (c *FrameClock) RequestFrame(fn func()) FrameID { return c.queue.request(fn) }

// CancelFrame 取消尚未执行的预约
func (c *FrameClock) CancelFrame(id FrameID) { c.queue.cancel(id) }

// Pending 当前等待执行的预约数
func (c *FrameClock) Pending() int { return c.queue.size() }

// Start 启动帧循环（重复调用无影响）
func (c *FrameClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.closed {
		return
	}
	c.started = true
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.quit:
				return
			case <-ticker.C:
				c.queue.dispatch()
				c.frames.Add(1)
			}
		}
	}()
}

// Close 停止帧循环并等待协程退出，丢弃未执行的预约
func (c *FrameClock) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	started := c.started
	close(c.quit)
	c.mu.Unlock()
	if started {
		<-c.done
	}
	c.queue.clear()
}

// ManualClock 手动推进的帧时钟，用于测试与无头运行
type ManualClock struct {
	queue frameQueue
}

// NewManualClock 创建手动时钟
func NewManualClock() *ManualClock { return &ManualClock{} }

// RequestFrame 预约下一次 Fire 时执行 fn
func (c *ManualClock) RequestFrame(fn func()) FrameID { return c.queue.request(fn) }

// CancelFrame 取消尚未执行的预约
func (c *ManualClock) CancelFrame(id FrameID) { c.queue.cancel(id) }

// Pending 当前等待执行的预约数
func (c *ManualClock) Pending() int { return c.queue.size() }

// Fire 推进一帧，返回执行的回调数
func (c *ManualClock) Fire() int { return c.queue.dispatch() }

// FireN 连续推进 n 帧
func (c *ManualClock) FireN(n int) {
	for i := 0; i < n; i++ {
		c.queue.dispatch()
	}
}
