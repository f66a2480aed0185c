package game

import (
	"sync/atomic"
)

// Metrics 记录会话运行期的关键指标（用于监控与调试）
type Metrics struct {
	TickCount       int64 // 已执行的 Tick 次数
	TotalTickNs     int64 // Tick 累计耗时（纳秒）
	KeysAccepted    int64 // 被接受的移动键事件
	KeysIgnored     int64 // 无法识别而被忽略的按键
	StaleKeyDropped int64 // 监听已退订后才到达的按键事件
	StaleFrames     int64 // 循环停止后才到达的过期帧
	Activations     int64 // 进入 Active 次数
	Deactivations   int64 // 离开 Active 次数
}

func (m *Metrics) IncKeysAccepted()    { atomic.AddInt64(&m.KeysAccepted, 1) }
func (m *Metrics) IncKeysIgnored()     { atomic.AddInt64(&m.KeysIgnored, 1) }
func (m *Metrics) IncStaleKeyDropped() { atomic.AddInt64(&m.StaleKeyDropped, 1) }
func (m *Metrics) IncStaleFrames()     { atomic.AddInt64(&m.StaleFrames, 1) }
func (m *Metrics) IncActivations()     { atomic.AddInt64(&m.Activations, 1) }
func (m *Metrics) IncDeactivations()   { atomic.AddInt64(&m.Deactivations, 1) }
func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":        tick,
		"keys_accepted":     atomic.LoadInt64(&m.KeysAccepted),
		"keys_ignored":      atomic.LoadInt64(&m.KeysIgnored),
		"stale_key_dropped": atomic.LoadInt64(&m.StaleKeyDropped),
		"stale_frames":      atomic.LoadInt64(&m.StaleFrames),
		"activations":       atomic.LoadInt64(&m.Activations),
		"deactivations":     atomic.LoadInt64(&m.Deactivations),
		"avg_tick_ms":       avgMs,
	}
}
