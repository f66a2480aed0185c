package game

import "sync"

// FrameID 已预约帧的句柄；0 表示没有预约
type FrameID uint64

// FrameScheduler “下一帧执行”原语：预约回调、取消尚未执行的预约
// RequestFrame 不得在调用内部同步执行 fn
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// LoopDriver 逐帧驱动循环：每帧执行一次 body，然后为下一帧重新预约
// 状态只有 Stopped / Running 两种。Start、Stop 要求调用方已持有 mu，
// 帧回调本身会获取 mu，因此 body 与按键处理不会并发执行
type LoopDriver struct {
	mu    sync.Locker
	sched FrameScheduler
	body  func()

	// onStale 在过期帧（上一次运行遗留的回调）到达时调用，用于计数
	onStale func()

	running bool
	gen     uint64 // 每次 Start/Stop 递增，过期回调据此识别自己
	pending FrameID
}

// NewLoopDriver 创建处于 Stopped 状态的驱动器
func NewLoopDriver(mu sync.Locker, sched FrameScheduler, body func()) *LoopDriver {
	return &LoopDriver{mu: mu, sched: sched, body: body}
}

// Running 是否处于运行状态（调用方须持有 mu）
func (d *LoopDriver) Running() bool { return d.running }

// Start Stopped→Running 并预约第一帧；已在运行时忽略，返回 false
func (d *LoopDriver) Start() bool {
	if d.running {
		return false
	}
	d.running = true
	d.gen++
	d.schedule()
	return true
}

// Stop Running→Stopped 并取消尚未执行的预约；已停止时为空操作
// 可以在 body 内调用：本帧结束后不会再预约
func (d *LoopDriver) Stop() bool {
	if !d.running {
		return false
	}
	d.running = false
	d.gen++
	if d.pending != 0 {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
	}
	return true
}

func (d *LoopDriver) schedule() {
	gen := d.gen
	d.pending = d.sched.RequestFrame(func() { d.frame(gen) })
}

// frame 单帧：校验代次 → 执行 body → 重新预约
func (d *LoopDriver) frame(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running || gen != d.gen {
		if d.onStale != nil {
			d.onStale()
		}
		return
	}
	d.pending = 0
	d.body()
	// body 内可能已 Stop（或 Stop 后又 Start，新的一帧已由 Start 预约）
	if !d.running || gen != d.gen {
		return
	}
	d.schedule()
}
