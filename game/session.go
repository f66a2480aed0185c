package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase 视图的粗粒度生命周期
type Phase int

const (
	PhaseIdle   Phase = iota // 开始界面
	PhaseActive              // 游戏进行中：循环与按键监听存在
	PhaseEnded               // 结束界面
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*p = PhaseIdle
	case "active":
		*p = PhaseActive
	case "ended":
		*p = PhaseEnded
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// ErrSessionClosed 视图已卸载
var ErrSessionClosed = errors.New("session closed")

// Snapshot 供渲染层读取的只读状态
type Snapshot struct {
	ID    string   `json:"id"`
	Phase Phase    `json:"phase"`
	X     float64  `json:"x"`
	Held  []string `json:"held"`
	Tick  int64    `json:"tick"`
	Field Field    `json:"field"`
}

// Option 会话可选参数
type Option func(*Session)

// WithLogger 指定日志
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPublisher 每个 Tick 与每次阶段变化后回调一次快照
// 回调在会话锁内执行，不能反过来调用会话方法
func WithPublisher(fn func(Snapshot)) Option {
	return func(s *Session) { s.publish = fn }
}

// Session 一个视图的全部可变状态：阶段、位置、按键集合、循环驱动器
// 所有变更都在 mu 下串行进行
type Session struct {
	ID string

	mu      sync.Mutex
	field   Field
	keys    KeySource
	driver  *LoopDriver
	metrics Metrics
	log     *zap.SugaredLogger
	publish func(Snapshot)

	phase      Phase
	x          float64
	input      InputState
	tick       int64
	activation uint64   // 每次进入 Active 递增，旧监听据此失效
	removers   []func() // 当前激活期注册的按键监听
	closed     bool
}

// NewSession 视图挂载：创建处于 Idle 的会话，角色居中
func NewSession(id string, field Field, keys KeySource, sched FrameScheduler, opts ...Option) *Session {
	s := &Session{
		ID:    id,
		field: field,
		keys:  keys,
		log:   zap.NewNop().Sugar(),
		phase: PhaseIdle,
		x:     field.Center(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.driver = NewLoopDriver(&s.mu, sched, s.step)
	s.driver.onStale = s.metrics.IncStaleFrames
	return s
}

// Start 开始（或重新开始）游戏：重置位置与按键，注册监听并启动循环
// 已在 Active 时先完整拆除上一次激活
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.phase == PhaseActive {
		s.deactivate("restart")
	}

	s.x = s.field.Center()
	s.input.Reset()
	s.tick = 0
	s.phase = PhaseActive
	s.activation++
	act := s.activation
	s.removers = append(s.removers,
		s.keys.AddKeyListener(KeyDown, func(key string) { s.onKey(act, KeyDown, key) }),
		s.keys.AddKeyListener(KeyUp, func(key string) { s.onKey(act, KeyUp, key) }),
	)
	s.driver.Start()
	s.metrics.IncActivations()
	s.log.Infow("session started", "session", s.ID, "activation", act, "x", s.x)
	s.emit()
	return nil
}

// End 外部触发：Active→Ended。非 Active 时为空操作
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.phase != PhaseActive {
		return nil
	}
	s.deactivate("end")
	s.phase = PhaseEnded
	s.emit()
	return nil
}

// Close 视图卸载：拆除监听与循环，之后的 Start 返回 ErrSessionClosed
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.phase == PhaseActive {
		s.deactivate("unmount")
	}
	s.closed = true
	s.log.Infow("session closed", "session", s.ID)
}

// deactivate 拆除是建立的逆过程：先退订监听，再停止循环（调用方须持有 mu）
func (s *Session) deactivate(reason string) {
	for _, remove := range s.removers {
		remove()
	}
	s.removers = nil
	s.driver.Stop()
	s.input.Reset()
	s.metrics.IncDeactivations()
	s.log.Infow("session deactivated", "session", s.ID, "reason", reason, "ticks", s.tick, "x", s.x)
}

// onKey 按键监听：激活期已过时丢弃
func (s *Session) onKey(act uint64, kind KeyEventKind, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive || act != s.activation {
		s.metrics.IncStaleKeyDropped()
		s.log.Debugw("stale key event dropped", "session", s.ID, "kind", kind.String(), "key", key)
		return
	}
	var ok bool
	if kind == KeyDown {
		ok = s.input.OnKeyDown(key)
	} else {
		ok = s.input.OnKeyUp(key)
	}
	if !ok {
		s.metrics.IncKeysIgnored()
		return
	}
	s.metrics.IncKeysAccepted()
}

// step 单个 Tick：读取当前按键集合 → 积分 → 发布（由 LoopDriver 在 mu 下调用）
func (s *Session) step() {
	start := time.Now()
	s.x = Integrate(s.x, s.input, s.field)
	s.tick++
	s.metrics.AddTick(time.Since(start).Nanoseconds())
	s.emit()
}

func (s *Session) emit() {
	if s.publish != nil {
		s.publish(s.snapshotLocked())
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:    s.ID,
		Phase: s.phase,
		X:     s.x,
		Held:  s.input.Keys(),
		Tick:  s.tick,
		Field: s.field,
	}
}

// Snapshot 当前状态
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Phase 当前阶段
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Position 当前位置
func (s *Session) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x
}

// Running 循环是否在运行
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.Running()
}

// Metrics 运行指标
func (s *Session) Metrics() *Metrics { return &s.metrics }
