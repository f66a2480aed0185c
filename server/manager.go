package server

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"spaceshooter/game"
)

// SessionManager 管理所有已挂载视图的会话生命周期
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	field    game.Field
	sched    game.FrameScheduler
	log      *zap.SugaredLogger
}

// NewSessionManager 所有会话共享同一个帧调度器
func NewSessionManager(field game.Field, sched game.FrameScheduler, log *zap.SugaredLogger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*game.Session),
		field:    field,
		sched:    sched,
		log:      log,
	}
}

// Mount 挂载视图：创建 Idle 会话。同 ID 已挂载时先卸载旧视图
func (m *SessionManager) Mount(id string, keys game.KeySource, publish func(game.Snapshot)) *game.Session {
	m.mu.Lock()
	old := m.sessions[id]
	s := game.NewSession(id, m.field, keys, m.sched,
		game.WithLogger(m.log),
		game.WithPublisher(publish),
	)
	m.sessions[id] = s
	m.mu.Unlock()

	if old != nil {
		m.log.Infow("view remounted, closing previous session", "session", id)
		old.Close()
	}
	m.log.Infow("view mounted", "session", id)
	return s
}

// Unmount 卸载视图；s 已被同 ID 的新视图替换时只关闭 s 本身
func (m *SessionManager) Unmount(id string, s *game.Session) {
	m.mu.Lock()
	if cur, ok := m.sessions[id]; ok && cur == s {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	s.Close()
	m.log.Infow("view unmounted", "session", id)
}

// Get 按 ID 查找会话
func (m *SessionManager) Get(id string) (*game.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len 已挂载的视图数
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Snapshots 所有会话的快照（按 ID 排序）
func (m *SessionManager) Snapshots() []game.Snapshot {
	m.mu.RLock()
	list := make([]*game.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.RUnlock()

	out := make([]game.Snapshot, 0, len(list))
	for _, s := range list {
		out = append(out, s.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Field 新挂载视图使用的场地参数
func (m *SessionManager) Field() game.Field {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.field
}

// SetField 更新场地参数，只影响之后挂载的视图
func (m *SessionManager) SetField(f game.Field) error {
	if err := f.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.field = f
	m.mu.Unlock()
	return nil
}

// CloseAll 卸载所有视图（服务退出时）
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	list := m.sessions
	m.sessions = make(map[string]*game.Session)
	m.mu.Unlock()
	for _, s := range list {
		s.Close()
	}
}
