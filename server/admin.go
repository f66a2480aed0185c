package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"spaceshooter/game"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminConfig 读取与更新新视图使用的场地参数
// GET /admin/config  返回当前配置
// POST /admin/config 以 JSON 载荷更新部分字段
func (s *Server) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	type cfg struct {
		Width       *float64 `json:"width,omitempty"`
		Height      *float64 `json:"height,omitempty"`
		ActorWidth  *float64 `json:"actorWidth,omitempty"`
		ActorHeight *float64 `json:"actorHeight,omitempty"`
		Step        *float64 `json:"step,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.manager.Field())
		return
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		f := s.manager.Field()
		if body.Width != nil {
			f.Width = *body.Width
		}
		if body.Height != nil {
			f.Height = *body.Height
		}
		if body.ActorWidth != nil {
			f.ActorWidth = *body.ActorWidth
		}
		if body.ActorHeight != nil {
			f.ActorHeight = *body.ActorHeight
		}
		if body.Step != nil {
			f.Step = *body.Step
		}
		if err := s.manager.SetField(f); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "field": f})
		s.log.Infof("config updated: width=%.1f actorWidth=%.1f step=%.2f", f.Width, f.ActorWidth, f.Step)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleEnd 外部触发结束：POST /admin/end?view=<id>
func (s *Server) HandleEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := session.End(); err != nil {
		if errors.Is(err, game.ErrSessionClosed) {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, session.Snapshot())
}

// HandleMetrics 输出指定视图的运行指标
// GET /metrics?view=<id>
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookup(w, r)
	if !ok {
		return
	}
	snap := session.Snapshot()
	writeJSON(w, map[string]any{
		"view":    snap.ID,
		"phase":   snap.Phase,
		"tick":    snap.Tick,
		"metrics": session.Metrics().Snapshot(),
	})
}

// HandleSessions 列出所有已挂载视图的快照
func (s *Server) HandleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.manager.Snapshots())
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	viewID := r.URL.Query().Get("view")
	if viewID == "" {
		http.Error(w, "missing view query", http.StatusBadRequest)
		return nil, false
	}
	session, ok := s.manager.Get(viewID)
	if !ok {
		http.Error(w, "view not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
