package server

import (
	"net/http"

	"go.uber.org/zap"

	"spaceshooter/config"
	"spaceshooter/game"
)

// Server HTTP + WebSocket 宿主：把浏览器视图接到游戏会话上
type Server struct {
	cfg     *config.Config
	manager *SessionManager
	log     *zap.SugaredLogger
}

// NewServer 所有视图共享 sched 作为帧时钟
func NewServer(cfg *config.Config, sched game.FrameScheduler, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		cfg:     cfg,
		manager: NewSessionManager(cfg.Game.Field(), sched, log),
		log:     log,
	}
}

// Manager 会话管理器
func (s *Server) Manager() *SessionManager { return s.manager }

// Handler 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	// 前后端分离：将 / 映射到静态资源目录
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	// 管理与监控接口
	mux.HandleFunc("/admin/config", s.HandleAdminConfig)
	mux.HandleFunc("/admin/end", s.HandleEnd)
	mux.HandleFunc("/metrics", s.HandleMetrics)
	mux.HandleFunc("/sessions", s.HandleSessions)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Close 卸载所有视图
func (s *Server) Close() {
	s.manager.CloseAll()
}
