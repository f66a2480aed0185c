package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"spaceshooter/game"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ClientMessage 入站 JSON 文本消息
// 示例：{"type":"keydown","key":"ArrowLeft"}、{"type":"start"}
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// StateMessage 出站状态消息
type StateMessage struct {
	Type string `json:"type"`
	game.Snapshot
}

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		// 为了实时性丢弃本帧，防止阻塞 Tick
	}
}

// Close 关闭发送队列，写协程随之退出并关闭连接
func (c *ClientConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端按键，经由该视图的 KeyBus 分发给会话的监听
// 连接断开即视图卸载
func (c *ClientConn) readPump(s *Server, session *game.Session, bus *game.KeyBus) {
	defer c.ws.Close()
	defer c.Close()
	defer s.manager.Unmount(session.ID, session)
	c.ws.SetReadLimit(1 << 12)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warnw("ws read error", "session", session.ID, "err", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.log.Debugw("invalid client message", "session", session.ID, "err", err)
			continue
		}
		switch strings.ToLower(msg.Type) {
		case "keydown":
			bus.Dispatch(game.KeyDown, msg.Key)
		case "keyup":
			bus.Dispatch(game.KeyUp, msg.Key)
		case "start":
			if err := session.Start(); err != nil {
				return
			}
		default:
			s.log.Debugw("unknown client message", "session", session.ID, "type", msg.Type)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?view=<id>，一条连接对应一个挂载的游戏视图
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	viewID := r.URL.Query().Get("view")
	if viewID == "" {
		http.Error(w, "missing view query", http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("upgrade error", "err", err)
		return
	}

	client := NewClientConn(ws)
	bus := game.NewKeyBus()
	session := s.manager.Mount(viewID, bus, func(snap game.Snapshot) {
		client.Enqueue(encodeState(snap))
	})
	client.Enqueue(encodeState(session.Snapshot()))

	go client.writePump()
	go client.readPump(s, session, bus)
}

func encodeState(snap game.Snapshot) []byte {
	b, _ := json.Marshal(StateMessage{Type: "state", Snapshot: snap})
	return b
}
