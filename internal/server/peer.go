package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/yewchat/internal/logger"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10
)

// Peer 一个 WebSocket 连接
type Peer struct {
	ID string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	name   string // register 后绑定的用户名
	closed bool
}

func newPeer(s *Server, conn *websocket.Conn) *Peer {
	return &Peer{
		ID:     uuid.New().String(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, s.config.Server.SendBuffer),
	}
}

// Name 已绑定的用户名，未注册时为空
func (p *Peer) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// bind 绑定用户名，返回之前的用户名
func (p *Peer) bind(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.name
	p.name = name
	return prev
}

// ReadPump 从 WebSocket 读取消息
func (p *Peer) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		p.server.disconnect(p)
		_ = p.conn.Close()
	}()

	p.conn.SetReadLimit(p.server.config.Server.MaxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.LogError("peer %s read: %v", p.ID, err)
			}
			return
		}
		if !p.server.receive(p, string(message)) {
			return
		}
	}
}

// WritePump 向 WebSocket 写入消息
func (p *Peer) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case message, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send 投递一帧，返回是否入队。缓冲区满时断开慢连接
func (p *Peer) Send(text string) bool {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return false
	}
	select {
	case p.send <- []byte(text):
		p.mu.RUnlock()
		return true
	default:
	}
	p.mu.RUnlock()

	logger.LogError("peer %s send buffer full, closing", p.ID)
	p.Close()
	return false
}

// Close 关闭发送通道，WritePump 随后发送关闭帧
func (p *Peer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.closed = true
		close(p.send)
	}
}
