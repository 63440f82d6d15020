package transport

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/yewchat/internal/logger"
)

// readPump 从服务器读取消息
func (c *Client) readPump(conn *websocket.Conn, connDone chan struct{}) {
	defer c.handleReadExit(conn, connDone)

	setupPongHandler(conn)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}

		// 收到数据说明连接可用，清零重连计数
		c.reconnectCount.Store(0)

		select {
		case c.receive <- string(message):
		case <-c.done:
			return
		}
	}
}

func (c *Client) handleReadExit(conn *websocket.Conn, connDone chan struct{}) {
	if r := recover(); r != nil {
		logger.LogPanic(r)
	}
	close(connDone)
	_ = conn.Close()

	c.mu.Lock()
	if c.conn == conn {
		c.connected = false
	}
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}

	// 尝试重连
	if c.opts.ReconnectAttempts > 0 && c.reconnecting.CompareAndSwap(false, true) {
		go c.tryReconnect()
		return
	}
	c.shutdown()
}

func setupPongHandler(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		logger.LogError("websocket read: %v", err)
		if c.OnError != nil {
			c.OnError(err)
		}
	}
}

// writePump 向服务器写入消息
func (c *Client) writePump(conn *websocket.Conn, connDone chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.LogError("websocket write: %v", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-connDone:
			return

		case <-c.done:
			return
		}
	}
}
