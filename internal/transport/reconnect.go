package transport

import (
	"time"

	"github.com/palemoky/yewchat/internal/logger"
)

// tryReconnect 尝试重连（指数退避）
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	backoff := c.opts.ReconnectInterval
	maxAttempts := int32(c.opts.ReconnectAttempts)

	for c.reconnectCount.Load() < maxAttempts {
		attempt := c.reconnectCount.Add(1)
		if c.OnReconnecting != nil {
			c.OnReconnecting(int(attempt), int(maxAttempts))
		}
		logger.LogInfo("reconnecting (%d/%d) in %s", attempt, maxAttempts, backoff)

		select {
		case <-time.After(backoff):
		case <-c.done:
			c.reconnecting.Store(false)
			return
		}

		// 计算下一次退避时间 (最大 30 秒)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}

		conn, err := c.dial()
		if err != nil {
			logger.LogError("reconnect failed: %v", err)
			continue
		}
		if c.isClosed() {
			_ = conn.Close()
			c.reconnecting.Store(false)
			return
		}

		c.reconnecting.Store(false)
		c.attach(conn)
		logger.LogInfo("reconnected to %s", c.ServerURL)
		if c.OnReconnect != nil {
			c.OnReconnect()
		}
		return
	}

	// 重连失败
	logger.LogError("giving up after %d reconnect attempts", maxAttempts)
	c.reconnecting.Store(false)
	c.shutdown()
}
