// Package transport is the websocket channel between the chat view and its
// peer. Each text frame carries one encoded envelope.
package transport

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/yewchat/internal/apperrors"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
	maxBackoff       = 30 * time.Second
)

// ErrClosed is returned by Receive once the client is closed.
var ErrClosed = errors.New("connection closed")

// Options 客户端参数
type Options struct {
	SendBuffer        int           // 发送缓冲区大小
	ReconnectAttempts int           // 最大重连次数，0 表示不重连
	ReconnectInterval time.Duration // 首次重连间隔，之后指数退避
}

// Client WebSocket 客户端
type Client struct {
	ServerURL string
	opts      Options

	send    chan []byte
	receive chan string
	done    chan struct{}

	// 回调
	OnError        func(error)            // 错误回调
	OnClose        func()                 // 连接最终关闭回调
	OnReconnecting func(attempt, max int) // 正在重连回调
	OnReconnect    func()                 // 重连成功回调

	mu             sync.RWMutex
	conn           *websocket.Conn
	connected      bool
	closed         bool
	reconnecting   atomic.Bool
	reconnectCount atomic.Int32
	closeNotified  atomic.Bool
}

// NewClient 创建客户端
func NewClient(serverURL string, opts Options) *Client {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 256
	}
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = 2 * time.Second
	}
	return &Client{
		ServerURL: serverURL,
		opts:      opts,
		send:      make(chan []byte, opts.SendBuffer),
		receive:   make(chan string, opts.SendBuffer),
		done:      make(chan struct{}),
	}
}

// Connect 连接服务器
func (c *Client) Connect() error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	c.attach(conn)
	return nil
}

func (c *Client) dial() (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.Dial(c.ServerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.ServerURL, err)
	}
	return conn, nil
}

// attach 绑定新连接并启动读写协程
func (c *Client) attach(conn *websocket.Conn) {
	connDone := make(chan struct{})

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readPump(conn, connDone)
	go c.writePump(conn, connDone)
}

// TrySend queues text for delivery without blocking. It fails with
// apperrors.ErrSendFailure when the connection is down or the buffer is full.
func (c *Client) TrySend(text string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed || !c.connected {
		return fmt.Errorf("%w: connection closed", apperrors.ErrSendFailure)
	}

	select {
	case c.send <- []byte(text):
		return nil
	default:
		return fmt.Errorf("%w: send buffer full", apperrors.ErrSendFailure)
	}
}

// Receive 接收一帧 (阻塞)
func (c *Client) Receive() (string, error) {
	select {
	case frame := <-c.receive:
		return frame, nil
	case <-c.done:
		return "", ErrClosed
	}
}

// ReceiveWithTimeout 带超时接收一帧
func (c *Client) ReceiveWithTimeout(timeout time.Duration) (string, error) {
	select {
	case frame := <-c.receive:
		return frame, nil
	case <-time.After(timeout):
		return "", errors.New("receive timeout")
	case <-c.done:
		return "", ErrClosed
	}
}

// Close 关闭连接，不再重连
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.connected = false
	close(c.done)
	if c.conn != nil {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	}
}

// shutdown 连接不可恢复时关闭并通知一次
func (c *Client) shutdown() {
	c.Close()
	if c.closeNotified.CompareAndSwap(false, true) && c.OnClose != nil {
		c.OnClose()
	}
}

// IsConnected 是否已连接
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.connected
}

// IsReconnecting 是否正在重连
func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
