// Package server is the chat relay: it binds usernames to websocket
// connections, keeps the shared user list and fans envelopes out to peers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/palemoky/yewchat/internal/config"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/metrics"
	"github.com/palemoky/yewchat/internal/protocol"
	"github.com/palemoky/yewchat/internal/server/storage"
)

const registryTimeout = 3 * time.Second

// Option 服务器可选参数
type Option func(*Server)

// WithClock 替换消息时间戳使用的时钟
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// Server 中继服务器
type Server struct {
	config   *config.Config
	registry storage.Registry
	metrics  *metrics.Metrics
	router   *mux.Router
	upgrader websocket.Upgrader
	now      func() time.Time
	handlers map[protocol.Kind]handlerFunc
	limiter  *frameLimiter

	peers   map[string]*Peer
	peersMu sync.RWMutex

	httpMu     sync.Mutex
	httpServer *http.Server
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, registry storage.Registry, m *metrics.Metrics, opts ...Option) *Server {
	if registry == nil {
		registry = storage.NewMemoryRegistry()
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		config:   cfg,
		registry: registry,
		metrics:  m,
		now:      time.Now,
		peers:    make(map[string]*Peer),
		limiter:  newFrameLimiter(cfg.Server.MaxFramesPerSecond, time.Now),
		stop:     make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 终端客户端不带 Origin
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initHandlers()
	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWebSocket)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle(s.config.Metrics.Path, s.metrics.Handler()).Methods(http.MethodGet)
	s.router = r
}

// Handler 返回 HTTP 路由
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 启动服务器并阻塞，直到 Shutdown 被调用
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.httpMu.Lock()
	s.httpServer = srv
	s.httpMu.Unlock()

	go s.monitorStats(30 * time.Second)

	logger.LogInfo("relay listening on ws://%s/ws", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError("websocket upgrade: %v", err)
		return
	}

	peer := newPeer(s, conn)
	s.addPeer(peer)
	logger.LogInfo("peer %s connected from %s", peer.ID, clientIP(r))

	go peer.ReadPump()
	go peer.WritePump()
}

type healthResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
	Users       int    `json:"users"`
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Connections: s.PeerCount()}

	ctx, cancel := context.WithTimeout(r.Context(), registryTimeout)
	defer cancel()
	names, err := s.registry.List(ctx)
	if err != nil {
		resp.Status = "degraded"
		logger.LogError("health: %v", err)
	}
	resp.Users = len(names)

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) addPeer(p *Peer) {
	s.peersMu.Lock()
	s.peers[p.ID] = p
	s.peersMu.Unlock()
	s.metrics.Connections.Inc()
}

// removePeer 注销连接，返回是否确实移除
func (s *Server) removePeer(p *Peer) bool {
	s.peersMu.Lock()
	defer s.peersMu.Unlock()

	if _, ok := s.peers[p.ID]; !ok {
		return false
	}
	delete(s.peers, p.ID)
	s.metrics.Connections.Dec()
	return true
}

// PeerCount 当前连接数
func (s *Server) PeerCount() int {
	s.peersMu.RLock()
	defer s.peersMu.RUnlock()
	return len(s.peers)
}
