package server

import (
	"context"
	"strings"

	"github.com/palemoky/yewchat/internal/apperrors"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/protocol"
	"github.com/palemoky/yewchat/internal/protocol/codec"
)

// handlerFunc 统一的处理器函数签名
type handlerFunc func(p *Peer, env *protocol.Envelope)

// initHandlers 初始化消息处理器映射；users 只由服务器下发
func (s *Server) initHandlers() {
	s.handlers = map[protocol.Kind]handlerFunc{
		protocol.KindRegister: s.handleRegister,
		protocol.KindMessage:  s.handleMessage,
		protocol.KindTyping:   s.handleTyping,
	}
}

// handleFrame 解码并分发一帧
func (s *Server) handleFrame(p *Peer, text string) {
	env, err := codec.Decode(text)
	if err != nil {
		s.metrics.Malformed.Inc()
		logger.LogDebug("peer %s: drop frame (code %d): %v", p.ID, apperrors.CodeOf(err), err)
		return
	}
	s.metrics.ObserveIn(string(env.Kind))

	if env.Kind != protocol.KindRegister && p.Name() == "" {
		logger.LogDebug("peer %s: drop %s before register", p.ID, env.Kind)
		return
	}

	handler, ok := s.handlers[env.Kind]
	if !ok {
		logger.LogDebug("peer %s: ignore %s from client", p.ID, env.Kind)
		return
	}
	handler(p, env)
}

// handleRegister 绑定用户名并广播用户列表
func (s *Server) handleRegister(p *Peer, env *protocol.Envelope) {
	name := env.Text()
	if strings.TrimSpace(name) == "" {
		s.metrics.Malformed.Inc()
		logger.LogDebug("peer %s: blank register name", p.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	prev := p.bind(name)
	if prev != name {
		if prev != "" {
			if err := s.registry.Leave(ctx, prev); err != nil {
				logger.LogError("peer %s: %v", p.ID, err)
			}
		} else {
			s.metrics.Registered.Inc()
		}
		if err := s.registry.Join(ctx, name); err != nil {
			logger.LogError("peer %s: %v", p.ID, err)
		}
		logger.LogInfo("peer %s registered as %q", p.ID, name)
	}
	s.broadcastUsers(ctx)
}

// handleMessage 盖上发送者和时间戳后广播给所有人（包括发送者）
func (s *Server) handleMessage(p *Peer, env *protocol.Envelope) {
	stamp := s.now().Format(s.config.Server.TimestampLayout)
	out, err := codec.NewChatMessage(protocol.MessageData{
		From:      p.Name(),
		Message:   env.Text(),
		Timestamp: protocol.StringPtr(stamp),
	})
	if err != nil {
		logger.LogError("peer %s: build message: %v", p.ID, err)
		return
	}
	s.broadcast(out, nil)
}

// handleTyping 以绑定的用户名转发输入状态给其他人
func (s *Server) handleTyping(p *Peer, env *protocol.Envelope) {
	ts, err := codec.DecodeTypingStatus(env.Text())
	if err != nil {
		s.metrics.Malformed.Inc()
		logger.LogDebug("peer %s: %v", p.ID, err)
		return
	}
	out, err := codec.NewTyping(p.Name(), ts.IsTyping)
	if err != nil {
		logger.LogError("peer %s: build typing: %v", p.ID, err)
		return
	}
	s.broadcast(out, p)
}

// disconnect 连接断开后离开注册表并广播用户列表
func (s *Server) disconnect(p *Peer) {
	if !s.removePeer(p) {
		return
	}
	p.Close()
	s.limiter.Remove(p.ID)

	name := p.Name()
	logger.LogInfo("peer %s (%q) disconnected", p.ID, name)
	if name == "" {
		return
	}
	s.metrics.Registered.Dec()

	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()
	if err := s.registry.Leave(ctx, name); err != nil {
		logger.LogError("peer %s: %v", p.ID, err)
	}
	s.broadcastUsers(ctx)
}

// admit 限流检查。handle 表示是否处理这一帧，keep 为 false 时应断开连接
func (s *Server) admit(p *Peer) (handle, keep bool) {
	if s.limiter.Allow(p.ID) {
		return true, true
	}
	s.metrics.RateLimited.Inc()
	if s.limiter.Overruns(p.ID) >= maxOverruns {
		logger.LogError("peer %s exceeded frame rate, disconnecting", p.ID)
		return false, false
	}
	logger.LogDebug("peer %s over frame rate, frame dropped", p.ID)
	return false, true
}

// receive 处理 ReadPump 读到的一帧，返回 false 表示应断开连接
func (s *Server) receive(p *Peer, text string) bool {
	handle, keep := s.admit(p)
	if handle {
		s.handleFrame(p, text)
	}
	return keep
}
