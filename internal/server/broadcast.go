package server

import (
	"context"

	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/protocol"
	"github.com/palemoky/yewchat/internal/protocol/codec"
)

// broadcast 发送给所有已注册的连接，except 为 nil 时包括所有人
func (s *Server) broadcast(env *protocol.Envelope, except *Peer) {
	text, err := codec.Encode(env)
	if err != nil {
		logger.LogError("encode %s: %v", env.Kind, err)
		return
	}

	s.peersMu.RLock()
	targets := make([]*Peer, 0, len(s.peers))
	for _, p := range s.peers {
		if p == except || p.Name() == "" {
			continue
		}
		targets = append(targets, p)
	}
	s.peersMu.RUnlock()

	sent := 0
	for _, p := range targets {
		if p.Send(text) {
			sent++
		}
	}
	s.metrics.ObserveOut(string(env.Kind), sent)
}

// broadcastUsers 广播当前用户列表
func (s *Server) broadcastUsers(ctx context.Context) {
	names, err := s.registry.List(ctx)
	if err != nil {
		logger.LogError("list users: %v", err)
		return
	}
	s.broadcast(protocol.NewUsers(names), nil)
}
