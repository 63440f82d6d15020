package server

import (
	"context"
	"runtime"
	"time"

	"github.com/palemoky/yewchat/internal/logger"
)

// monitorStats 定期记录服务器状态
func (s *Server) monitorStats(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			logger.LogInfo("[stats] peers: %d | goroutines: %d | heap: %.2f MB",
				s.PeerCount(), runtime.NumGoroutine(), float64(m.Alloc)/1024/1024)
		case <-s.stop:
			return
		}
	}
}

// Shutdown 关闭所有连接并停止 HTTP 服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	s.peersMu.RLock()
	for _, p := range s.peers {
		p.Close()
	}
	s.peersMu.RUnlock()

	s.httpMu.Lock()
	srv := s.httpServer
	s.httpMu.Unlock()
	if srv == nil {
		return nil
	}
	err := srv.Shutdown(ctx)
	logger.LogInfo("relay stopped")
	return err
}
