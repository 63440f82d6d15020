package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// 连续超限达到该次数后断开连接
const maxOverruns = 5

// frameLimiter 按连接统计每秒入站帧数
type frameLimiter struct {
	mu     sync.Mutex
	limits map[string]*frameRate
	now    func() time.Time

	maxPerSecond int
}

type frameRate struct {
	count     int
	lastReset time.Time
	overruns  int // 超限次数
}

// newFrameLimiter 创建限流器，maxPerSecond <= 0 时不限流
func newFrameLimiter(maxPerSecond int, now func() time.Time) *frameLimiter {
	if now == nil {
		now = time.Now
	}
	return &frameLimiter{
		limits:       make(map[string]*frameRate),
		now:          now,
		maxPerSecond: maxPerSecond,
	}
}

// Allow 检查该连接是否还能发送一帧
func (fl *frameLimiter) Allow(peerID string) bool {
	if fl.maxPerSecond <= 0 {
		return true
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	now := fl.now()
	rate, exists := fl.limits[peerID]
	if !exists {
		fl.limits[peerID] = &frameRate{count: 1, lastReset: now}
		return true
	}

	// 超过 1 秒，重置计数
	if now.Sub(rate.lastReset) >= time.Second {
		rate.count = 1
		rate.lastReset = now
		return true
	}

	rate.count++
	if rate.count > fl.maxPerSecond {
		rate.overruns++
		return false
	}
	return true
}

// Overruns 该连接累计超限次数
func (fl *frameLimiter) Overruns(peerID string) int {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if rate, ok := fl.limits[peerID]; ok {
		return rate.overruns
	}
	return 0
}

// Remove 清除连接记录
func (fl *frameLimiter) Remove(peerID string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	delete(fl.limits, peerID)
}

// clientIP 获取客户端真实 IP，仅用于日志
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
