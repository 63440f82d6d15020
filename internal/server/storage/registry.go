// Package storage keeps the relay's list of registered users.
package storage

import (
	"context"
	"sync"
)

// Registry tracks registered usernames in first-join order. A name joined by
// several connections stays listed until every one of them leaves.
type Registry interface {
	Join(ctx context.Context, name string) error
	Leave(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// MemoryRegistry 单实例内存注册表
type MemoryRegistry struct {
	mu     sync.RWMutex
	order  []string
	counts map[string]int
}

// NewMemoryRegistry 创建内存注册表
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{counts: make(map[string]int)}
}

// Join 加入，重复加入只增加引用计数
func (r *MemoryRegistry) Join(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[name]++
	if r.counts[name] == 1 {
		r.order = append(r.order, name)
	}
	return nil
}

// Leave 离开，引用计数归零时移除
func (r *MemoryRegistry) Leave(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.counts[name]
	if !ok {
		return nil
	}
	if n > 1 {
		r.counts[name] = n - 1
		return nil
	}
	delete(r.counts, name)
	for i, v := range r.order {
		if v == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List 按加入顺序返回用户名
func (r *MemoryRegistry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names, nil
}
