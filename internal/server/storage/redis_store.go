package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis key 后缀
const (
	usersKey    = "users"     // ZSET: name -> 加入序号
	refcountKey = "users:ref" // HASH: name -> 连接数
	seqKey      = "users:seq" // 自增序号
)

// joinScript 第一次加入时分配序号
var joinScript = redis.NewScript(`
local n = redis.call('HINCRBY', KEYS[2], ARGV[1], 1)
if n == 1 then
  local seq = redis.call('INCR', KEYS[3])
  redis.call('ZADD', KEYS[1], seq, ARGV[1])
end
return n
`)

// leaveScript 最后一个连接离开时移除
var leaveScript = redis.NewScript(`
local n = redis.call('HINCRBY', KEYS[2], ARGV[1], -1)
if n <= 0 then
  redis.call('HDEL', KEYS[2], ARGV[1])
  redis.call('ZREM', KEYS[1], ARGV[1])
end
return n
`)

// RedisRegistry 多个中继实例共享的注册表
type RedisRegistry struct {
	client *redis.Client
	prefix string
}

// NewRedisRegistry 创建 Redis 注册表，prefix 用于隔离不同部署
func NewRedisRegistry(client *redis.Client, prefix string) *RedisRegistry {
	return &RedisRegistry{client: client, prefix: prefix}
}

func (r *RedisRegistry) keys() []string {
	return []string{r.prefix + usersKey, r.prefix + refcountKey, r.prefix + seqKey}
}

// Join 加入注册表
func (r *RedisRegistry) Join(ctx context.Context, name string) error {
	if err := joinScript.Run(ctx, r.client, r.keys(), name).Err(); err != nil {
		return fmt.Errorf("registry join %q: %w", name, err)
	}
	return nil
}

// Leave 离开注册表
func (r *RedisRegistry) Leave(ctx context.Context, name string) error {
	if err := leaveScript.Run(ctx, r.client, r.keys(), name).Err(); err != nil {
		return fmt.Errorf("registry leave %q: %w", name, err)
	}
	return nil
}

// List 按加入顺序返回用户名
func (r *RedisRegistry) List(ctx context.Context) ([]string, error) {
	names, err := r.client.ZRange(ctx, r.prefix+usersKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("registry list: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Clear 删除所有注册信息（服务启动时清理上次遗留的数据）
func (r *RedisRegistry) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.keys()...).Err()
}
