package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/palemoky/yewchat/internal/config"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/metrics"
	"github.com/palemoky/yewchat/internal/server"
	"github.com/palemoky/yewchat/internal/server/storage"
)

type serverFlags struct {
	configPath string
	host       string
	port       int
	redis      bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	var flags serverFlags

	cmd := &cobra.Command{
		Use:          "yewchat-server",
		Short:        "YewChat relay server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = config.Default()
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = flags.host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = flags.port
			}
			if cmd.Flags().Changed("redis") {
				cfg.Redis.Enabled = flags.redis
			}
			return run(cfg, flags.debug)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "configs/config.yaml", "配置文件路径")
	cmd.Flags().StringVar(&flags.host, "host", "", "监听地址")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "监听端口")
	cmd.Flags().BoolVar(&flags.redis, "redis", false, "使用 Redis 保存用户列表")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "输出调试日志")
	return cmd
}

// newRegistry 根据配置选择用户注册表
func newRegistry(ctx context.Context, cfg *config.Config) (storage.Registry, func(), error) {
	if !cfg.Redis.Enabled {
		return storage.NewMemoryRegistry(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	reg := storage.NewRedisRegistry(rdb, cfg.Redis.KeyPrefix)
	if err := reg.Clear(pingCtx); err != nil {
		logger.LogError("clear stale registry: %v", err)
	}
	return reg, func() { _ = rdb.Close() }, nil
}

func run(cfg *config.Config, debug bool) error {
	logger.InitConsole()
	defer logger.Close()
	logger.SetDebug(debug)

	registry, closeRegistry, err := newRegistry(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer closeRegistry()

	srv := server.NewServer(cfg, registry, metrics.New())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		logger.LogInfo("shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
