package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAvatarTemplate 默认头像地址模板，%s 为用户名
const DefaultAvatarTemplate = "https://avatars.dicebear.com/api/adventurer-neutral/%s.svg"

// Config 客户端与中继服务配置
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ClientConfig 聊天客户端配置
type ClientConfig struct {
	ServerURL         string `yaml:"server_url"`
	Username          string `yaml:"username"`
	AvatarTemplate    string `yaml:"avatar_template"`
	Mute              bool   `yaml:"mute"`               // 关闭提示音
	SoundDir          string `yaml:"sound_dir"`          // 提示音目录 (mp3/wav)
	SendBuffer        int    `yaml:"send_buffer"`        // 发送缓冲区大小
	ReconnectAttempts int    `yaml:"reconnect_attempts"` // 最大重连次数
	ReconnectInterval int    `yaml:"reconnect_interval"` // 首次重连间隔（秒）
}

// ServerConfig 中继服务配置
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	MaxMessageSize     int64  `yaml:"max_message_size"`      // 单帧最大字节数
	MaxFramesPerSecond int    `yaml:"max_frames_per_second"` // 每个连接每秒最多帧数
	SendBuffer         int    `yaml:"send_buffer"`
	TimestampLayout    string `yaml:"timestamp_layout"` // 消息时间格式
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Path string `yaml:"path"`
}

// ReconnectIntervalDuration 返回首次重连间隔
func (c *ClientConfig) ReconnectIntervalDuration() time.Duration {
	return time.Duration(c.ReconnectInterval) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	def := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}
	defStr := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}

	defStr(&cfg.Client.ServerURL, "ws://localhost:1780/ws")
	defStr(&cfg.Client.AvatarTemplate, DefaultAvatarTemplate)
	defStr(&cfg.Client.SoundDir, "assets/sounds")
	def(&cfg.Client.SendBuffer, 256)
	def(&cfg.Client.ReconnectAttempts, 5)
	def(&cfg.Client.ReconnectInterval, 2)

	defStr(&cfg.Server.Host, "0.0.0.0")
	def(&cfg.Server.Port, 1780)
	if cfg.Server.MaxMessageSize == 0 {
		cfg.Server.MaxMessageSize = 4096
	}
	def(&cfg.Server.MaxFramesPerSecond, 20)
	def(&cfg.Server.SendBuffer, 256)
	defStr(&cfg.Server.TimestampLayout, "15:04")

	defStr(&cfg.Redis.Addr, "localhost:6379")
	defStr(&cfg.Redis.KeyPrefix, "yewchat:")

	defStr(&cfg.Metrics.Path, "/metrics")
}
