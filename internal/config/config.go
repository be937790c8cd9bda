package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
	AI     AIConfig     `yaml:"ai"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置（牌谱归档）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 对局配置
type GameConfig struct {
	MaxRounds   int   `yaml:"max_rounds"`   // 打满多少局终局
	TurnTimeout int   `yaml:"turn_timeout"` // 出牌超时（秒）
	Seed        int64 `yaml:"seed"`         // 洗牌种子，0 为随机
}

// AIConfig 内置/外部 AI 配置
type AIConfig struct {
	Type       string `yaml:"type"`       // simple 或注册的外部类型
	Executable string `yaml:"executable"` // 外部 AI 可执行文件
	ModelDir   string `yaml:"model_dir"`  // 外部 AI 模型目录
}

// TurnTimeoutDuration 返回出牌超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
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

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4160
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.MaxRounds == 0 {
		cfg.Game.MaxRounds = 8
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.AI.Type == "" {
		cfg.AI.Type = "simple"
	}
	if cfg.AI.ModelDir == "" {
		cfg.AI.ModelDir = "."
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4160,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			MaxRounds:   8,
			TurnTimeout: 30,
		},
		AI: AIConfig{
			Type:     "simple",
			ModelDir: ".",
		},
	}
}
