package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"spaceshooter/game"
)

// Config 服务配置：YAML 文件 → 环境变量覆盖（SHOOTER_ 前缀）→ 校验
type Config struct {
	Listen    ListenConfig  `yaml:"listen" envPrefix:"LISTEN_"`
	Logging   LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Game      GameConfig    `yaml:"game" envPrefix:"GAME_"`
	StaticDir string        `yaml:"static_dir" env:"STATIC_DIR"`
}

type ListenConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" env:"LEVEL"`
	File       string `yaml:"file" env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"MAX_AGE_DAYS"`
}

type GameConfig struct {
	FieldWidth  float64 `yaml:"field_width" env:"FIELD_WIDTH"`
	FieldHeight float64 `yaml:"field_height" env:"FIELD_HEIGHT"`
	ActorWidth  float64 `yaml:"actor_width" env:"ACTOR_WIDTH"`
	ActorHeight float64 `yaml:"actor_height" env:"ACTOR_HEIGHT"`
	Step        float64 `yaml:"step" env:"STEP"`
	FrameRate   int     `yaml:"frame_rate" env:"FRAME_RATE"`
}

// Field 转换为积分使用的场地参数
func (g GameConfig) Field() game.Field {
	return game.Field{
		Width:       g.FieldWidth,
		Height:      g.FieldHeight,
		ActorWidth:  g.ActorWidth,
		ActorHeight: g.ActorHeight,
		Step:        g.Step,
	}
}

// Default 默认配置
func Default() *Config {
	f := game.DefaultField()
	return &Config{
		Listen: ListenConfig{Addr: ":8080"},
		Logging: LoggingConfig{
			Level:      "debug",
			File:       "app.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Game: GameConfig{
			FieldWidth:  f.Width,
			FieldHeight: f.Height,
			ActorWidth:  f.ActorWidth,
			ActorHeight: f.ActorHeight,
			Step:        f.Step,
			FrameRate:   game.DefaultFrameRate,
		},
		StaticDir: "web",
	}
}

// Load 读取配置。path 为空时只使用默认值与环境变量
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SHOOTER_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Listen.Addr == "" {
		return errors.New("listen.addr is required")
	}
	if c.Game.FrameRate <= 0 {
		return errors.New("game.frame_rate must be positive")
	}
	if err := c.Game.Field().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
