package config

import (
	"fmt"
	"sync/atomic"

	"github.com/caarlos0/env/v11"
)

// Bootstrap 是启动前从环境变量读取的覆盖项，优先级高于配置文件。
type Bootstrap struct {
	ConfigPath string `env:"NAPOLEON_CONFIG"`
	Seed       uint64 `env:"NAPOLEON_SEED"`
	SaveDriver string `env:"NAPOLEON_SAVE_DRIVER"`
	LogLevel   string `env:"NAPOLEON_LOG_LEVEL"`
}

func ParseBootstrap() (Bootstrap, error) {
	var b Bootstrap
	if err := env.Parse(&b); err != nil {
		return Bootstrap{}, fmt.Errorf("parse env: %w", err)
	}
	return b, nil
}

// overrides 热更新后重新套用，环境变量始终优先于文件。
var overrides atomic.Pointer[Bootstrap]

// Apply 把非零的环境变量覆盖到 cfg 上，重新校验后刷新当前配置。
// 校验失败时 cfg 已被改写，但当前配置和覆盖项都保持原样。
func (b Bootstrap) Apply(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	b.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("env override: %w", err)
	}
	overrides.Store(&b)
	current.Store(cfg)
	return nil
}

func (b Bootstrap) applyTo(cfg *Config) {
	if b.Seed != 0 {
		cfg.Campaign.Seed = b.Seed
	}
	if b.SaveDriver != "" {
		cfg.Save.Driver = b.SaveDriver
	}
	if b.LogLevel != "" {
		cfg.Log.Level = b.LogLevel
	}
}
