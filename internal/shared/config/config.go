package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

const defaultConfigRelPath = "configs/conf.yml"

var current atomic.Pointer[Config]

// Current 返回最近一次加载（或热更新）的配置；从未加载时返回默认值。
func Current() *Config {
	if c := current.Load(); c != nil {
		return c
	}
	d := Default()
	return &d
}

// Campaign 供回合开始时读取玩法参数。
func Campaign() CampaignConfig {
	return Current().Campaign
}

// Load 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`；
// 3) 都找不到时使用默认配置（不报错，方便直接运行二进制）。
func Load(cfgName string) (*Config, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if cfgName != "" {
		if !filepath.IsAbs(cfgName) {
			cfgName = filepath.Join(curDir, cfgName)
		}
		if !fileExist(cfgName) {
			return nil, fmt.Errorf("config file not exist, configPath=%v", cfgName)
		}
		return load(cfgName)
	}
	path, ok := findConfigUpward(curDir)
	if !ok {
		d := Default()
		current.Store(&d)
		return &d, nil
	}
	return load(path)
}

func findConfigUpward(startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
