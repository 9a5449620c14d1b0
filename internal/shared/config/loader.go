package config

import (
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// OnReload 热更新成功后的回调（日志、提示），由 main 设置。
var OnReload func(*Config)

func load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(cfg)

	// 只替换指针，回合进行中拿到的旧快照不受影响。
	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(v)
		if err != nil {
			log.Printf("config reload rejected, file=%s err=%v", e.Name, err)
			return
		}
		if o := overrides.Load(); o != nil {
			o.applyTo(next)
			if err := next.Validate(); err != nil {
				log.Printf("config reload rejected, file=%s err=%v", e.Name, err)
				return
			}
		}
		current.Store(next)
		if OnReload != nil {
			OnReload(next)
		}
	})
	v.WatchConfig()
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("viper unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.file_dir", d.Log.FileDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("campaign.random_event_chance", d.Campaign.RandomEventChance)
	v.SetDefault("campaign.autosave", d.Campaign.Autosave)
	v.SetDefault("campaign.battle.random_spread", d.Campaign.Battle.RandomSpread)
	v.SetDefault("campaign.battle.min_casualty_rate", d.Campaign.Battle.MinCasualtyRate)
	v.SetDefault("campaign.battle.max_casualty_rate", d.Campaign.Battle.MaxCasualtyRate)
	v.SetDefault("campaign.battle.victory_morale", d.Campaign.Battle.VictoryMorale)
	v.SetDefault("campaign.battle.defeat_morale", d.Campaign.Battle.DefeatMorale)
	v.SetDefault("save.driver", d.Save.Driver)
	v.SetDefault("save.path", d.Save.Path)
	v.SetDefault("save.slot", d.Save.Slot)
	v.SetDefault("save.timeout", d.Save.Timeout.String())
	v.SetDefault("save.sqlite.path", d.Save.SQLite.Path)
	v.SetDefault("save.mongodb.database", d.Save.MongoDB.Database)
	v.SetDefault("save.mongodb.collection", d.Save.MongoDB.Collection)
}

// Validate 拒绝会让战斗公式或存档层失效的参数。
func (c *Config) Validate() error {
	b := c.Campaign.Battle
	if b.RandomSpread < 0 || b.RandomSpread >= 1 {
		return fmt.Errorf("campaign.battle.random_spread must be in [0,1), got %v", b.RandomSpread)
	}
	if b.MinCasualtyRate < CasualtyRateFloor || b.MaxCasualtyRate > CasualtyRateCeil || b.MinCasualtyRate > b.MaxCasualtyRate {
		return fmt.Errorf("campaign.battle casualty band must satisfy %v <= min <= max <= %v, got [%v,%v]",
			CasualtyRateFloor, CasualtyRateCeil, b.MinCasualtyRate, b.MaxCasualtyRate)
	}
	if c.Campaign.RandomEventChance < 0 || c.Campaign.RandomEventChance > 1 {
		return fmt.Errorf("campaign.random_event_chance must be in [0,1], got %v", c.Campaign.RandomEventChance)
	}
	switch c.Save.Driver {
	case "file", "sqlite", "mysql", "mongodb", "memory":
	default:
		return fmt.Errorf("save.driver %q not supported", c.Save.Driver)
	}
	return nil
}
