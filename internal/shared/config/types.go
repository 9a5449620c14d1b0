package config

import "time"

type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Campaign CampaignConfig `yaml:"campaign" mapstructure:"campaign"`
	Save     SaveConfig     `yaml:"save" mapstructure:"save"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
	// Console 为 true 时同时输出到 stderr；默认只写文件，避免打断游戏画面。
	Console bool `yaml:"console" mapstructure:"console"`
}

// CampaignConfig 是可热更新的玩法参数，每回合开始时读取一次。
type CampaignConfig struct {
	// Seed 为 0 时按当前时间取种子。
	Seed              uint64       `yaml:"seed" mapstructure:"seed"`
	RandomEventChance float64      `yaml:"random_event_chance" mapstructure:"random_event_chance"`
	Autosave          bool         `yaml:"autosave" mapstructure:"autosave"`
	Battle            BattleConfig `yaml:"battle" mapstructure:"battle"`
	// Nations 允许通过 envoy 交涉的国家；为空时使用内容表里的全部国家。
	Nations []string `yaml:"nations" mapstructure:"nations"`
}

// 败方伤亡比例允许配置的范围；配置只能在这个区间内收窄。
const (
	CasualtyRateFloor = 0.10
	CasualtyRateCeil  = 0.30
)

type BattleConfig struct {
	RandomSpread    float64 `yaml:"random_spread" mapstructure:"random_spread"`
	MinCasualtyRate float64 `yaml:"min_casualty_rate" mapstructure:"min_casualty_rate"`
	MaxCasualtyRate float64 `yaml:"max_casualty_rate" mapstructure:"max_casualty_rate"`
	VictoryMorale   int     `yaml:"victory_morale" mapstructure:"victory_morale"`
	DefeatMorale    int     `yaml:"defeat_morale" mapstructure:"defeat_morale"`
}

type SaveConfig struct {
	// Driver: file | sqlite | mysql | mongodb | memory
	Driver  string        `yaml:"driver" mapstructure:"driver"`
	Path    string        `yaml:"path" mapstructure:"path"`
	Slot    string        `yaml:"slot" mapstructure:"slot"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	SQLite  SQLiteConfig  `yaml:"sqlite" mapstructure:"sqlite"`
	MySQL   MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
	MongoDB MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI        string `yaml:"uri" mapstructure:"uri"`
	Database   string `yaml:"database" mapstructure:"database"`
	Collection string `yaml:"collection" mapstructure:"collection"`
}

// Default 返回没有配置文件时使用的参数。
func Default() Config {
	return Config{
		Log: LogConfig{FileDir: "logs/napoleon.log", Level: "info", MaxSize: 10, MaxBackups: 3, MaxAge: 7},
		Campaign: CampaignConfig{
			RandomEventChance: 0.2,
			Autosave:          true,
			Battle:            DefaultBattle(),
		},
		Save: SaveConfig{
			Driver:  "file",
			Path:    "saves/napoleon_save.json",
			Slot:    "default",
			Timeout: 5 * time.Second,
			SQLite:  SQLiteConfig{Path: "saves/napoleon.db"},
			MongoDB: MongoDBConfig{Database: "napoleon", Collection: "campaign_saves"},
		},
	}
}

func DefaultBattle() BattleConfig {
	return BattleConfig{
		RandomSpread:    0.2,
		MinCasualtyRate: CasualtyRateFloor,
		MaxCasualtyRate: CasualtyRateCeil,
		VictoryMorale:   10,
		DefeatMorale:    -15,
	}
}
