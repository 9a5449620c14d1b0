package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/internal/shared/logs"
)

// Open 打开（必要时创建）sqlite 存档库。path 为 ":memory:" 时用内存库。
func Open(cfg config.SQLiteConfig) (*sqlx.DB, error) {
	path := cfg.Path
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// 单进程单协程读写，一个连接足够，也保证 :memory: 不会被连接池拆成多个库。
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, pragma := range []string{`PRAGMA journal_mode=WAL`, `PRAGMA busy_timeout=5000`} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}

	logs.Info("open sqlite success", zap.String("path", path))
	return db, nil
}
