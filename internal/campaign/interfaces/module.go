package interfaces

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/campaign/app"
	"NapoleonCampaign/internal/campaign/infra/persistence"
	"NapoleonCampaign/internal/campaign/infra/persistence/file"
	"NapoleonCampaign/internal/campaign/infra/persistence/memory"
	"NapoleonCampaign/internal/campaign/infra/persistence/mongodb"
	"NapoleonCampaign/internal/campaign/infra/persistence/mysql"
	"NapoleonCampaign/internal/campaign/infra/persistence/sqlite"
	"NapoleonCampaign/internal/campaign/interfaces/cli"
	"NapoleonCampaign/internal/campaign/service/port"
	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/internal/shared/infrastructure/db"
	"NapoleonCampaign/internal/shared/infrastructure/mongo"
	sqliteinfra "NapoleonCampaign/internal/shared/infrastructure/sqlite"
	"NapoleonCampaign/modules/kit/logx"
)

// Module 按配置装配存档后端和战役服务。
type Module struct {
	Service *app.CampaignService
	log     logx.Logger
	slot    string
	closers []func(context.Context) error
}

func New(cfg *config.Config, log logx.Logger, rng *rand.Rand) (*Module, error) {
	if log == nil {
		log = logx.Nop()
	}
	m := &Module{log: log, slot: cfg.Save.Slot}
	repo, err := m.openRepo(cfg.Save)
	if err != nil {
		_ = m.Close(context.Background())
		return nil, err
	}
	m.Service = app.NewCampaignService(persistence.WithTimeout(repo, cfg.Save.Timeout), log, config.Campaign, rng)
	return m, nil
}

func (m *Module) openRepo(cfg config.SaveConfig) (port.SaveRepository, error) {
	switch cfg.Driver {
	case "", "file":
		return file.NewSaveRepo(cfg.Path, cfg.Slot), nil
	case "memory":
		return memory.NewSaveRepo(), nil
	case "sqlite":
		sdb, err := sqliteinfra.Open(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		m.closers = append(m.closers, func(context.Context) error { return sdb.Close() })
		return sqlite.NewSaveRepo(sdb)
	case "mysql":
		gdb, err := db.Open(cfg.MySQL)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		if sqlDB, err := gdb.DB(); err == nil {
			m.closers = append(m.closers, func(context.Context) error { return sqlDB.Close() })
		}
		return mysql.NewSaveRepo(gdb)
	case "mongodb":
		zl := zap.NewNop()
		if z, ok := m.log.(*logx.ZapLogger); ok {
			zl = z.Zap()
		}
		client, err := mongo.Open(cfg.MongoDB, cfg.Timeout, zl)
		if err != nil {
			return nil, fmt.Errorf("open mongodb: %w", err)
		}
		m.closers = append(m.closers, client.Disconnect)
		return mongodb.NewSaveRepo(client.Database(cfg.MongoDB.Database), cfg.MongoDB.Collection), nil
	}
	return nil, fmt.Errorf("save.driver %q not supported", cfg.Driver)
}

// NewCLI 交互入口；in/out 通常是 stdin/stdout。
func (m *Module) NewCLI(in io.Reader, out io.Writer) *cli.CLI {
	return cli.New(m.Service, m.log, in, out, m.slot)
}

// Close 逆序关闭打开过的连接。
func (m *Module) Close(ctx context.Context) error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}
