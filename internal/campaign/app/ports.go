package app

import (
	"NapoleonCampaign/internal/campaign/service/port"
	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/modules/kit/logx"
)

type Logger = logx.Logger

type SaveRepository = port.SaveRepository

type SaveInfo = port.SaveInfo

// Tunables 每回合开始时读取一次玩法参数（配置热更新后下一回合生效）。
type Tunables func() config.CampaignConfig

type IDGenerator func() (string, error)
