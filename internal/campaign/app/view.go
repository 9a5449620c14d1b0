package app

import (
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/campaign/service"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
)

// EventView 当前要回答的事件。
type EventView struct {
	ID          string
	Year        int
	Title       string
	Description string
	Choices     []domain.Choice
	Random      bool
}

// TurnOutcome 一次选择的完整结算，CLI 据此渲染。
type TurnOutcome struct {
	EventID     string
	Choice      string
	RandomEvent bool
	Battle      *domain.BattleResult
	Report      *service.TurnReport
	NextEventID string
	// PendingRandomEventID 下一步先出现的随机事件
	PendingRandomEventID string
	Finished             bool
	Outcome              condition.Kind
	CompletedGoals       []entity.Goal
	// AutosaveErr 自动存档失败不影响本回合，只提示玩家。
	AutosaveErr error
}
