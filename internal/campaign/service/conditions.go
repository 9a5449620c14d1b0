package service

import (
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
	"NapoleonCampaign/internal/shared/gameconfig/event"
)

// CheckDefeat 兵力或士气跌破阈值即战败；兵力优先报告。
func CheckDefeat(res domain.ResourceState) (condition.Kind, bool) {
	d := condition.Get().Defeat
	if res.Troops < d.Military.TroopsBelow {
		return condition.MilitaryDefeat, true
	}
	if res.Morale < d.Political.MoraleBelow {
		return condition.PoliticalDefeat, true
	}
	return "", false
}

// CheckVictory 依次检查军事、外交、历史三种胜利。
func CheckVictory(c *entity.Campaign) (condition.Kind, bool) {
	v := condition.Get().Victory
	res := c.Resources
	if len(res.Territories) >= v.Military.Territories && res.Morale >= v.Military.Morale {
		return condition.MilitaryVictory, true
	}
	if len(res.Allies()) >= v.Diplomatic.Allies {
		return condition.DiplomaticVictory, true
	}
	if c.Year >= v.Historical.Year && HistoricalAccuracy(c.Visited) >= v.Historical.Accuracy {
		return condition.HistoricalVictory, true
	}
	return "", false
}

// Evaluate 战败优先：同时满足胜负条件时判负，结果与检查顺序无关。
func Evaluate(c *entity.Campaign) (condition.Kind, bool) {
	if k, ok := CheckDefeat(c.Resources); ok {
		return k, true
	}
	return CheckVictory(c)
}

// EndOfChain 事件链走完（没有下一个事件）时的结局。
func EndOfChain(c *entity.Campaign) condition.Kind {
	if HistoricalAccuracy(c.Visited) >= condition.Get().Victory.Historical.Accuracy {
		return condition.HistoricalVictory
	}
	return condition.ExileDefeat
}

// HistoricalAccuracy 访问过的事件里属于历史主线的百分比。
func HistoricalAccuracy(visited []string) float64 {
	if len(visited) == 0 {
		return 0
	}
	hit := 0
	for _, id := range visited {
		if event.InSequence(id) {
			hit++
		}
	}
	return float64(hit) * 100 / float64(len(visited))
}
