package service

import (
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
)

// ModifierSet 特质、将领、宝物效果的汇总。
type ModifierSet struct {
	BattleBonus float64
	// CasualtyMultiplier 作用于己方伤亡比例，1 为不变。
	CasualtyMultiplier float64
	// MaintenanceFactor 军费乘数，1 为不变。
	MaintenanceFactor float64
	MoraleRecovery    float64
	MoraleRegen       int
	DiplomacyBonus    float64
	IncomeBonus       int
}

// Modifiers 按当前持有的特质、将领、宝物计算。内容表里找不到的 id 忽略。
func Modifiers(c *entity.Campaign) ModifierSet {
	m := ModifierSet{CasualtyMultiplier: 1, MaintenanceFactor: 1}
	apply := func(mod roguelike.Modifier) {
		switch mod.EffectType {
		case roguelike.BattleBonus, roguelike.CavalryBonus:
			m.BattleBonus += mod.Value
		case roguelike.BattleModifier:
			m.BattleBonus += mod.StrengthBonus
			m.CasualtyMultiplier *= 1 + mod.CasualtyPenalty
		case roguelike.DefenseBonus:
			m.CasualtyMultiplier *= 1 - mod.Value
		case roguelike.MaintenanceReduction, roguelike.LogisticsBonus:
			m.MaintenanceFactor *= 1 - mod.Value
		case roguelike.MoraleRecovery:
			m.MoraleRecovery += mod.Value
		case roguelike.MoraleRegen:
			m.MoraleRegen += int(mod.Value)
		case roguelike.DiplomacyBonus:
			m.DiplomacyBonus += mod.Value
		case roguelike.IncomeBonus:
			m.IncomeBonus += int(mod.Value)
		}
	}
	for _, id := range c.Traits {
		if mod, ok := roguelike.Trait(id); ok {
			apply(mod)
		}
	}
	for _, id := range c.Generals {
		if mod, ok := roguelike.General(id); ok {
			apply(mod)
		}
	}
	for _, id := range c.Artifacts {
		if mod, ok := roguelike.Artifact(id); ok {
			apply(mod)
		}
	}
	return m
}
