package service

import (
	"math"

	"NapoleonCampaign/internal/campaign/entity"
)

// 每回合结算的常量。
const (
	winterMoralePenalty    = -5
	winterGoldPerTerritory = -200
	springMoraleRecovery   = 2
	autumnGoldPerTerritory = 100
	incomePerTerritory     = 500
	incomePerAlly          = 200
	maintenancePerThousand = 100
)

// TurnReport 一次回合结算的明细，用于展示。
type TurnReport struct {
	Season       entity.Season
	SeasonGold   int
	SeasonMorale int
	Income       int
	Maintenance  int
	MoraleRegen  int
	NewYear      bool
}

// NetGold 本回合金币净变化（夹取之前）。
func (r TurnReport) NetGold() int {
	return r.SeasonGold + r.Income - r.Maintenance
}

// AdvanceTurn 先结算当前季节效果，再结算收入与军费，最后推进季节。
func AdvanceTurn(c *entity.Campaign) TurnReport {
	mods := Modifiers(c)
	res := &c.Resources
	territories := len(res.Territories)
	rep := TurnReport{Season: c.Season}

	switch c.Season {
	case entity.Winter:
		rep.SeasonMorale = winterMoralePenalty
		rep.SeasonGold = winterGoldPerTerritory * territories
	case entity.Spring:
		rep.SeasonMorale = int(math.Round(springMoraleRecovery * (1 + mods.MoraleRecovery)))
	case entity.Autumn:
		rep.SeasonGold = autumnGoldPerTerritory * territories
	}

	rep.Income = incomePerTerritory*territories + incomePerAlly*len(res.Allies()) + mods.IncomeBonus
	rep.Maintenance = int(math.Round(float64(res.Troops/1000*maintenancePerThousand) * mods.MaintenanceFactor))
	rep.MoraleRegen = mods.MoraleRegen

	before := res.Gold
	res.AddScalars(0, rep.NetGold(), rep.SeasonMorale+rep.MoraleRegen)
	if gained := res.Gold - before; gained > 0 {
		c.Stats.GoldEarned += gained
	}

	next, newYear := c.Season.Next()
	c.Season = next
	if newYear {
		c.Year++
		rep.NewYear = true
	}
	return rep
}
