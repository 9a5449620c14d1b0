package service

import (
	"math"

	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
)

// GeneralRisk 参战将领及其阵亡概率。
type GeneralRisk struct {
	ID          string
	DeathChance float64
}

type BattleInput struct {
	Enemy          string
	AttackerTroops int
	AttackerMorale int
	// AttackerBonus 特质/将领/宝物的战力加成之和
	AttackerBonus      float64
	CasualtyMultiplier float64
	DefenderTroops     int
	Terrain            float64
	Generals           []GeneralRisk
}

// Battle 无状态的战斗计算器，同一个种子得到同一个结果。
type Battle struct {
	cfg config.BattleConfig
}

// NewBattle 伤亡区间收进 [CasualtyRateFloor, CasualtyRateCeil]，没校验过的配置也不会越界。
func NewBattle(cfg config.BattleConfig) Battle {
	cfg.MinCasualtyRate = clampFloat(cfg.MinCasualtyRate, config.CasualtyRateFloor, config.CasualtyRateCeil)
	cfg.MaxCasualtyRate = clampFloat(cfg.MaxCasualtyRate, cfg.MinCasualtyRate, config.CasualtyRateCeil)
	return Battle{cfg: cfg}
}

// BattleInputFor 按战役当前状态组装进攻方参数。
func BattleInputFor(c *entity.Campaign, spec domain.BattleSpec) BattleInput {
	mods := Modifiers(c)
	in := BattleInput{
		Enemy:              spec.Enemy,
		AttackerTroops:     c.Resources.Troops,
		AttackerMorale:     c.Resources.Morale,
		AttackerBonus:      mods.BattleBonus,
		CasualtyMultiplier: mods.CasualtyMultiplier,
		DefenderTroops:     spec.EnemyTroops,
		Terrain:            spec.Terrain,
	}
	for _, id := range c.Generals {
		if g, ok := roguelike.General(id); ok {
			in.Generals = append(in.Generals, GeneralRisk{ID: g.ID, DeathChance: g.DeathChance})
		}
	}
	return in
}

// Resolve
//   - 进攻分 = 兵力 × 士气/100 × (1+加成)，再加 ±RandomSpread 的均匀扰动
//   - 防守分 = 兵力 × (1+地形)，同样扰动
//   - 进攻方严格大于才算胜
//   - 败方损失 [Min,Max] 内均匀抽样的比例，胜方损失一半
func (b Battle) Resolve(in BattleInput, rng *rand.Rand) domain.BattleResult {
	attackerBase := float64(in.AttackerTroops) * float64(in.AttackerMorale) / 100 * (1 + in.AttackerBonus)
	defenderBase := float64(in.DefenderTroops) * (1 + in.Terrain)

	attackerScore := attackerBase + attackerBase*b.spread(rng)
	defenderScore := defenderBase + defenderBase*b.spread(rng)
	victory := attackerScore > defenderScore

	rate := b.cfg.MinCasualtyRate + rng.Float64()*(b.cfg.MaxCasualtyRate-b.cfg.MinCasualtyRate)
	mult := in.CasualtyMultiplier
	if mult <= 0 {
		mult = 1
	}

	res := domain.BattleResult{
		Enemy:          in.Enemy,
		AttackerTroops: in.AttackerTroops,
		DefenderTroops: in.DefenderTroops,
		AttackerScore:  attackerScore,
		DefenderScore:  defenderScore,
		Victory:        victory,
		CasualtyRate:   rate,
	}
	// 修正项只改己方比例，且不越出败方/胜方各自的区间。
	if victory {
		own := clampFloat(rate/2*mult, b.cfg.MinCasualtyRate/2, b.cfg.MaxCasualtyRate/2)
		res.AttackerCasualties = casualties(in.AttackerTroops, own)
		res.DefenderCasualties = casualties(in.DefenderTroops, rate)
		res.MoraleDelta = b.cfg.VictoryMorale
	} else {
		own := clampFloat(rate*mult, b.cfg.MinCasualtyRate, b.cfg.MaxCasualtyRate)
		res.AttackerCasualties = casualties(in.AttackerTroops, own)
		res.DefenderCasualties = casualties(in.DefenderTroops, rate/2)
		res.MoraleDelta = b.cfg.DefeatMorale
	}
	for _, g := range in.Generals {
		if rng.Float64() < g.DeathChance {
			res.FallenGenerals = append(res.FallenGenerals, g.ID)
		}
	}
	return res
}

// spread 返回 [-RandomSpread, +RandomSpread) 的均匀值。
func (b Battle) spread(rng *rand.Rand) float64 {
	return (rng.Float64()*2 - 1) * b.cfg.RandomSpread
}

func casualties(troops int, rate float64) int {
	return int(math.Round(float64(troops) * rate))
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
