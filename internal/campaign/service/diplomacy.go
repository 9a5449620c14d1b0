package service

import (
	"math"

	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
)

const (
	EnvoyCost          = 1000
	envoySuccessDelta  = 25
	envoyFailureDelta  = -10
	envoyBaseChance    = 0.5
	envoyMaxGoldFactor = 0.3
	envoyGoldDivisor   = 50000.0
	envoyAllyFactor    = 0.05
	envoyMinChance     = 0.1
	envoyMaxChance     = 0.9
)

type EnvoyRejection int

const (
	EnvoyOK EnvoyRejection = iota
	EnvoyUnknownNation
	EnvoyNotEnoughGold
	EnvoyAlreadyAllied
)

type EnvoyResult struct {
	Nation      string
	Chance      float64
	Success     bool
	Consequence domain.Consequence
}

// EnvoyChance 成功率 = 0.5 + min(0.3, 金币/50000) + (士气-50)/100 + 0.05×盟友数 + 国家修正 + 外交加成，夹到 [0.1,0.9]。
func EnvoyChance(c *entity.Campaign, n nation.Nation) float64 {
	res := c.Resources
	chance := envoyBaseChance +
		math.Min(envoyMaxGoldFactor, float64(res.Gold)/envoyGoldDivisor) +
		float64(res.Morale-50)/100 +
		envoyAllyFactor*float64(len(res.Allies())) +
		n.DiplomacyModifier +
		Modifiers(c).DiplomacyBonus
	return clampFloat(chance, envoyMinChance, envoyMaxChance)
}

// Envoy 派出使节：先校验，再掷骰决定关系变化。返回的后果由调用方经 Resolver 落地。
func Envoy(c *entity.Campaign, name string, rng *rand.Rand) (EnvoyResult, EnvoyRejection) {
	n, ok := nation.Get(name)
	if !ok {
		return EnvoyResult{}, EnvoyUnknownNation
	}
	if c.Resources.Gold < EnvoyCost {
		return EnvoyResult{Nation: n.Name}, EnvoyNotEnoughGold
	}
	if c.Resources.Relations[n.Name] >= domain.AllyThreshold {
		return EnvoyResult{Nation: n.Name}, EnvoyAlreadyAllied
	}

	chance := EnvoyChance(c, n)
	success := rng.Float64() < chance
	delta := envoyFailureDelta
	if success {
		delta = envoySuccessDelta
	}
	return EnvoyResult{
		Nation:  n.Name,
		Chance:  chance,
		Success: success,
		Consequence: domain.Consequence{
			Gold:      -EnvoyCost,
			Relations: map[string]int{n.Name: delta},
		},
	}, EnvoyOK
}
