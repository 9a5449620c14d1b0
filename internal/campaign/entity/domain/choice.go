package domain

import "NapoleonCampaign/internal/shared/gameconfig/event"

// Consequence 一个选项的固定后果。Next 可以是事件 id、终局标记或空串（沿主线顺延）。
type Consequence struct {
	Troops      int
	Gold        int
	Morale      int
	Territories []string
	Relations   map[string]int
	Allies      []string
	Enemies     []string
	AddTrait    string
	AddGeneral  string
	AddArtifact string
	Next        string
}

type BattleSpec struct {
	Enemy       string
	EnemyTroops int
	Terrain     float64
	// OnDefeat 战败时替代 Consequence 生效；为 nil 时战败只结算伤亡和士气。
	OnDefeat *Consequence
}

type Choice struct {
	Text        string
	Consequence Consequence
	Battle      *BattleSpec
}

// BattleResult 一场战斗的结算，不持久化。
type BattleResult struct {
	Enemy              string
	AttackerTroops     int
	DefenderTroops     int
	AttackerScore      float64
	DefenderScore      float64
	Victory            bool
	CasualtyRate       float64
	AttackerCasualties int
	DefenderCasualties int
	MoraleDelta        int
	// FallenGenerals 本场阵亡的将领 id
	FallenGenerals []string
}

// ConsequenceFrom 把内容表的后果转换成领域对象（切片和 map 都复制一份）。
func ConsequenceFrom(c event.Consequence) Consequence {
	out := Consequence{
		Troops:      c.Troops,
		Gold:        c.Gold,
		Morale:      c.Morale,
		Territories: append([]string(nil), c.Territories...),
		Allies:      append([]string(nil), c.Allies...),
		Enemies:     append([]string(nil), c.Enemies...),
		AddTrait:    c.AddTrait,
		AddGeneral:  c.AddGeneral,
		AddArtifact: c.AddArtifact,
		Next:        c.Next,
	}
	if len(c.Relations) > 0 {
		out.Relations = make(map[string]int, len(c.Relations))
		for k, v := range c.Relations {
			out.Relations[k] = v
		}
	}
	return out
}

func ChoiceFrom(c event.Choice) Choice {
	out := Choice{Text: c.Text, Consequence: ConsequenceFrom(c.Consequence)}
	if c.Battle != nil {
		b := &BattleSpec{Enemy: c.Battle.Enemy, EnemyTroops: c.Battle.EnemyTroops, Terrain: c.Battle.Terrain}
		if c.Battle.OnDefeat != nil {
			d := ConsequenceFrom(*c.Battle.OnDefeat)
			b.OnDefeat = &d
		}
		out.Battle = b
	}
	return out
}

func ChoicesFrom(e event.Event) []Choice {
	out := make([]Choice, len(e.Choices))
	for i, c := range e.Choices {
		out[i] = ChoiceFrom(c)
	}
	return out
}
