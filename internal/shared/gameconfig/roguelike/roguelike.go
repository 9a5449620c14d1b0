package roguelike

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"NapoleonCampaign/internal/shared/gameconfig/event"
)

//go:embed roguelike.yml
var rawRoguelike []byte

// EffectType 修正项的作用方式。
type EffectType string

const (
	BattleBonus          EffectType = "battle_bonus"
	BattleModifier       EffectType = "battle_modifier"
	DefenseBonus         EffectType = "defense_bonus"
	CavalryBonus         EffectType = "cavalry_bonus"
	MaintenanceReduction EffectType = "maintenance_reduction"
	LogisticsBonus       EffectType = "logistics_bonus"
	MoraleRecovery       EffectType = "morale_recovery"
	MoraleRegen          EffectType = "morale_regen"
	DiplomacyBonus       EffectType = "diplomacy_bonus"
	IncomeBonus          EffectType = "income_bonus"
)

// Modifier 是特质、将领、宝物的统一描述。
type Modifier struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	EffectType  EffectType `yaml:"effect_type"`
	Value       float64    `yaml:"value"`
	// 只有 battle_modifier 用
	StrengthBonus   float64 `yaml:"strength_bonus"`
	CasualtyPenalty float64 `yaml:"casualty_penalty"`
	// 只有将领用：每场战斗阵亡概率
	DeathChance float64 `yaml:"death_chance"`
}

type table struct {
	Title        string        `yaml:"title"`
	Traits       []Modifier    `yaml:"traits"`
	Generals     []Modifier    `yaml:"generals"`
	Artifacts    []Modifier    `yaml:"artifacts"`
	RandomEvents []event.Event `yaml:"random_events"`

	traits    map[string]Modifier
	generals  map[string]Modifier
	artifacts map[string]Modifier
}

var (
	Roguelike = &table{}
	loadOnce  sync.Once
)

func Load() {
	loadOnce.Do(func() {
		t, err := parse(rawRoguelike)
		if err != nil {
			panic(fmt.Sprintf("load roguelike table failed: %v", err))
		}
		Roguelike = t
	})
}

func parse(data []byte) (*table, error) {
	t := &table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	var err error
	if t.traits, err = index("trait", t.Traits); err != nil {
		return nil, err
	}
	if t.generals, err = index("general", t.Generals); err != nil {
		return nil, err
	}
	if t.artifacts, err = index("artifact", t.Artifacts); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(t.RandomEvents))
	for _, e := range t.RandomEvents {
		if e.ID == "" || len(e.Choices) == 0 {
			return nil, fmt.Errorf("random event %q needs id and choices", e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("duplicate random event %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		for i, c := range e.Choices {
			q := c.Consequence
			// 随机事件插在主线事件之间，不能改变走向。
			if q.Next != "" || c.Battle != nil {
				return nil, fmt.Errorf("random event %q choice %d must not set next or battle", e.ID, i+1)
			}
			if q.AddTrait != "" {
				if _, ok := t.traits[q.AddTrait]; !ok {
					return nil, fmt.Errorf("random event %q: unknown trait %q", e.ID, q.AddTrait)
				}
			}
			if q.AddGeneral != "" {
				if _, ok := t.generals[q.AddGeneral]; !ok {
					return nil, fmt.Errorf("random event %q: unknown general %q", e.ID, q.AddGeneral)
				}
			}
			if q.AddArtifact != "" {
				if _, ok := t.artifacts[q.AddArtifact]; !ok {
					return nil, fmt.Errorf("random event %q: unknown artifact %q", e.ID, q.AddArtifact)
				}
			}
		}
	}
	return t, nil
}

func index(kind string, list []Modifier) (map[string]Modifier, error) {
	out := make(map[string]Modifier, len(list))
	for _, m := range list {
		if m.ID == "" || m.EffectType == "" {
			return nil, fmt.Errorf("%s %q needs id and effect_type", kind, m.ID)
		}
		if _, dup := out[m.ID]; dup {
			return nil, fmt.Errorf("duplicate %s %q", kind, m.ID)
		}
		out[m.ID] = m
	}
	return out, nil
}

func Trait(id string) (Modifier, bool) {
	Load()
	m, ok := Roguelike.traits[id]
	return m, ok
}

func General(id string) (Modifier, bool) {
	Load()
	m, ok := Roguelike.generals[id]
	return m, ok
}

func Artifact(id string) (Modifier, bool) {
	Load()
	m, ok := Roguelike.artifacts[id]
	return m, ok
}

// RandomEvents 返回随机事件池（按配置顺序，抽取由调用方的种子决定）。
func RandomEvents() []event.Event {
	Load()
	out := make([]event.Event, len(Roguelike.RandomEvents))
	copy(out, Roguelike.RandomEvents)
	return out
}

func RandomEvent(id string) (event.Event, bool) {
	Load()
	for _, e := range Roguelike.RandomEvents {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}
