package condition

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed conditions.yml
var rawConditions []byte

// Kind 胜负类型，同时也是存档里 outcome 的取值。
type Kind string

const (
	MilitaryDefeat    Kind = "military_defeat"
	PoliticalDefeat   Kind = "political_defeat"
	ScriptedDefeat    Kind = "scripted_defeat"
	ExileDefeat       Kind = "exile_defeat"
	MilitaryVictory   Kind = "military_victory"
	DiplomaticVictory Kind = "diplomatic_victory"
	HistoricalVictory Kind = "historical_victory"
)

type Desc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Defeat struct {
	Military struct {
		Desc        `yaml:",inline"`
		TroopsBelow int `yaml:"troops_below"`
	} `yaml:"military"`
	Political struct {
		Desc        `yaml:",inline"`
		MoraleBelow int `yaml:"morale_below"`
	} `yaml:"political"`
}

type Victory struct {
	Military struct {
		Desc        `yaml:",inline"`
		Territories int `yaml:"territories"`
		Morale      int `yaml:"morale"`
	} `yaml:"military"`
	Diplomatic struct {
		Desc   `yaml:",inline"`
		Allies int `yaml:"allies"`
	} `yaml:"diplomatic"`
	Historical struct {
		Desc     `yaml:",inline"`
		Year     int     `yaml:"year"`
		Accuracy float64 `yaml:"accuracy"`
	} `yaml:"historical"`
}

type table struct {
	Title   string  `yaml:"title"`
	Defeat  Defeat  `yaml:"defeat"`
	Victory Victory `yaml:"victory"`
}

var (
	Conditions = &table{}
	loadOnce   sync.Once
)

func Load() {
	loadOnce.Do(func() {
		t, err := parse(rawConditions)
		if err != nil {
			panic(fmt.Sprintf("load condition table failed: %v", err))
		}
		Conditions = t
	})
}

func parse(data []byte) (*table, error) {
	t := &table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	if t.Defeat.Military.TroopsBelow <= 0 || t.Defeat.Political.MoraleBelow <= 0 {
		return nil, fmt.Errorf("defeat thresholds must be positive")
	}
	if t.Victory.Military.Territories <= 0 || t.Victory.Diplomatic.Allies <= 0 || t.Victory.Historical.Year <= 0 {
		return nil, fmt.Errorf("victory thresholds must be positive")
	}
	return t, nil
}

func Get() *table {
	Load()
	return Conditions
}

// Describe 返回胜负类型的展示名和说明。
func Describe(k Kind) Desc {
	t := Get()
	switch k {
	case MilitaryDefeat:
		return t.Defeat.Military.Desc
	case PoliticalDefeat:
		return t.Defeat.Political.Desc
	case ScriptedDefeat:
		return Desc{Name: "Defeat", Description: "The Empire has fallen"}
	case ExileDefeat:
		return Desc{Name: "Exile", Description: "The campaign ended far from Napoleon's historical path"}
	case MilitaryVictory:
		return t.Victory.Military.Desc
	case DiplomaticVictory:
		return t.Victory.Diplomatic.Desc
	case HistoricalVictory:
		return t.Victory.Historical.Desc
	}
	return Desc{Name: string(k)}
}

func (k Kind) IsVictory() bool {
	return k == MilitaryVictory || k == DiplomaticVictory || k == HistoricalVictory
}
