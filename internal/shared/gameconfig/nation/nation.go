package nation

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed nations.yml
var rawNations []byte

type Nation struct {
	Name              string  `yaml:"name"`
	DiplomacyModifier float64 `yaml:"diplomacy_modifier"`
	// Relation 开局关系值
	Relation int `yaml:"relation"`
}

type table struct {
	Title string   `yaml:"title"`
	List  []Nation `yaml:"list"`

	byName map[string]Nation
}

var (
	Nations  = &table{}
	loadOnce sync.Once
)

func Load() {
	loadOnce.Do(func() {
		t, err := parse(rawNations)
		if err != nil {
			panic(fmt.Sprintf("load nation table failed: %v", err))
		}
		Nations = t
	})
}

func parse(data []byte) (*table, error) {
	t := &table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	t.byName = make(map[string]Nation, len(t.List))
	for _, n := range t.List {
		if n.Relation < -100 || n.Relation > 100 {
			return nil, fmt.Errorf("nation %q relation %d out of [-100,100]", n.Name, n.Relation)
		}
		if n.Name == "" {
			return nil, fmt.Errorf("nation with empty name")
		}
		key := strings.ToLower(n.Name)
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("duplicate nation %q", n.Name)
		}
		t.byName[key] = n
	}
	return t, nil
}

// Get 按名字查国家，大小写不敏感（玩家输入 envoy spain 也能匹配）。
func Get(name string) (Nation, bool) {
	Load()
	n, ok := Nations.byName[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

func All() []Nation {
	Load()
	out := make([]Nation, len(Nations.List))
	copy(out, Nations.List)
	return out
}

// InitialRelations 开局关系：只放非零项。
func InitialRelations() map[string]int {
	Load()
	out := make(map[string]int)
	for _, n := range Nations.List {
		if n.Relation != 0 {
			out[n.Name] = n.Relation
		}
	}
	return out
}
