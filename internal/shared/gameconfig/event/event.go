package event

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed events.yml
var rawEvents []byte

// 终局标记：choice 的 next 指向它们时战役直接结束。
const (
	Victory = "victory"
	Defeat  = "defeat"
)

type Consequence struct {
	Troops      int            `yaml:"troops"`
	Gold        int            `yaml:"gold"`
	Morale      int            `yaml:"morale"`
	Territories []string       `yaml:"territories"`
	Allies      []string       `yaml:"allies"`
	Enemies     []string       `yaml:"enemies"`
	Relations   map[string]int `yaml:"relations"`
	AddTrait    string         `yaml:"add_trait"`
	AddGeneral  string         `yaml:"add_general"`
	AddArtifact string         `yaml:"add_artifact"`
	// Next 为空时沿历史主线顺延。
	Next string `yaml:"next"`
}

type Battle struct {
	Enemy       string       `yaml:"enemy"`
	EnemyTroops int          `yaml:"enemy_troops"`
	Terrain     float64      `yaml:"terrain"`
	OnDefeat    *Consequence `yaml:"on_defeat"`
}

type Choice struct {
	Text        string      `yaml:"text"`
	Consequence Consequence `yaml:"consequence"`
	Battle      *Battle     `yaml:"battle"`
}

type Event struct {
	ID          string   `yaml:"id"`
	Year        int      `yaml:"year"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Choices     []Choice `yaml:"choices"`
}

type table struct {
	Title    string   `yaml:"title"`
	Start    string   `yaml:"start"`
	Sequence []string `yaml:"sequence"`
	List     []Event  `yaml:"events"`

	byID     map[string]*Event
	seqIndex map[string]int
}

var (
	Events   = &table{}
	loadOnce sync.Once
)

// Load 解析内置事件表，只执行一次；内容不合法直接 panic（启动即失败）。
func Load() {
	loadOnce.Do(func() {
		t, err := parse(rawEvents)
		if err != nil {
			panic(fmt.Sprintf("load event table failed: %v", err))
		}
		Events = t
	})
}

func parse(data []byte) (*table, error) {
	t := &table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	t.byID = make(map[string]*Event, len(t.List))
	for i := range t.List {
		e := &t.List[i]
		if e.ID == "" {
			return nil, fmt.Errorf("event #%d has empty id", i)
		}
		if _, dup := t.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q", e.ID)
		}
		if len(e.Choices) == 0 {
			return nil, fmt.Errorf("event %q has no choices", e.ID)
		}
		t.byID[e.ID] = e
	}
	t.seqIndex = make(map[string]int, len(t.Sequence))
	for i, id := range t.Sequence {
		if _, ok := t.byID[id]; !ok {
			return nil, fmt.Errorf("sequence references unknown event %q", id)
		}
		if _, dup := t.seqIndex[id]; dup {
			return nil, fmt.Errorf("sequence lists %q twice", id)
		}
		t.seqIndex[id] = i
	}
	if _, ok := t.byID[t.Start]; !ok {
		return nil, fmt.Errorf("start event %q not found", t.Start)
	}
	for _, e := range t.List {
		for i, c := range e.Choices {
			if err := t.checkNext(c.Consequence.Next); err != nil {
				return nil, fmt.Errorf("event %q choice %d: %w", e.ID, i+1, err)
			}
			if c.Battle == nil {
				continue
			}
			if c.Battle.Enemy == "" || c.Battle.EnemyTroops <= 0 {
				return nil, fmt.Errorf("event %q choice %d: battle needs enemy and enemy_troops", e.ID, i+1)
			}
			if c.Battle.OnDefeat != nil {
				if err := t.checkNext(c.Battle.OnDefeat.Next); err != nil {
					return nil, fmt.Errorf("event %q choice %d on_defeat: %w", e.ID, i+1, err)
				}
			}
		}
	}
	return t, nil
}

func (t *table) checkNext(next string) error {
	if next == "" || IsTerminal(next) {
		return nil
	}
	if _, ok := t.byID[next]; !ok {
		return fmt.Errorf("next %q not found", next)
	}
	return nil
}

func IsTerminal(next string) bool {
	return next == Victory || next == Defeat
}

// Get 按 id 查事件。
func Get(id string) (Event, bool) {
	Load()
	e, ok := Events.byID[id]
	if !ok {
		return Event{}, false
	}
	return *e, true
}

func Start() string {
	Load()
	return Events.Start
}

// Sequence 返回历史主线的拷贝。
func Sequence() []string {
	Load()
	out := make([]string, len(Events.Sequence))
	copy(out, Events.Sequence)
	return out
}

// InSequence 判断事件是否属于历史主线（用于历史还原度）。
func InSequence(id string) bool {
	Load()
	_, ok := Events.seqIndex[id]
	return ok
}

// NextInSequence 返回主线上的下一个事件；不在主线或已到末尾时返回空串。
func NextInSequence(id string) string {
	Load()
	i, ok := Events.seqIndex[id]
	if !ok || i+1 >= len(Events.Sequence) {
		return ""
	}
	return Events.Sequence[i+1]
}

func Count() int {
	Load()
	return len(Events.List)
}
