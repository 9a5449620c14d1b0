package domain

import "sort"

// 资源上下限，每次修改后都会夹回区间内。
const (
	MaxTroops   = 500000
	MaxGold     = 100000
	MaxMorale   = 100
	MinRelation = -100
	MaxRelation = 100

	// 关系 >= AllyThreshold 视为盟友，<= EnemyThreshold 视为敌国。
	AllyThreshold  = 50
	EnemyThreshold = -50
	// 结盟/宣战时把关系直接拉到的值。
	AllyRelation  = 60
	EnemyRelation = -60
)

// ResourceState 玩家（法兰西）的全部可变资源。
type ResourceState struct {
	Troops      int            `json:"troops" bson:"troops"`
	Gold        int            `json:"gold" bson:"gold"`
	Morale      int            `json:"morale" bson:"morale"`
	Territories []string       `json:"territories" bson:"territories"`
	Relations   map[string]int `json:"relations" bson:"relations"`
}

// NewResourceState 开局：5 万兵、1 万金、满士气，只有法兰西本土。
func NewResourceState(relations map[string]int) ResourceState {
	r := ResourceState{
		Troops:      50000,
		Gold:        10000,
		Morale:      100,
		Territories: []string{"France"},
		Relations:   make(map[string]int, len(relations)),
	}
	for k, v := range relations {
		r.Relations[k] = v
	}
	r.Clamp()
	return r
}

// Clamp 把所有标量和关系值夹回合法区间，并去掉重复领土。
func (r *ResourceState) Clamp() {
	r.Troops = clamp(r.Troops, 0, MaxTroops)
	r.Gold = clamp(r.Gold, 0, MaxGold)
	r.Morale = clamp(r.Morale, 0, MaxMorale)
	for k, v := range r.Relations {
		r.Relations[k] = clamp(v, MinRelation, MaxRelation)
	}
	if len(r.Territories) > 1 {
		seen := make(map[string]struct{}, len(r.Territories))
		out := r.Territories[:0]
		for _, t := range r.Territories {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
		r.Territories = out
	}
}

// AddScalars 按增量修改兵力、金币、士气。
func (r *ResourceState) AddScalars(troops, gold, morale int) {
	r.Troops += troops
	r.Gold += gold
	r.Morale += morale
	r.Clamp()
}

// ApplyConsequence 是领土和外交关系唯一的修改入口。
func (r *ResourceState) ApplyConsequence(c Consequence) {
	r.Troops += c.Troops
	r.Gold += c.Gold
	r.Morale += c.Morale
	for _, t := range c.Territories {
		r.addTerritory(t)
	}
	if r.Relations == nil && (len(c.Relations) > 0 || len(c.Allies) > 0 || len(c.Enemies) > 0) {
		r.Relations = make(map[string]int)
	}
	// map 遍历顺序不固定，但每个国家只加一次，结果与顺序无关。
	for n, d := range c.Relations {
		r.Relations[n] += d
	}
	for _, n := range c.Allies {
		if r.Relations[n] < AllyRelation {
			r.Relations[n] = AllyRelation
		}
	}
	for _, n := range c.Enemies {
		if r.Relations[n] > EnemyRelation {
			r.Relations[n] = EnemyRelation
		}
	}
	r.Clamp()
}

func (r *ResourceState) addTerritory(name string) {
	if name == "" || r.HasTerritory(name) {
		return
	}
	r.Territories = append(r.Territories, name)
}

func (r ResourceState) HasTerritory(name string) bool {
	for _, t := range r.Territories {
		if t == name {
			return true
		}
	}
	return false
}

// Allies 按名字排序，方便展示和比较。
func (r ResourceState) Allies() []string {
	return r.nationsWhere(func(v int) bool { return v >= AllyThreshold })
}

func (r ResourceState) Enemies() []string {
	return r.nationsWhere(func(v int) bool { return v <= EnemyThreshold })
}

func (r ResourceState) nationsWhere(pred func(int) bool) []string {
	out := make([]string, 0, len(r.Relations))
	for n, v := range r.Relations {
		if pred(v) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Clone 深拷贝，存档快照和测试对比用。
func (r ResourceState) Clone() ResourceState {
	out := r
	out.Territories = append([]string(nil), r.Territories...)
	if r.Relations != nil {
		out.Relations = make(map[string]int, len(r.Relations))
		for k, v := range r.Relations {
			out.Relations[k] = v
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
