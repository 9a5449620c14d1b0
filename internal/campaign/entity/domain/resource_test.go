package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewResourceState_开局资源(t *testing.T) {
	r := NewResourceState(map[string]int{"Austria": -60, "Britain": -60})
	require.Equal(t, 50000, r.Troops)
	require.Equal(t, 10000, r.Gold)
	require.Equal(t, 100, r.Morale)
	require.Equal(t, []string{"France"}, r.Territories)
	require.Equal(t, []string{"Austria", "Britain"}, r.Enemies())
	require.Empty(t, r.Allies())
}

// 任意增量组合之后，所有标量和关系都在区间内。
func TestApplyConsequence_始终夹在区间内(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := NewResourceState(map[string]int{"Austria": -60})
	for i := 0; i < 2000; i++ {
		c := Consequence{
			Troops:    rng.Intn(1_200_000) - 600_000,
			Gold:      rng.Intn(300_000) - 150_000,
			Morale:    rng.Intn(400) - 200,
			Relations: map[string]int{"Austria": rng.Intn(500) - 250, "Spain": rng.Intn(500) - 250},
		}
		if i%3 == 0 {
			c.Allies = []string{"Russia"}
		}
		if i%5 == 0 {
			c.Enemies = []string{"Russia"}
		}
		r.ApplyConsequence(c)
		require.GreaterOrEqual(t, r.Troops, 0)
		require.LessOrEqual(t, r.Troops, MaxTroops)
		require.GreaterOrEqual(t, r.Gold, 0)
		require.LessOrEqual(t, r.Gold, MaxGold)
		require.GreaterOrEqual(t, r.Morale, 0)
		require.LessOrEqual(t, r.Morale, MaxMorale)
		for n, v := range r.Relations {
			require.GreaterOrEqualf(t, v, MinRelation, "nation %s", n)
			require.LessOrEqualf(t, v, MaxRelation, "nation %s", n)
		}
	}
}

// 同一后果应用两次会叠加两次，不是幂等的。
func TestApplyConsequence_不是幂等的(t *testing.T) {
	r := NewResourceState(nil)
	c := Consequence{Troops: -3000, Gold: 1000, Morale: -5, Territories: []string{"Lombardy"}}

	r.ApplyConsequence(c)
	once := r.Clone()
	r.ApplyConsequence(c)

	require.Equal(t, once.Troops-3000, r.Troops)
	require.Equal(t, once.Gold+1000, r.Gold)
	require.Equal(t, once.Morale-5, r.Morale)
	// 领土是集合，重复加入不会出现两次
	require.Equal(t, []string{"France", "Lombardy"}, r.Territories)
}

func TestApplyConsequence_结盟与宣战(t *testing.T) {
	r := NewResourceState(map[string]int{"Austria": -60, "Spain": 80})
	r.ApplyConsequence(Consequence{Allies: []string{"Austria", "Spain"}, Enemies: []string{"Bavaria"}})

	require.Equal(t, AllyRelation, r.Relations["Austria"])
	// 已经高于 60 的关系不会被拉低
	require.Equal(t, 80, r.Relations["Spain"])
	require.Equal(t, EnemyRelation, r.Relations["Bavaria"])
	require.Equal(t, []string{"Austria", "Spain"}, r.Allies())
	require.Equal(t, []string{"Bavaria"}, r.Enemies())
}

func TestApplyConsequence_领土保持插入顺序(t *testing.T) {
	r := NewResourceState(nil)
	r.ApplyConsequence(Consequence{Territories: []string{"Lombardy", "Venetia"}})
	r.ApplyConsequence(Consequence{Territories: []string{"Egypt", "Lombardy", ""}})
	require.Equal(t, []string{"France", "Lombardy", "Venetia", "Egypt"}, r.Territories)
}

func TestClone_深拷贝(t *testing.T) {
	r := NewResourceState(map[string]int{"Austria": -60})
	c := r.Clone()
	c.Relations["Austria"] = 10
	c.Territories[0] = "Corsica"
	require.Equal(t, -60, r.Relations["Austria"])
	require.Equal(t, "France", r.Territories[0])
}

func TestClamp_修复越界存档(t *testing.T) {
	r := ResourceState{Troops: -5, Gold: 1 << 30, Morale: 101, Territories: []string{"France", "France"}, Relations: map[string]int{"Russia": -300}}
	r.Clamp()
	require.Equal(t, 0, r.Troops)
	require.Equal(t, MaxGold, r.Gold)
	require.Equal(t, MaxMorale, r.Morale)
	require.Equal(t, []string{"France"}, r.Territories)
	require.Equal(t, MinRelation, r.Relations["Russia"])
}
