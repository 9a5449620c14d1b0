package roguelike

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_内置修正表合法(t *testing.T) {
	Load()

	tr, ok := Trait("logistics_master")
	require.True(t, ok)
	require.Equal(t, MaintenanceReduction, tr.EffectType)
	require.Equal(t, 0.3, tr.Value)

	reckless, ok := Trait("reckless")
	require.True(t, ok)
	require.Equal(t, BattleModifier, reckless.EffectType)
	require.Equal(t, 0.1, reckless.StrengthBonus)

	ney, ok := General("ney")
	require.True(t, ok)
	require.Equal(t, 0.15, ney.DeathChance)

	_, ok = Artifact("imperial_eagle")
	require.True(t, ok)

	require.NotEmpty(t, RandomEvents())
	_, ok = RandomEvent("find_rosetta")
	require.True(t, ok)
}

func TestParse_随机事件引用未知特质(t *testing.T) {
	doc := `
traits:
- {id: diplomat, effect_type: diplomacy_bonus, value: 0.2}
random_events:
- id: x
  choices:
  - text: y
    consequence: {add_trait: unknown}
`
	_, err := parse([]byte(doc))
	require.Error(t, err)
}

func TestParse_随机事件不能改走向(t *testing.T) {
	doc := `
random_events:
- id: x
  choices:
  - text: y
    consequence: {next: waterloo_1815}
`
	_, err := parse([]byte(doc))
	require.Error(t, err)
}
