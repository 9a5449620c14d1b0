package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"NapoleonCampaign/internal/campaign/entity"
)

func fixedID() string { return "abcd1234" }

func TestParseGoal_关键词分类(t *testing.T) {
	cases := []struct {
		desc    string
		kind    entity.GoalKind
		target  int
		subject string
	}{
		{"Conquer 12 territories", entity.GoalConquest, 12, ""},
		{"Form an alliance with Spain", entity.GoalDiplomatic, 3, "Spain"},
		{"Amass 80,000 gold", entity.GoalEconomic, 80000, ""},
		{"Build an army of 200000 troops", entity.GoalMilitary, 200000, ""},
		{"Survive until 1810", entity.GoalTemporal, 1810, ""},
		{"Be remembered by 1812", entity.GoalTemporal, 1812, ""},
		{"Control 15 territories by 1805", entity.GoalConquest, 15, ""},
		{"Write my memoirs", entity.GoalCustom, 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			g, ok := ParseGoal(tc.desc, 3, fixedID)
			require.True(t, ok)
			require.Equal(t, "abcd1234", g.ID)
			require.Equal(t, tc.kind, g.Kind)
			require.Equal(t, tc.target, g.Target)
			require.Equal(t, tc.subject, g.Subject)
			require.Equal(t, 3, g.CreatedAt)
		})
	}
	_, ok := ParseGoal("   ", 1, fixedID)
	require.False(t, ok)
}

func TestNewGoalID_八位(t *testing.T) {
	require.Len(t, NewGoalID(), 8)
}

func TestUpdateGoals_完成后不回退(t *testing.T) {
	c := newCampaign()
	g, _ := ParseGoal("Amass 20000 gold", 1, fixedID)
	c.Goals = append(c.Goals, g)

	require.Empty(t, UpdateGoals(c))
	require.Equal(t, 50, c.Goals[0].Progress)

	c.Resources.Gold = 25000
	done := UpdateGoals(c)
	require.Len(t, done, 1)
	require.True(t, c.Goals[0].Completed)

	c.Resources.Gold = 0
	require.Empty(t, UpdateGoals(c))
	require.Equal(t, 100, c.Goals[0].Progress)
}

func TestGoalProgress_外交与时间(t *testing.T) {
	c := newCampaign()
	dip, _ := ParseGoal("Make peace with Austria", 1, fixedID)
	require.Equal(t, "Austria", dip.Subject)
	require.Equal(t, 0, GoalProgress(c, dip))
	c.Resources.Relations["Austria"] = 25
	require.Equal(t, 50, GoalProgress(c, dip))

	tmp, _ := ParseGoal("Survive until 1806", 1, fixedID)
	c.Year = 1801
	require.Equal(t, 50, GoalProgress(c, tmp))
}
