package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"NapoleonCampaign/internal/campaign/app"
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/campaign/service"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
)

func newCampaign() *entity.Campaign {
	c := entity.NewCampaign("c-r", event.Start(), 1796, domain.NewResourceState(nation.InitialRelations()))
	c.Visit(event.Start())
	return c
}

func TestRenderStatus_包含资源(t *testing.T) {
	c := newCampaign()
	c.AddGeneral("ney")
	out := renderStatus(c)
	for _, want := range []string{"1796", "spring", "50,000", "10,000", "100/100", "France", "Austria", "none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("状态表缺少 %q:\n%s", want, out)
		}
	}
	require.Contains(t, out, "Modifiers")
}

func TestRenderEvent_编号与战斗标记(t *testing.T) {
	ev, ok := event.Get(event.Start())
	require.True(t, ok)
	out := renderEvent(app.EventView{ID: ev.ID, Year: ev.Year, Title: ev.Title, Description: ev.Description, Choices: domain.ChoicesFrom(ev)})
	require.Contains(t, out, "1796: The Italian Campaign")
	require.Contains(t, out, "1.")
	require.Contains(t, out, "3.")
	require.Contains(t, out, "battle vs Austria")

	out = renderEvent(app.EventView{Title: "Scandal", Random: true})
	require.Contains(t, out, "Random Event: Scandal")
}

func TestRenderBattle(t *testing.T) {
	out := renderBattle(domain.BattleResult{
		Enemy: "Austria", AttackerTroops: 50000, DefenderTroops: 38000,
		Victory: true, AttackerCasualties: 4000, DefenderCasualties: 7600, MoraleDelta: 10,
		FallenGenerals: []string{"ney"},
	})
	require.Contains(t, out, "VICTORY")
	require.Contains(t, out, "7,600")
	require.Contains(t, out, "Morale +10")
	require.Contains(t, out, "has fallen in battle")
}

func TestRenderTurnReport(t *testing.T) {
	out := renderTurnReport(service.TurnReport{Season: entity.Winter, SeasonGold: -400, SeasonMorale: -5, Income: 1000, Maintenance: 5000, NewYear: true})
	require.Contains(t, out, "End of winter")
	require.Contains(t, out, "net -4,400 gold")
	require.Contains(t, out, "a new year begins")
}

func TestRenderGameOver(t *testing.T) {
	c := newCampaign()
	c.Year = 1815
	c.Stats.BattlesWon = 3
	c.Stats.BattlesLost = 1
	c.Finish(condition.HistoricalVictory)
	out := renderGameOver(c, 87.5)
	require.Contains(t, out, "VICTORY: Historical Victory")
	require.Contains(t, out, "3 of 4")
	require.Contains(t, out, "88%")
	require.Contains(t, out, "19")
}

func TestRenderGoals(t *testing.T) {
	require.Contains(t, renderGoals(nil), "No goals set")
	out := renderGoals([]entity.Goal{
		{ID: "aa", Description: "Amass gold", Kind: entity.GoalEconomic, Progress: 40},
		{ID: "bb", Description: "Hold on", Kind: entity.GoalTemporal, Progress: 100, Completed: true},
	})
	require.Contains(t, out, "40%")
	require.Contains(t, out, "done")
}

func TestUserMessage_系统错误(t *testing.T) {
	err := app.ErrUnavailable.WithReason(app.ReasonSaveWriteFail)
	require.Equal(t, "The game could not be saved. Your campaign continues.", userMessage(err))
}
