package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"NapoleonCampaign/internal/campaign/app"
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/campaign/service"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
)

const panelWidth = 72

var (
	gold      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2C14E"))
	title     = gold.Bold(true)
	dim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	good      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	bad       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warn      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	border    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cellStyle = lipgloss.NewStyle().Padding(0, 1)
	panel     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 1).
			Width(panelWidth)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(title)
			}
			return cellStyle
		})
}

func num(n int) string {
	return humanize.Comma(int64(n))
}

func signed(n int) string {
	if n > 0 {
		return "+" + num(n)
	}
	return num(n)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return dim.Render("none")
	}
	return strings.Join(items, ", ")
}

func renderBanner() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		title.Render("=== NAPOLEON'S CAMPAIGN ==="),
		dim.Render("A historical strategy game"),
	) + "\n"
}

func renderMainMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(gold.Render("1.") + " New Campaign\n")
	b.WriteString(gold.Render("2.") + " Load Campaign\n")
	b.WriteString(gold.Render("3.") + " Instructions\n")
	b.WriteString(gold.Render("4.") + " Exit\n")
	return b.String()
}

func renderInstructions() string {
	body := strings.Join([]string{
		title.Render("OVERVIEW"),
		"You are Napoleon Bonaparte, commanding France through the turbulent years of the French Revolution and the Napoleonic Wars.",
		"",
		title.Render("RESOURCES"),
		"TROOPS      military strength for battles (defeat below 5,000)",
		"GOLD        pays for the army and for envoys",
		"MORALE      public support and army effectiveness (defeat below 20)",
		"TERRITORIES land under French control, each one pays income",
		"",
		title.Render("COMMANDS"),
		"1-4              choose an option",
		"status           show your resources",
		"save [slot]      save the campaign",
		"delete <slot>    delete a saved game",
		"envoy <nation>   send an envoy (costs 1,000 gold)",
		"goal <text>      set a personal objective",
		"goals            list your objectives",
		"quit             leave the campaign",
		"",
		title.Render("OBJECTIVE"),
		"Lead France to victory through military conquest, diplomatic alliances, or by following the historical path.",
	}, "\n")
	return panel.Render(title.Render("INSTRUCTIONS")+"\n\n"+body) + "\n"
}

func renderHelp() string {
	return dim.Render("Commands: <number>, status, save [slot], delete <slot>, envoy <nation>, goal <text>, goals, help, quit") + "\n"
}

func renderStatus(c *entity.Campaign) string {
	res := c.Resources
	t := newTable("", "").
		Row("Year", fmt.Sprintf("%d (%s, turn %d)", c.Year, c.Season, c.Turn)).
		Row("Troops", num(res.Troops)).
		Row("Gold", num(res.Gold)).
		Row("Morale", fmt.Sprintf("%d/%d", res.Morale, domain.MaxMorale)).
		Row("Territories", listOrNone(res.Territories)).
		Row("Allies", listOrNone(res.Allies())).
		Row("Enemies", listOrNone(res.Enemies()))
	if mods := modifierNames(c); len(mods) != 0 {
		t.Row("Modifiers", strings.Join(mods, ", "))
	}
	return t.Width(panelWidth).Render() + "\n"
}

func modifierNames(c *entity.Campaign) []string {
	var out []string
	for _, id := range c.Traits {
		if m, ok := roguelike.Trait(id); ok {
			out = append(out, m.Name)
		}
	}
	for _, id := range c.Generals {
		if m, ok := roguelike.General(id); ok {
			out = append(out, m.Name)
		}
	}
	for _, id := range c.Artifacts {
		if m, ok := roguelike.Artifact(id); ok {
			out = append(out, m.Name)
		}
	}
	return out
}

func renderEvent(v app.EventView) string {
	heading := fmt.Sprintf("%d: %s", v.Year, v.Title)
	if v.Random {
		heading = "Random Event: " + v.Title
	}
	var b strings.Builder
	b.WriteString(title.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(v.Description))
	b.WriteString("\n")
	for i, ch := range v.Choices {
		b.WriteString("\n")
		b.WriteString(gold.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" " + ch.Text)
		if ch.Battle != nil {
			b.WriteString("\n   " + warn.Render(fmt.Sprintf("[battle vs %s, %s troops]", ch.Battle.Enemy, num(ch.Battle.EnemyTroops))))
		}
	}
	return panel.Render(b.String()) + "\n"
}

func renderBattle(r domain.BattleResult) string {
	verdict := bad.Render("DEFEAT")
	if r.Victory {
		verdict = good.Render("VICTORY")
	}
	t := newTable("", "France", r.Enemy).
		Row("Troops", num(r.AttackerTroops), num(r.DefenderTroops)).
		Row("Strength", num(int(r.AttackerScore)), num(int(r.DefenderScore))).
		Row("Casualties", num(r.AttackerCasualties), num(r.DefenderCasualties))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\nBattle against %s: %s\n", r.Enemy, verdict))
	b.WriteString(t.Render())
	b.WriteString(fmt.Sprintf("\nMorale %s\n", signed(r.MoraleDelta)))
	for _, id := range r.FallenGenerals {
		name := id
		if g, ok := roguelike.General(id); ok {
			name = g.Name
		}
		b.WriteString(bad.Render(name+" has fallen in battle.") + "\n")
	}
	return b.String()
}

func renderTurnReport(rep service.TurnReport) string {
	parts := []string{fmt.Sprintf("income %s", signed(rep.Income)), fmt.Sprintf("upkeep %s", signed(-rep.Maintenance))}
	if rep.SeasonGold != 0 {
		parts = append(parts, fmt.Sprintf("%s %s gold", rep.Season, signed(rep.SeasonGold)))
	}
	if m := rep.SeasonMorale + rep.MoraleRegen; m != 0 {
		parts = append(parts, fmt.Sprintf("morale %s", signed(m)))
	}
	line := fmt.Sprintf("End of %s: %s (net %s gold)", rep.Season, strings.Join(parts, ", "), signed(rep.NetGold()))
	if rep.NewYear {
		line += ", a new year begins"
	}
	return dim.Render(line) + "\n"
}

func renderEnvoy(r *service.EnvoyResult, c *entity.Campaign) string {
	rel := c.Resources.Relations[r.Nation]
	if r.Success {
		return good.Render(fmt.Sprintf("Your envoy to %s was well received (chance %.0f%%). Relations now %d.", r.Nation, r.Chance*100, rel)) + "\n"
	}
	return bad.Render(fmt.Sprintf("Your envoy to %s was turned away (chance %.0f%%). Relations now %d.", r.Nation, r.Chance*100, rel)) + "\n"
}

func renderGoals(goals []entity.Goal) string {
	if len(goals) == 0 {
		return dim.Render("No goals set. Use: goal <description>") + "\n"
	}
	t := newTable("ID", "Goal", "Kind", "Progress")
	for _, g := range goals {
		progress := fmt.Sprintf("%d%%", g.Progress)
		if g.Completed {
			progress = good.Render("done")
		}
		t.Row(g.ID, g.Description, string(g.Kind), progress)
	}
	return t.Render() + "\n"
}

func renderSaves(list []app.SaveInfo) string {
	if len(list) == 0 {
		return dim.Render("No saved campaigns.") + "\n"
	}
	sorted := append([]app.SaveInfo(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SavedAt.After(sorted[j].SavedAt) })
	t := newTable("Slot", "Year", "Turn", "Event", "Saved")
	for _, s := range sorted {
		t.Row(s.Slot, fmt.Sprint(s.Year), fmt.Sprint(s.Turn), s.EventID, humanize.Time(s.SavedAt))
	}
	return t.Render() + "\n"
}

func renderGameOver(c *entity.Campaign, accuracy float64) string {
	var heading string
	switch {
	case c.Phase == entity.PhaseExited:
		heading = warn.Render("CAMPAIGN ABANDONED")
	case c.Outcome.IsVictory():
		heading = good.Render("VICTORY: " + condition.Describe(c.Outcome).Name)
	default:
		heading = bad.Render("DEFEAT: " + condition.Describe(c.Outcome).Name)
	}
	var sub string
	if c.Outcome != "" {
		sub = condition.Describe(c.Outcome).Description
	}

	st := c.Stats
	t := newTable("", "").
		Row("Years played", fmt.Sprint(c.YearsPlayed())).
		Row("Final year", fmt.Sprint(c.Year)).
		Row("Territories", fmt.Sprint(len(c.Resources.Territories))).
		Row("Allies", fmt.Sprint(len(c.Resources.Allies()))).
		Row("Battles won", fmt.Sprintf("%d of %d", st.BattlesWon, st.BattlesWon+st.BattlesLost)).
		Row("Peak troops", num(st.PeakTroops)).
		Row("Gold earned", num(st.GoldEarned)).
		Row("Envoys", fmt.Sprintf("%d sent, %d welcomed", st.EnvoysSent, st.EnvoysSucceeded)).
		Row("Historical accuracy", fmt.Sprintf("%.0f%%", accuracy))

	var b strings.Builder
	b.WriteString("\n" + title.Render("=== GAME OVER ===") + "\n")
	b.WriteString(heading + "\n")
	if sub != "" {
		b.WriteString(dim.Render(sub) + "\n")
	}
	b.WriteString(t.Render() + "\n")
	return b.String()
}
