package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
)

// 各类目标没写数字时的默认值。
const (
	defaultConquestTarget   = 10
	defaultAllianceTarget   = 3
	defaultGoldTarget       = 50000
	defaultTroopsTarget     = 100000
	defaultYearTarget       = 1815
	maxGoalDescriptionRunes = 200
)

var (
	numberRe = regexp.MustCompile(`\d[\d,]*`)
	yearRe   = regexp.MustCompile(`\b1[78]\d\d\b`)
)

var goalKeywords = []struct {
	kind     entity.GoalKind
	keywords []string
}{
	{entity.GoalConquest, []string{"conquer", "capture", "control", "territor", "occupy", "annex"}},
	{entity.GoalDiplomatic, []string{"ally", "allies", "alliance", "diplomac", "peace", "treaty"}},
	{entity.GoalEconomic, []string{"gold", "wealth", "treasury", "money", "rich"}},
	{entity.GoalMilitary, []string{"troops", "army", "soldiers", "men", "military"}},
	{entity.GoalTemporal, []string{"survive", "until", "year", "reach", "last"}},
}

// NewGoalID uuid 取前 8 位，玩家输入时够短。
func NewGoalID() string {
	return uuid.NewString()[:8]
}

// ParseGoal 按关键词推断目标类型和数值目标。描述为空返回 false。
func ParseGoal(desc string, turn int, newID func() string) (entity.Goal, bool) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return entity.Goal{}, false
	}
	if r := []rune(desc); len(r) > maxGoalDescriptionRunes {
		desc = string(r[:maxGoalDescriptionRunes])
	}
	if newID == nil {
		newID = NewGoalID
	}
	g := entity.Goal{ID: newID(), Description: desc, Kind: entity.GoalCustom, CreatedAt: turn}
	lower := strings.ToLower(desc)

	for _, k := range goalKeywords {
		if containsAny(lower, k.keywords) {
			g.Kind = k.kind
			break
		}
	}
	// 写了年份又没命中其他关键词，按时间目标处理。
	if g.Kind == entity.GoalCustom && yearRe.MatchString(lower) {
		g.Kind = entity.GoalTemporal
	}

	switch g.Kind {
	case entity.GoalConquest:
		g.Target = firstNumber(lower, defaultConquestTarget)
	case entity.GoalDiplomatic:
		g.Target = firstNumber(lower, defaultAllianceTarget)
		g.Subject = mentionedNation(lower)
	case entity.GoalEconomic:
		g.Target = firstNumber(lower, defaultGoldTarget)
	case entity.GoalMilitary:
		g.Target = firstNumber(lower, defaultTroopsTarget)
	case entity.GoalTemporal:
		g.Target = defaultYearTarget
		if y := yearRe.FindString(lower); y != "" {
			g.Target, _ = strconv.Atoi(y)
		}
	}
	return g, true
}

// GoalProgress 0..100；自定义目标无法自动判断，保持原值。
func GoalProgress(c *entity.Campaign, g entity.Goal) int {
	res := c.Resources
	switch g.Kind {
	case entity.GoalConquest:
		return percent(len(res.Territories), g.Target)
	case entity.GoalDiplomatic:
		if g.Subject != "" {
			return percent(res.Relations[g.Subject], domain.AllyThreshold)
		}
		return percent(len(res.Allies()), g.Target)
	case entity.GoalEconomic:
		return percent(res.Gold, g.Target)
	case entity.GoalMilitary:
		return percent(res.Troops, g.Target)
	case entity.GoalTemporal:
		start := c.Stats.StartYear
		if g.Target <= start {
			return 100
		}
		return percent(c.Year-start, g.Target-start)
	}
	return g.Progress
}

// UpdateGoals 刷新进度，返回本次新完成的目标。完成后不会回退。
func UpdateGoals(c *entity.Campaign) []entity.Goal {
	var done []entity.Goal
	for i := range c.Goals {
		g := &c.Goals[i]
		if g.Completed {
			continue
		}
		g.Progress = GoalProgress(c, *g)
		if g.Progress >= 100 {
			g.Progress = 100
			g.Completed = true
			done = append(done, *g)
		}
	}
	return done
}

func percent(v, target int) int {
	if target <= 0 {
		return 0
	}
	p := v * 100 / target
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func firstNumber(s string, def int) int {
	for _, m := range numberRe.FindAllString(s, -1) {
		// 年份交给时间目标
		if yearRe.MatchString(m) {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
		if err == nil && n > 0 {
			return n
		}
	}
	return def
}

func mentionedNation(lower string) string {
	for _, n := range nation.All() {
		if strings.Contains(lower, strings.ToLower(n.Name)) {
			return n.Name
		}
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
