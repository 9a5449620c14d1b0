package entity

import (
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
)

// Phase 战役状态机的状态。
type Phase string

const (
	PhaseMainMenu Phase = "main_menu"
	PhaseInEvent  Phase = "in_event"
	PhaseInBattle Phase = "in_battle"
	PhaseVictory  Phase = "victory"
	PhaseDefeat   Phase = "defeat"
	PhaseExited   Phase = "exited"
)

// Terminal 终态不再接受选项。
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseExited
}

type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// Next 春→夏→秋→冬→春，冬过完进入下一年。
func (s Season) Next() (next Season, newYear bool) {
	switch s {
	case Spring:
		return Summer, false
	case Summer:
		return Autumn, false
	case Autumn:
		return Winter, false
	default:
		return Spring, true
	}
}

type Stats struct {
	BattlesWon      int `json:"battles_won" bson:"battles_won"`
	BattlesLost     int `json:"battles_lost" bson:"battles_lost"`
	PeakTroops      int `json:"peak_troops" bson:"peak_troops"`
	GoldEarned      int `json:"gold_earned" bson:"gold_earned"`
	EnvoysSent      int `json:"envoys_sent" bson:"envoys_sent"`
	EnvoysSucceeded int `json:"envoys_succeeded" bson:"envoys_succeeded"`
	RandomEvents    int `json:"random_events" bson:"random_events"`
	StartYear       int `json:"start_year" bson:"start_year"`
}

// Campaign 一局游戏的全部状态，由唯一的循环协程持有并逐回合修改。
type Campaign struct {
	ID             string
	Year           int
	Season         Season
	Turn           int
	Phase          Phase
	CurrentEventID string
	// PendingRandomEventID 非空时，先处理这个随机事件，再回到 CurrentEventID。
	PendingRandomEventID string
	Resources            domain.ResourceState
	Traits               []string
	Generals             []string
	Artifacts            []string
	Visited              []string
	Outcome              condition.Kind
	Goals                []Goal
	Stats                Stats
}

// NewCampaign 开新局，停在第一个事件上。
func NewCampaign(id string, startEventID string, startYear int, resources domain.ResourceState) *Campaign {
	return &Campaign{
		ID:             id,
		Year:           startYear,
		Season:         Spring,
		Turn:           1,
		Phase:          PhaseInEvent,
		CurrentEventID: startEventID,
		Resources:      resources,
		Stats:          Stats{PeakTroops: resources.Troops, StartYear: startYear},
	}
}

// ActiveEventID 当前要回答的事件：随机事件优先。
func (c *Campaign) ActiveEventID() string {
	if c.PendingRandomEventID != "" {
		return c.PendingRandomEventID
	}
	return c.CurrentEventID
}

func (c *Campaign) HasTrait(id string) bool    { return contains(c.Traits, id) }
func (c *Campaign) HasGeneral(id string) bool  { return contains(c.Generals, id) }
func (c *Campaign) HasArtifact(id string) bool { return contains(c.Artifacts, id) }

// AddTrait 等只加一次，返回是否新增。
func (c *Campaign) AddTrait(id string) bool {
	if id == "" || c.HasTrait(id) {
		return false
	}
	c.Traits = append(c.Traits, id)
	return true
}

func (c *Campaign) AddGeneral(id string) bool {
	if id == "" || c.HasGeneral(id) {
		return false
	}
	c.Generals = append(c.Generals, id)
	return true
}

func (c *Campaign) AddArtifact(id string) bool {
	if id == "" || c.HasArtifact(id) {
		return false
	}
	c.Artifacts = append(c.Artifacts, id)
	return true
}

func (c *Campaign) RemoveGeneral(id string) {
	out := c.Generals[:0]
	for _, g := range c.Generals {
		if g != id {
			out = append(out, g)
		}
	}
	c.Generals = out
}

// Visit 记录进入过的事件（可重复，历史还原度按次数算）。
func (c *Campaign) Visit(eventID string) {
	c.Visited = append(c.Visited, eventID)
}

// TrackPeak 刷新峰值兵力。
func (c *Campaign) TrackPeak() {
	if c.Resources.Troops > c.Stats.PeakTroops {
		c.Stats.PeakTroops = c.Resources.Troops
	}
}

// Finish 进入终态。
func (c *Campaign) Finish(outcome condition.Kind) {
	c.Outcome = outcome
	if outcome.IsVictory() {
		c.Phase = PhaseVictory
	} else {
		c.Phase = PhaseDefeat
	}
	c.PendingRandomEventID = ""
}

func (c *Campaign) YearsPlayed() int {
	if c.Stats.StartYear == 0 {
		return 0
	}
	return c.Year - c.Stats.StartYear
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
