package model

import (
	"encoding/json"
	"fmt"
	"time"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
)

// SaveVersion 当前存档格式版本，读到更高版本的存档视为损坏。
const SaveVersion = 1

// SaveDoc 存档文档：file 后端直接落 JSON，mongodb 落 bson，sqlite/mysql 把它序列化进 data 列。
type SaveDoc struct {
	Version            int                  `json:"version" bson:"version"`
	CampaignID         string               `json:"campaign_id" bson:"campaign_id"`
	Slot               string               `json:"slot" bson:"_id"`
	SavedAt            time.Time            `json:"saved_at" bson:"saved_at"`
	CurrentEvent       string               `json:"current_event" bson:"current_event"`
	PendingRandomEvent string               `json:"pending_random_event,omitempty" bson:"pending_random_event,omitempty"`
	Year               int                  `json:"year" bson:"year"`
	Season             entity.Season        `json:"season" bson:"season"`
	Turn               int                  `json:"turn" bson:"turn"`
	Phase              entity.Phase         `json:"phase" bson:"phase"`
	Resources          domain.ResourceState `json:"resources" bson:"resources"`
	Traits             []string             `json:"traits,omitempty" bson:"traits,omitempty"`
	Generals           []string             `json:"generals,omitempty" bson:"generals,omitempty"`
	Artifacts          []string             `json:"artifacts,omitempty" bson:"artifacts,omitempty"`
	Visited            []string             `json:"visited" bson:"visited"`
	Outcome            condition.Kind       `json:"outcome,omitempty" bson:"outcome,omitempty"`
	Goals              []entity.Goal        `json:"goals,omitempty" bson:"goals,omitempty"`
	Stats              entity.Stats         `json:"stats" bson:"stats"`
}

// CampaignToDoc 拷贝一份，之后战役继续修改不会影响已生成的文档。
func CampaignToDoc(c *entity.Campaign, slot string, now time.Time) SaveDoc {
	return SaveDoc{
		Version:            SaveVersion,
		CampaignID:         c.ID,
		Slot:               slot,
		SavedAt:            now.UTC(),
		CurrentEvent:       c.CurrentEventID,
		PendingRandomEvent: c.PendingRandomEventID,
		Year:               c.Year,
		Season:             c.Season,
		Turn:               c.Turn,
		Phase:              c.Phase,
		Resources:          c.Resources.Clone(),
		Traits:             cloneStrings(c.Traits),
		Generals:           cloneStrings(c.Generals),
		Artifacts:          cloneStrings(c.Artifacts),
		Visited:            cloneStrings(c.Visited),
		Outcome:            c.Outcome,
		Goals:              append([]entity.Goal(nil), c.Goals...),
		Stats:              c.Stats,
	}
}

// DocToCampaign 校验后还原战役；任何一项不合法都返回 entity.ErrCorruptSave。
// 资源值会重新夹取，手工改过的存档不会带着越界的数值进入游戏。
func DocToCampaign(d SaveDoc) (*entity.Campaign, error) {
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrCorruptSave, err)
	}
	res := d.Resources.Clone()
	if res.Relations == nil {
		res.Relations = map[string]int{}
	}
	res.Clamp()

	c := &entity.Campaign{
		ID:                   d.CampaignID,
		Year:                 d.Year,
		Season:               d.Season,
		Turn:                 d.Turn,
		Phase:                d.Phase,
		CurrentEventID:       d.CurrentEvent,
		PendingRandomEventID: d.PendingRandomEvent,
		Resources:            res,
		Traits:               cloneStrings(d.Traits),
		Generals:             cloneStrings(d.Generals),
		Artifacts:            cloneStrings(d.Artifacts),
		Visited:              cloneStrings(d.Visited),
		Outcome:              d.Outcome,
		Goals:                append([]entity.Goal(nil), d.Goals...),
		Stats:                d.Stats,
	}
	if c.Season == "" {
		c.Season = entity.Spring
	}
	if c.Phase == "" {
		c.Phase = entity.PhaseInEvent
	}
	return c, nil
}

func (d SaveDoc) validate() error {
	switch {
	case d.Version <= 0 || d.Version > SaveVersion:
		return fmt.Errorf("unsupported version %d", d.Version)
	case d.CampaignID == "":
		return fmt.Errorf("missing campaign_id")
	case d.Turn < 1:
		return fmt.Errorf("invalid turn %d", d.Turn)
	}
	if _, ok := event.Get(d.CurrentEvent); !ok {
		return fmt.Errorf("unknown event %q", d.CurrentEvent)
	}
	if d.PendingRandomEvent != "" {
		if _, ok := roguelike.RandomEvent(d.PendingRandomEvent); !ok {
			return fmt.Errorf("unknown random event %q", d.PendingRandomEvent)
		}
	}
	switch d.Season {
	case "", entity.Spring, entity.Summer, entity.Autumn, entity.Winter:
	default:
		return fmt.Errorf("unknown season %q", d.Season)
	}
	switch d.Phase {
	case "", entity.PhaseMainMenu, entity.PhaseInEvent, entity.PhaseInBattle,
		entity.PhaseVictory, entity.PhaseDefeat, entity.PhaseExited:
	default:
		return fmt.Errorf("unknown phase %q", d.Phase)
	}
	for _, id := range d.Traits {
		if _, ok := roguelike.Trait(id); !ok {
			return fmt.Errorf("unknown trait %q", id)
		}
	}
	for _, id := range d.Generals {
		if _, ok := roguelike.General(id); !ok {
			return fmt.Errorf("unknown general %q", id)
		}
	}
	for _, id := range d.Artifacts {
		if _, ok := roguelike.Artifact(id); !ok {
			return fmt.Errorf("unknown artifact %q", id)
		}
	}
	return nil
}

// MarshalDoc / UnmarshalDoc 供 file、sqlite、mysql 后端共用。
func MarshalDoc(d SaveDoc) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDoc JSON 本身解析失败同样算存档损坏。
func UnmarshalDoc(data []byte) (SaveDoc, error) {
	var d SaveDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return SaveDoc{}, fmt.Errorf("%w: %v", entity.ErrCorruptSave, err)
	}
	return d, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
