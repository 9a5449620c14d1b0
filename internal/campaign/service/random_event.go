package service

import (
	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
)

// RollRandomEvent 以 chance 的概率从随机事件池里抽一个。
func RollRandomEvent(chance float64, rng *rand.Rand) (event.Event, bool) {
	if chance <= 0 {
		return event.Event{}, false
	}
	if rng.Float64() >= chance {
		return event.Event{}, false
	}
	pool := roguelike.RandomEvents()
	if len(pool) == 0 {
		return event.Event{}, false
	}
	return pool[rng.Intn(len(pool))], true
}
