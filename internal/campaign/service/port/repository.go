package port

import (
	"context"
	"regexp"
	"time"

	"NapoleonCampaign/internal/campaign/entity"
)

// SaveInfo 存档列表里的一行。
type SaveInfo struct {
	Slot       string
	CampaignID string
	Year       int
	Turn       int
	EventID    string
	SavedAt    time.Time
}

// SaveRepository 存档后端（file / sqlite / mysql / mongodb / memory）。
// 槽位不存在时 Load 返回 entity.ErrSaveNotFound，内容损坏返回 entity.ErrCorruptSave。
type SaveRepository interface {
	Save(ctx context.Context, slot string, c *entity.Campaign) error
	Load(ctx context.Context, slot string) (*entity.Campaign, error)
	List(ctx context.Context) ([]SaveInfo, error)
	Delete(ctx context.Context, slot string) error
}

var slotRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSlot 槽位名会进文件名和主键，只允许字母数字、下划线和短横线。
func ValidSlot(slot string) bool {
	return slotRe.MatchString(slot)
}
