package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/campaign/infra/persistence/model"
	"NapoleonCampaign/internal/campaign/service/port"
)

const OpSave = "repo.memory.Save"

// SaveRepo 进程内存档，存的是文档拷贝，读档同样走校验；用于测试和 driver=memory。
type SaveRepo struct {
	mu   sync.RWMutex
	docs map[string]model.SaveDoc
	now  func() time.Time
}

func NewSaveRepo() *SaveRepo {
	return &SaveRepo{docs: make(map[string]model.SaveDoc), now: time.Now}
}

func (r *SaveRepo) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	if !port.ValidSlot(slot) {
		return errs.Wrap(OpSave, errs.KindBusiness, entity.ErrInvalidSlot, map[string]any{"slot": slot})
	}
	doc := model.CampaignToDoc(c, slot, r.now())
	r.mu.Lock()
	r.docs[slot] = doc
	r.mu.Unlock()
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	r.mu.RLock()
	doc, ok := r.docs[slot]
	r.mu.RUnlock()
	if !ok {
		return nil, entity.ErrSaveNotFound
	}
	return model.DocToCampaign(doc)
}

func (r *SaveRepo) List(ctx context.Context) ([]port.SaveInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]port.SaveInfo, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, port.SaveInfo{
			Slot:       d.Slot,
			CampaignID: d.CampaignID,
			Year:       d.Year,
			Turn:       d.Turn,
			EventID:    d.CurrentEvent,
			SavedAt:    d.SavedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (r *SaveRepo) Delete(ctx context.Context, slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[slot]; !ok {
		return entity.ErrSaveNotFound
	}
	delete(r.docs, slot)
	return nil
}
