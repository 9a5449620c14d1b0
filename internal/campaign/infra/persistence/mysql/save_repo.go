package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/campaign/infra/persistence/model"
	"NapoleonCampaign/internal/campaign/service/port"
)

const (
	OpMigrate = "repo.mysql.Migrate"
	OpSave    = "repo.mysql.Save"
	OpLoad    = "repo.mysql.Load"
	OpList    = "repo.mysql.List"
	OpDelete  = "repo.mysql.Delete"
)

// listColumns 列存档时只取这些列，不读 data。
var listColumns = []string{"slot", "campaign_id", "year", "turn", "event_id", "saved_at"}

type SaveRepo struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSaveRepo AutoMigrate 存档表后返回。
func NewSaveRepo(db *gorm.DB) (*SaveRepo, error) {
	if err := db.AutoMigrate(&model.SaveRecord{}); err != nil {
		return nil, errs.Wrap(OpMigrate, errs.KindInfra, err, nil)
	}
	return &SaveRepo{db: db, now: time.Now}, nil
}

func (r *SaveRepo) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	meta := map[string]any{"slot": slot}
	if !port.ValidSlot(slot) {
		return errs.Wrap(OpSave, errs.KindBusiness, entity.ErrInvalidSlot, meta)
	}
	m, err := model.NewSaveRecord(model.CampaignToDoc(c, slot, r.now()))
	if err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	// 主键是 slot，Save 即 upsert。
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	meta := map[string]any{"slot": slot}
	var m model.SaveRecord
	err := r.db.WithContext(ctx).Where("slot = ?", slot).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, entity.ErrSaveNotFound
	case err != nil:
		return nil, errs.Wrap(OpLoad, errs.KindInfra, err, meta)
	}
	c, err := recordToCampaign(m)
	if err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, err, meta)
	}
	return c, nil
}

func (r *SaveRepo) List(ctx context.Context) ([]port.SaveInfo, error) {
	var rows []model.SaveRecord
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Order("saved_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(OpList, errs.KindInfra, err, nil)
	}
	out := make([]port.SaveInfo, 0, len(rows))
	for _, m := range rows {
		out = append(out, recordToInfo(m))
	}
	return out, nil
}

func (r *SaveRepo) Delete(ctx context.Context, slot string) error {
	res := r.db.WithContext(ctx).Where("slot = ?", slot).Delete(&model.SaveRecord{})
	if res.Error != nil {
		return errs.Wrap(OpDelete, errs.KindInfra, res.Error, map[string]any{"slot": slot})
	}
	if res.RowsAffected == 0 {
		return entity.ErrSaveNotFound
	}
	return nil
}

func recordToCampaign(m model.SaveRecord) (*entity.Campaign, error) {
	doc, err := model.UnmarshalDoc([]byte(m.Data))
	if err != nil {
		return nil, err
	}
	return model.DocToCampaign(doc)
}

func recordToInfo(m model.SaveRecord) port.SaveInfo {
	return port.SaveInfo{
		Slot:       m.Slot,
		CampaignID: m.CampaignID,
		Year:       m.Year,
		Turn:       m.Turn,
		EventID:    m.EventID,
		SavedAt:    m.SavedAt,
	}
}
