package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/campaign/infra/persistence/model"
	"NapoleonCampaign/internal/campaign/service/port"
)

const (
	OpMigrate = "repo.sqlite.Migrate"
	OpSave    = "repo.sqlite.Save"
	OpLoad    = "repo.sqlite.Load"
	OpList    = "repo.sqlite.List"
	OpDelete  = "repo.sqlite.Delete"
)

const schema = `
CREATE TABLE IF NOT EXISTS campaign_saves (
	slot        TEXT PRIMARY KEY,
	campaign_id TEXT NOT NULL,
	year        INTEGER NOT NULL,
	turn        INTEGER NOT NULL,
	event_id    TEXT NOT NULL,
	data        TEXT NOT NULL,
	saved_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaign_saves_saved_at ON campaign_saves(saved_at);
`

// saveRow saved_at 存毫秒时间戳，避免驱动之间时间格式不一致。
type saveRow struct {
	Slot       string `db:"slot"`
	CampaignID string `db:"campaign_id"`
	Year       int    `db:"year"`
	Turn       int    `db:"turn"`
	EventID    string `db:"event_id"`
	Data       string `db:"data"`
	SavedAt    int64  `db:"saved_at"`
}

type SaveRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSaveRepo 建表后返回；db 由 infrastructure/sqlite.Open 打开。
func NewSaveRepo(db *sqlx.DB) (*SaveRepo, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errs.Wrap(OpMigrate, errs.KindInfra, err, nil)
	}
	return &SaveRepo{db: db, now: time.Now}, nil
}

func (r *SaveRepo) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	meta := map[string]any{"slot": slot}
	if !port.ValidSlot(slot) {
		return errs.Wrap(OpSave, errs.KindBusiness, entity.ErrInvalidSlot, meta)
	}
	doc := model.CampaignToDoc(c, slot, r.now())
	data, err := model.MarshalDoc(doc)
	if err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	row := saveRow{
		Slot:       slot,
		CampaignID: doc.CampaignID,
		Year:       doc.Year,
		Turn:       doc.Turn,
		EventID:    doc.CurrentEvent,
		Data:       string(data),
		SavedAt:    doc.SavedAt.UnixMilli(),
	}
	_, err = r.db.NamedExecContext(ctx, `
INSERT INTO campaign_saves (slot, campaign_id, year, turn, event_id, data, saved_at)
VALUES (:slot, :campaign_id, :year, :turn, :event_id, :data, :saved_at)
ON CONFLICT(slot) DO UPDATE SET
	campaign_id = excluded.campaign_id,
	year = excluded.year,
	turn = excluded.turn,
	event_id = excluded.event_id,
	data = excluded.data,
	saved_at = excluded.saved_at
`, row)
	if err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	meta := map[string]any{"slot": slot}
	var data string
	err := r.db.GetContext(ctx, &data, `SELECT data FROM campaign_saves WHERE slot = ?`, slot)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, entity.ErrSaveNotFound
	case err != nil:
		return nil, errs.Wrap(OpLoad, errs.KindInfra, err, meta)
	}
	doc, err := model.UnmarshalDoc([]byte(data))
	if err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, err, meta)
	}
	c, err := model.DocToCampaign(doc)
	if err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, err, meta)
	}
	return c, nil
}

func (r *SaveRepo) List(ctx context.Context) ([]port.SaveInfo, error) {
	var rows []saveRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT slot, campaign_id, year, turn, event_id, '' AS data, saved_at FROM campaign_saves ORDER BY saved_at DESC`)
	if err != nil {
		return nil, errs.Wrap(OpList, errs.KindInfra, err, nil)
	}
	out := make([]port.SaveInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, port.SaveInfo{
			Slot:       row.Slot,
			CampaignID: row.CampaignID,
			Year:       row.Year,
			Turn:       row.Turn,
			EventID:    row.EventID,
			SavedAt:    time.UnixMilli(row.SavedAt).UTC(),
		})
	}
	return out, nil
}

func (r *SaveRepo) Delete(ctx context.Context, slot string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaign_saves WHERE slot = ?`, slot)
	if err != nil {
		return errs.Wrap(OpDelete, errs.KindInfra, err, map[string]any{"slot": slot})
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrSaveNotFound
	}
	return nil
}
