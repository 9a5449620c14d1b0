package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/campaign/infra/persistence/model"
	"NapoleonCampaign/internal/campaign/service/port"
)

const (
	OpSave   = "repo.file.Save"
	OpLoad   = "repo.file.Load"
	OpList   = "repo.file.List"
	OpDelete = "repo.file.Delete"
)

// SaveRepo 一个槽位一个 JSON 文件。默认槽位写到 path 本身，其余槽位写到 <name>_<slot><ext>。
// 覆盖前先把旧文件复制成 .bak。
type SaveRepo struct {
	path        string
	defaultSlot string
	now         func() time.Time
}

func NewSaveRepo(path, defaultSlot string) *SaveRepo {
	if path == "" {
		path = "napoleon_save.json"
	}
	if defaultSlot == "" {
		defaultSlot = "default"
	}
	return &SaveRepo{path: path, defaultSlot: defaultSlot, now: time.Now}
}

func (r *SaveRepo) slotPath(slot string) string {
	if slot == r.defaultSlot {
		return r.path
	}
	ext := filepath.Ext(r.path)
	return strings.TrimSuffix(r.path, ext) + "_" + slot + ext
}

func (r *SaveRepo) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	meta := map[string]any{"slot": slot}
	if !port.ValidSlot(slot) {
		return errs.Wrap(OpSave, errs.KindBusiness, entity.ErrInvalidSlot, meta)
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	data, err := model.MarshalDoc(model.CampaignToDoc(c, slot, r.now()))
	if err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}

	path := r.slotPath(slot)
	meta["path"] = path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	if err := backup(path); err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	// 先写临时文件再改名，写到一半崩溃也不会留下半个存档。
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	meta := map[string]any{"slot": slot}
	if !port.ValidSlot(slot) {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, entity.ErrInvalidSlot, meta)
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindInfra, err, meta)
	}
	path := r.slotPath(slot)
	meta["path"] = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, entity.ErrSaveNotFound
	case err != nil:
		return nil, errs.Wrap(OpLoad, errs.KindInfra, err, meta)
	}
	doc, err := model.UnmarshalDoc(data)
	if err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, err, meta)
	}
	c, err := model.DocToCampaign(doc)
	if err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, err, meta)
	}
	return c, nil
}

// List 扫描存档目录；读不出来的文件跳过，不影响其他槽位。
func (r *SaveRepo) List(ctx context.Context) ([]port.SaveInfo, error) {
	ext := filepath.Ext(r.path)
	base := strings.TrimSuffix(r.path, ext)
	matches, err := filepath.Glob(base + "*" + ext)
	if err != nil {
		return nil, errs.Wrap(OpList, errs.KindInfra, err, map[string]any{"path": r.path})
	}

	out := make([]port.SaveInfo, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(OpList, errs.KindInfra, err, nil)
		}
		slot, ok := r.slotOf(m, base, ext)
		if !ok {
			continue
		}
		data, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		doc, err := model.UnmarshalDoc(data)
		if err != nil {
			continue
		}
		out = append(out, port.SaveInfo{
			Slot:       slot,
			CampaignID: doc.CampaignID,
			Year:       doc.Year,
			Turn:       doc.Turn,
			EventID:    doc.CurrentEvent,
			SavedAt:    doc.SavedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (r *SaveRepo) slotOf(path, base, ext string) (string, bool) {
	if path == r.path {
		return r.defaultSlot, true
	}
	if !strings.HasPrefix(path, base+"_") {
		return "", false
	}
	slot := strings.TrimSuffix(strings.TrimPrefix(path, base+"_"), ext)
	if !port.ValidSlot(slot) {
		return "", false
	}
	return slot, true
}

func (r *SaveRepo) Delete(ctx context.Context, slot string) error {
	meta := map[string]any{"slot": slot}
	if !port.ValidSlot(slot) {
		return errs.Wrap(OpDelete, errs.KindBusiness, entity.ErrInvalidSlot, meta)
	}
	path := r.slotPath(slot)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.ErrSaveNotFound
		}
		return errs.Wrap(OpDelete, errs.KindInfra, err, meta)
	}
	_ = os.Remove(path + ".bak")
	return nil
}

// backup 旧存档存在时复制到 <path>.bak。
func backup(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", data, 0o644)
}
