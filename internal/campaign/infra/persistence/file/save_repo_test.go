package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
)

func sampleCampaign() *entity.Campaign {
	c := entity.NewCampaign("c-7", event.Start(), 1796, domain.NewResourceState(nation.InitialRelations()))
	c.Visit(event.Start())
	c.Resources.AddScalars(-1234, 567, -8)
	return c
}

func newRepo(t *testing.T) (*SaveRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves", "napoleon_save.json")
	return NewSaveRepo(path, "default"), path
}

func TestSaveRepo_存读往返(t *testing.T) {
	r, path := newRepo(t)
	c := sampleCampaign()

	require.NoError(t, r.Save(context.Background(), "default", c))
	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := r.Load(context.Background(), "default")
	require.NoError(t, err)
	require.Equal(t, c.Resources, got.Resources)
	require.Equal(t, c.CurrentEventID, got.CurrentEventID)
	require.Equal(t, c.ID, got.ID)
}

func TestSaveRepo_覆盖前写备份(t *testing.T) {
	r, path := newRepo(t)
	c := sampleCampaign()
	require.NoError(t, r.Save(context.Background(), "default", c))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	c.Turn = 9
	require.NoError(t, r.Save(context.Background(), "default", c))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	require.Equal(t, first, bak)

	got, err := r.Load(context.Background(), "default")
	require.NoError(t, err)
	require.Equal(t, 9, got.Turn)
}

func TestSaveRepo_多槽位与列表(t *testing.T) {
	r, path := newRepo(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	require.NoError(t, r.Save(context.Background(), "default", sampleCampaign()))
	require.NoError(t, r.Save(context.Background(), "autosave", sampleCampaign()))
	_, err := os.Stat(filepath.Join(filepath.Dir(path), "napoleon_save_autosave.json"))
	require.NoError(t, err)

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 最新的排在前面
	require.Equal(t, "autosave", list[0].Slot)
	require.Equal(t, "default", list[1].Slot)
	require.Equal(t, event.Start(), list[0].EventID)
}

func TestSaveRepo_不存在与损坏(t *testing.T) {
	r, path := newRepo(t)
	if _, err := r.Load(context.Background(), "default"); !errors.Is(err, entity.ErrSaveNotFound) {
		t.Fatalf("期望 ErrSaveNotFound, got=%v", err)
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err := r.Load(context.Background(), "default")
	if !errors.Is(err, entity.ErrCorruptSave) {
		t.Fatalf("期望 ErrCorruptSave, got=%v", err)
	}
	if errs.KindOf(err) != errs.KindBusiness {
		t.Fatalf("期望业务类错误, got=%s", errs.KindOf(err))
	}
}

func TestSaveRepo_非法槽位与删除(t *testing.T) {
	r, _ := newRepo(t)
	if err := r.Save(context.Background(), "../escape", sampleCampaign()); !errors.Is(err, entity.ErrInvalidSlot) {
		t.Fatalf("期望 ErrInvalidSlot, got=%v", err)
	}
	require.NoError(t, r.Save(context.Background(), "s1", sampleCampaign()))
	require.NoError(t, r.Delete(context.Background(), "s1"))
	if _, err := r.Load(context.Background(), "s1"); !errors.Is(err, entity.ErrSaveNotFound) {
		t.Fatalf("期望删除后读不到, got=%v", err)
	}
	if err := r.Delete(context.Background(), "s1"); !errors.Is(err, entity.ErrSaveNotFound) {
		t.Fatalf("期望重复删除返回 ErrSaveNotFound, got=%v", err)
	}
}
