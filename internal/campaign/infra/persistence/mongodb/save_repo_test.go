package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/campaign/infra/persistence/model"
	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
)

func sampleCampaign() *entity.Campaign {
	c := entity.NewCampaign("c-8", event.Start(), 1796, domain.NewResourceState(nation.InitialRelations()))
	c.Visit(event.Start())
	c.Turn = 3
	c.Resources.ApplyConsequence(domain.Consequence{Territories: []string{"Lombardy"}, Allies: []string{"Spain"}})
	c.Goals = []entity.Goal{{ID: "g-1", Description: "Amass 20000 gold", Kind: entity.GoalEconomic, Target: 20000, Progress: 50}}
	return c
}

func TestSaveDoc_bson往返(t *testing.T) {
	c := sampleCampaign()
	// bson 时间精度是毫秒
	now := time.Date(1807, 7, 7, 12, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(model.CampaignToDoc(c, "tilsit", now))
	require.NoError(t, err)

	id, err := bson.Raw(raw).LookupErr("_id")
	require.NoError(t, err)
	require.Equal(t, "tilsit", id.StringValue())

	var doc model.SaveDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got, err := model.DocToCampaign(doc)
	require.NoError(t, err)
	require.Equal(t, c.Resources, got.Resources)
	require.Equal(t, c.CurrentEventID, got.CurrentEventID)
	require.Equal(t, c.Goals, got.Goals)
	require.Equal(t, c.Turn, got.Turn)
	require.True(t, now.Equal(doc.SavedAt))
}

func TestListProjection_字段都在文档里(t *testing.T) {
	raw, err := bson.Marshal(model.CampaignToDoc(sampleCampaign(), "tilsit", time.Now()))
	require.NoError(t, err)
	for key := range listProjection {
		if _, err := bson.Raw(raw).LookupErr(key); err != nil {
			t.Fatalf("投影字段 %q 不在存档文档里: %v", key, err)
		}
	}

	var doc model.SaveDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	info := docToInfo(doc)
	require.Equal(t, "tilsit", info.Slot)
	require.Equal(t, "c-8", info.CampaignID)
	require.Equal(t, 3, info.Turn)
	require.Equal(t, doc.CurrentEvent, info.EventID)
}

func TestSaveRepo_没有集合时返回基础设施错误(t *testing.T) {
	r := NewSaveRepo(nil, "")
	ctx := context.Background()

	err := r.Save(ctx, "default", sampleCampaign())
	require.True(t, errors.Is(err, errNilCollection))
	require.Equal(t, errs.KindInfra, errs.KindOf(err))

	_, err = r.Load(ctx, "default")
	require.True(t, errors.Is(err, errNilCollection))
	_, err = r.List(ctx)
	require.True(t, errors.Is(err, errNilCollection))
	require.True(t, errors.Is(r.Delete(ctx, "default"), errNilCollection))
}
