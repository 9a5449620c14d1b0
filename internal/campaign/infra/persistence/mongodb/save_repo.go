package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/errs"
	"NapoleonCampaign/internal/campaign/infra/persistence/model"
	"NapoleonCampaign/internal/campaign/service/port"
)

const defaultSaveCollectionName = "campaign_saves"

const (
	OpSave   = "repo.mongodb.Save"
	OpLoad   = "repo.mongodb.Load"
	OpList   = "repo.mongodb.List"
	OpDelete = "repo.mongodb.Delete"
)

var errNilCollection = errors.New("mongodb save collection is nil")

// listProjection 列存档时只取摘要字段，键名对应 model.SaveDoc 的 bson tag。
var listProjection = bson.M{"_id": 1, "campaign_id": 1, "year": 1, "turn": 1, "current_event": 1, "saved_at": 1}

// SaveRepo 一个槽位一个文档，_id 就是槽位名。
type SaveRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewSaveRepo(db *mongo.Database, collection string) *SaveRepo {
	if db == nil {
		return &SaveRepo{now: time.Now}
	}
	if collection == "" {
		collection = defaultSaveCollectionName
	}
	return &SaveRepo{coll: db.Collection(collection), now: time.Now}
}

func (r *SaveRepo) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	meta := map[string]any{"slot": slot}
	if r == nil || r.coll == nil {
		return errs.Wrap(OpSave, errs.KindInfra, errNilCollection, meta)
	}
	if !port.ValidSlot(slot) {
		return errs.Wrap(OpSave, errs.KindBusiness, entity.ErrInvalidSlot, meta)
	}
	doc := model.CampaignToDoc(c, slot, r.now())
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": slot},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errs.Wrap(OpSave, errs.KindInfra, err, meta)
	}
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	meta := map[string]any{"slot": slot}
	if r == nil || r.coll == nil {
		return nil, errs.Wrap(OpLoad, errs.KindInfra, errNilCollection, meta)
	}
	var doc model.SaveDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": slot}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, entity.ErrSaveNotFound
	case err != nil:
		return nil, errs.Wrap(OpLoad, errs.KindInfra, err, meta)
	}
	c, err := model.DocToCampaign(doc)
	if err != nil {
		return nil, errs.Wrap(OpLoad, errs.KindBusiness, err, meta)
	}
	return c, nil
}

func (r *SaveRepo) List(ctx context.Context) ([]port.SaveInfo, error) {
	if r == nil || r.coll == nil {
		return nil, errs.Wrap(OpList, errs.KindInfra, errNilCollection, nil)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "saved_at", Value: -1}}).
		SetProjection(listProjection)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(OpList, errs.KindInfra, err, nil)
	}
	var docs []model.SaveDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(OpList, errs.KindInfra, err, nil)
	}
	out := make([]port.SaveInfo, 0, len(docs))
	for _, d := range docs {
		out = append(out, docToInfo(d))
	}
	return out, nil
}

func (r *SaveRepo) Delete(ctx context.Context, slot string) error {
	if r == nil || r.coll == nil {
		return errs.Wrap(OpDelete, errs.KindInfra, errNilCollection, nil)
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": slot})
	if err != nil {
		return errs.Wrap(OpDelete, errs.KindInfra, err, map[string]any{"slot": slot})
	}
	if res.DeletedCount == 0 {
		return entity.ErrSaveNotFound
	}
	return nil
}

func docToInfo(d model.SaveDoc) port.SaveInfo {
	return port.SaveInfo{
		Slot:       d.Slot,
		CampaignID: d.CampaignID,
		Year:       d.Year,
		Turn:       d.Turn,
		EventID:    d.CurrentEvent,
		SavedAt:    d.SavedAt,
	}
}
