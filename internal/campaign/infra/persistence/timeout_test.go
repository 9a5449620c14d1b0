package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/infra/persistence/memory"
	"NapoleonCampaign/internal/campaign/service/port"
)

type slowRepo struct {
	port.SaveRepository
}

func (slowRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout_超时返回(t *testing.T) {
	r := WithTimeout(slowRepo{}, 20*time.Millisecond)
	_, err := r.Load(context.Background(), "default")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("期望超时, got=%v", err)
	}
}

func TestWithTimeout_零值不包装(t *testing.T) {
	inner := memory.NewSaveRepo()
	if r := WithTimeout(inner, 0); r != port.SaveRepository(inner) {
		t.Fatalf("期望原样返回")
	}
}
