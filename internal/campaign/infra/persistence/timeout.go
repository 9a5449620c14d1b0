package persistence

import (
	"context"
	"time"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/service/port"
)

// timeoutRepo 给每次存读档加上超时，远端存储卡住时不会把回合循环一起卡死。
type timeoutRepo struct {
	next    port.SaveRepository
	timeout time.Duration
}

// WithTimeout d<=0 时原样返回。
func WithTimeout(next port.SaveRepository, d time.Duration) port.SaveRepository {
	if d <= 0 {
		return next
	}
	return &timeoutRepo{next: next, timeout: d}
}

func (r *timeoutRepo) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Save(ctx, slot, c)
}

func (r *timeoutRepo) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Load(ctx, slot)
}

func (r *timeoutRepo) List(ctx context.Context) ([]port.SaveInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.List(ctx)
}

func (r *timeoutRepo) Delete(ctx context.Context, slot string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Delete(ctx, slot)
}
