package service

import (
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
)

// Resolver 把选项的后果落到状态上，返回下一个事件 id 或终局标记。
// 选项下标在进入 Resolver 之前已经校验过。
type Resolver struct{}

// Apply 只处理资源部分。
func (Resolver) Apply(res *domain.ResourceState, c domain.Choice) string {
	res.ApplyConsequence(c.Consequence)
	return c.Consequence.Next
}

// ApplyToCampaign 资源之外还处理特质、将领、宝物。
func (Resolver) ApplyToCampaign(c *entity.Campaign, q domain.Consequence) string {
	c.Resources.ApplyConsequence(q)
	c.AddTrait(q.AddTrait)
	c.AddGeneral(q.AddGeneral)
	c.AddArtifact(q.AddArtifact)
	c.TrackPeak()
	return q.Next
}
