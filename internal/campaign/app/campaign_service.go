package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/internal/campaign/entity/domain"
	"NapoleonCampaign/internal/campaign/service"
	"NapoleonCampaign/internal/campaign/service/port"
	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/internal/shared/gameconfig/condition"
	"NapoleonCampaign/internal/shared/gameconfig/event"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
	"NapoleonCampaign/internal/shared/gameconfig/roguelike"
	"NapoleonCampaign/internal/shared/utils"
	"NapoleonCampaign/modules/kit/logx"
)

// AutosaveSlot 自动存档槽位。
const AutosaveSlot = "autosave"

type CampaignService struct {
	repo      SaveRepository
	log       Logger
	tunables  Tunables
	rng       *rand.Rand
	newID     IDGenerator
	newGoalID func() string
	resolver  service.Resolver
}

type Option func(*CampaignService)

func WithIDGenerator(f IDGenerator) Option {
	return func(s *CampaignService) { s.newID = f }
}

func WithGoalIDs(f func() string) Option {
	return func(s *CampaignService) { s.newGoalID = f }
}

// NewCampaignService rng 由调用方按种子创建，同一种子同一输入序列结果可复现。
func NewCampaignService(repo SaveRepository, log Logger, tunables Tunables, rng *rand.Rand, opts ...Option) *CampaignService {
	if log == nil {
		log = logx.Nop()
	}
	if tunables == nil {
		tunables = config.Campaign
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &CampaignService{
		repo:      repo,
		log:       log,
		tunables:  tunables,
		rng:       rng,
		newID:     utils.NextCampaignID,
		newGoalID: service.NewGoalID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewCampaign 开新局：初始资源、停在第一个事件。
func (s *CampaignService) NewCampaign(ctx context.Context) (*entity.Campaign, error) {
	id, err := s.newID()
	if err != nil {
		return nil, ErrInternalServer.WithReason(ReasonIDGenerate).WithCause(err)
	}
	start := event.Start()
	ev, ok := event.Get(start)
	if !ok {
		return nil, ErrInternalServer.WithReason(ReasonEventMissing).WithData("event_id", start)
	}
	c := entity.NewCampaign(id, start, ev.Year, domain.NewResourceState(nation.InitialRelations()))
	c.Visit(start)

	s.log.WithContext(ctx).Info("campaign started", zap.String("campaign_id", id), zap.String("event_id", start))
	return c, nil
}

// Load 读档。读出来的战役如果停在战斗中或主菜单，统一回到事件阶段。
func (s *CampaignService) Load(ctx context.Context, slot string) (*entity.Campaign, error) {
	if !port.ValidSlot(slot) {
		return nil, ErrInvalidSlot.WithData("slot", slot)
	}
	c, err := s.repo.Load(ctx, slot)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrSaveNotFound):
			return nil, ErrSaveNotFound.WithData("slot", slot).WithCause(err)
		case errors.Is(err, entity.ErrCorruptSave):
			return nil, ErrCorruptSave.WithData("slot", slot).WithCause(err)
		default:
			return nil, ErrUnavailable.WithReason(ReasonSaveReadFail).WithData("slot", slot).WithCause(err)
		}
	}
	if c.Phase == entity.PhaseInBattle || c.Phase == entity.PhaseMainMenu {
		c.Phase = entity.PhaseInEvent
	}
	s.log.WithContext(ctx).Info("campaign loaded",
		zap.String("campaign_id", c.ID), zap.String("slot", slot), zap.String("event_id", c.ActiveEventID()))
	return c, nil
}

func (s *CampaignService) Save(ctx context.Context, slot string, c *entity.Campaign) error {
	if !port.ValidSlot(slot) {
		return ErrInvalidSlot.WithData("slot", slot)
	}
	if err := s.repo.Save(ctx, slot, c); err != nil {
		return ErrUnavailable.WithReason(ReasonSaveWriteFail).WithData("slot", slot).WithCause(err)
	}
	s.log.WithContext(ctx).Info("campaign saved", zap.String("campaign_id", c.ID), zap.String("slot", slot), zap.Int("turn", c.Turn))
	return nil
}

// DeleteSave 删除一个存档槽位。
func (s *CampaignService) DeleteSave(ctx context.Context, slot string) error {
	if !port.ValidSlot(slot) {
		return ErrInvalidSlot.WithData("slot", slot)
	}
	if err := s.repo.Delete(ctx, slot); err != nil {
		if errors.Is(err, entity.ErrSaveNotFound) {
			return ErrSaveNotFound.WithData("slot", slot).WithCause(err)
		}
		return ErrUnavailable.WithReason(ReasonSaveDeleteFail).WithData("slot", slot).WithCause(err)
	}
	s.log.WithContext(ctx).Info("save deleted", zap.String("slot", slot))
	return nil
}

func (s *CampaignService) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, ErrUnavailable.WithReason(ReasonSaveReadFail).WithCause(err)
	}
	return list, nil
}

// CurrentEvent 当前要回答的事件（随机事件优先）。
func (s *CampaignService) CurrentEvent(c *entity.Campaign) (EventView, error) {
	if c.PendingRandomEventID != "" {
		ev, ok := roguelike.RandomEvent(c.PendingRandomEventID)
		if !ok {
			return EventView{}, ErrInternalServer.WithReason(ReasonEventMissing).WithData("event_id", c.PendingRandomEventID)
		}
		return EventView{ID: ev.ID, Year: c.Year, Title: ev.Title, Description: ev.Description, Choices: domain.ChoicesFrom(ev), Random: true}, nil
	}
	ev, ok := event.Get(c.CurrentEventID)
	if !ok {
		return EventView{}, ErrInternalServer.WithReason(ReasonEventMissing).WithData("event_id", c.CurrentEventID)
	}
	return EventView{ID: ev.ID, Year: ev.Year, Title: ev.Title, Description: ev.Description, Choices: domain.ChoicesFrom(ev)}, nil
}

// Choose 回答当前事件，n 从 1 开始。
// 历史事件：结算后果（含战斗）→ 回合结算 → 胜负判定 → 进入下一事件 → 目标 → 随机事件 → 自动存档。
// 随机事件：只结算后果和胜负，不推进回合。
func (s *CampaignService) Choose(ctx context.Context, c *entity.Campaign, n int) (*TurnOutcome, error) {
	if c == nil || c.Phase.Terminal() {
		return nil, ErrFinished
	}
	cfg := s.tunables()
	if c.PendingRandomEventID != "" {
		return s.chooseRandom(ctx, c, n, cfg)
	}

	ev, ok := event.Get(c.CurrentEventID)
	if !ok {
		return nil, ErrInternalServer.WithReason(ReasonEventMissing).WithData("event_id", c.CurrentEventID)
	}
	if n < 1 || n > len(ev.Choices) {
		return nil, ErrInvalidChoice.WithReason(ReasonChoiceOutOfRange).WithData("choice", n).WithData("max", len(ev.Choices))
	}
	choice := domain.ChoiceFrom(ev.Choices[n-1])
	out := &TurnOutcome{EventID: ev.ID, Choice: choice.Text}

	var next string
	if choice.Battle != nil {
		c.Phase = entity.PhaseInBattle
		result := service.NewBattle(cfg.Battle).Resolve(service.BattleInputFor(c, *choice.Battle), s.rng)
		out.Battle = &result
		next = s.applyBattle(c, choice, result)
		c.Phase = entity.PhaseInEvent
	} else {
		next = s.resolver.ApplyToCampaign(c, choice.Consequence)
	}

	c.Turn++
	rep := service.AdvanceTurn(c)
	out.Report = &rep

	if next == "" {
		next = event.NextInSequence(ev.ID)
	}
	out.NextEventID = next
	s.advance(c, next)

	out.CompletedGoals = service.UpdateGoals(c)
	if !c.Phase.Terminal() {
		if re, ok := service.RollRandomEvent(cfg.RandomEventChance, s.rng); ok {
			c.PendingRandomEventID = re.ID
			out.PendingRandomEventID = re.ID
		}
	}
	out.Finished = c.Phase.Terminal()
	out.Outcome = c.Outcome

	s.log.WithContext(ctx).Debug("turn resolved",
		zap.String("event_id", ev.ID),
		zap.Int("choice", n),
		zap.String("next", next),
		zap.Int("turn", c.Turn),
		zap.Int("troops", c.Resources.Troops),
		zap.Int("gold", c.Resources.Gold),
		zap.Int("morale", c.Resources.Morale),
		zap.String("phase", string(c.Phase)),
	)
	if cfg.Autosave {
		out.AutosaveErr = s.autosave(ctx, c)
	}
	return out, nil
}

func (s *CampaignService) chooseRandom(ctx context.Context, c *entity.Campaign, n int, cfg config.CampaignConfig) (*TurnOutcome, error) {
	ev, ok := roguelike.RandomEvent(c.PendingRandomEventID)
	if !ok {
		missing := c.PendingRandomEventID
		c.PendingRandomEventID = ""
		return nil, ErrInternalServer.WithReason(ReasonEventMissing).WithData("event_id", missing)
	}
	if n < 1 || n > len(ev.Choices) {
		return nil, ErrInvalidChoice.WithReason(ReasonChoiceOutOfRange).WithData("choice", n).WithData("max", len(ev.Choices))
	}
	choice := domain.ChoiceFrom(ev.Choices[n-1])
	s.resolver.ApplyToCampaign(c, choice.Consequence)
	c.PendingRandomEventID = ""
	c.Stats.RandomEvents++

	if k, done := service.Evaluate(c); done {
		c.Finish(k)
	}
	out := &TurnOutcome{
		EventID:        ev.ID,
		Choice:         choice.Text,
		RandomEvent:    true,
		NextEventID:    c.CurrentEventID,
		CompletedGoals: service.UpdateGoals(c),
		Finished:       c.Phase.Terminal(),
		Outcome:        c.Outcome,
	}
	s.log.WithContext(ctx).Debug("random event resolved", zap.String("event_id", ev.ID), zap.Int("choice", n))
	if cfg.Autosave {
		out.AutosaveErr = s.autosave(ctx, c)
	}
	return out, nil
}

// applyBattle 先结算伤亡和士气；胜则执行选项后果，败则执行 OnDefeat（next 为空时沿用选项的 next）。
func (s *CampaignService) applyBattle(c *entity.Campaign, choice domain.Choice, r domain.BattleResult) string {
	c.Resources.AddScalars(-r.AttackerCasualties, 0, r.MoraleDelta)
	for _, g := range r.FallenGenerals {
		c.RemoveGeneral(g)
	}
	if r.Victory {
		c.Stats.BattlesWon++
		return s.resolver.ApplyToCampaign(c, choice.Consequence)
	}
	c.Stats.BattlesLost++
	if d := choice.Battle.OnDefeat; d != nil {
		if next := s.resolver.ApplyToCampaign(c, *d); next != "" {
			return next
		}
	}
	return choice.Consequence.Next
}

// advance 判定顺序：阈值战败 → 终局标记 → 进入下一事件后的胜利条件 → 事件链结束。
func (s *CampaignService) advance(c *entity.Campaign, next string) {
	if k, lost := service.CheckDefeat(c.Resources); lost {
		c.Finish(k)
		return
	}
	switch next {
	case event.Defeat:
		c.Finish(condition.ScriptedDefeat)
		return
	case event.Victory:
		c.Finish(condition.HistoricalVictory)
		return
	case "":
		if k, won := service.CheckVictory(c); won {
			c.Finish(k)
			return
		}
		c.Finish(service.EndOfChain(c))
		return
	}

	ne, ok := event.Get(next)
	if !ok {
		// 事件表加载时已校验 next，走到这里说明内容被改坏，按事件链结束处理。
		c.Finish(service.EndOfChain(c))
		return
	}
	c.CurrentEventID = ne.ID
	c.Visit(ne.ID)
	if ne.Year > c.Year {
		c.Year = ne.Year
	}
	if k, won := service.CheckVictory(c); won {
		c.Finish(k)
	}
}

func (s *CampaignService) autosave(ctx context.Context, c *entity.Campaign) error {
	if err := s.repo.Save(ctx, AutosaveSlot, c); err != nil {
		wrapped := ErrUnavailable.WithReason(ReasonAutosaveFail).WithData("slot", AutosaveSlot).WithCause(err)
		logx.ReportSysError(ctx, s.log, logx.NewSysLog("autosave", wrapped), zap.String("campaign_id", c.ID))
		return wrapped
	}
	return nil
}

// Envoy 派使节，不消耗回合。
func (s *CampaignService) Envoy(ctx context.Context, c *entity.Campaign, name string) (*service.EnvoyResult, error) {
	if c == nil || c.Phase.Terminal() {
		return nil, ErrFinished
	}
	name = strings.TrimSpace(name)
	if !s.nationAllowed(name) {
		return nil, ErrEnvoyRejected.WithReason(ReasonUnknownNation).WithData("nation", name)
	}
	res, rej := service.Envoy(c, name, s.rng)
	switch rej {
	case service.EnvoyUnknownNation:
		return nil, ErrEnvoyRejected.WithReason(ReasonUnknownNation).WithData("nation", name)
	case service.EnvoyNotEnoughGold:
		return nil, ErrEnvoyRejected.WithReason(ReasonNotEnoughGold).WithData("nation", res.Nation).WithData("cost", service.EnvoyCost)
	case service.EnvoyAlreadyAllied:
		return nil, ErrEnvoyRejected.WithReason(ReasonAlreadyAllied).WithData("nation", res.Nation)
	}

	s.resolver.ApplyToCampaign(c, res.Consequence)
	c.Stats.EnvoysSent++
	if res.Success {
		c.Stats.EnvoysSucceeded++
	}
	if k, done := service.Evaluate(c); done {
		c.Finish(k)
	}
	service.UpdateGoals(c)

	s.log.WithContext(ctx).Info("envoy sent",
		zap.String("nation", res.Nation),
		zap.Float64("chance", res.Chance),
		zap.Bool("success", res.Success),
	)
	return &res, nil
}

func (s *CampaignService) nationAllowed(name string) bool {
	allowed := s.tunables().Nations
	if len(allowed) == 0 {
		return true
	}
	for _, n := range allowed {
		if strings.EqualFold(strings.TrimSpace(n), name) {
			return true
		}
	}
	return false
}

// AddGoal 解析玩家描述的目标并立即计算一次进度。
func (s *CampaignService) AddGoal(c *entity.Campaign, desc string) (entity.Goal, error) {
	g, ok := service.ParseGoal(desc, c.Turn, s.newGoalID)
	if !ok {
		return entity.Goal{}, ErrInvalidGoal.WithReason(ReasonEmptyGoal)
	}
	g.Progress = service.GoalProgress(c, g)
	c.Goals = append(c.Goals, g)
	service.UpdateGoals(c)
	return c.Goals[len(c.Goals)-1], nil
}

// Exit 玩家主动退出；已经结束的战役保持原结局。
func (s *CampaignService) Exit(c *entity.Campaign) {
	if c != nil && !c.Phase.Terminal() {
		c.Phase = entity.PhaseExited
	}
}

func (s *CampaignService) Accuracy(c *entity.Campaign) float64 {
	return service.HistoricalAccuracy(c.Visited)
}
