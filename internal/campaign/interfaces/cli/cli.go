package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"NapoleonCampaign/internal/campaign/app"
	"NapoleonCampaign/internal/campaign/entity"
	"NapoleonCampaign/modules/kit/errx"
	"NapoleonCampaign/modules/kit/logx"
	"NapoleonCampaign/modules/kit/tracex"
)

// errQuit 玩家输入 quit 或输入流结束。
var errQuit = errors.New("quit")

// CLI 主菜单和回合循环。只有这一个协程读写 Campaign。
type CLI struct {
	svc  *app.CampaignService
	log  logx.Logger
	in   *bufio.Scanner
	out  io.Writer
	slot string

	// 读输入放在单独的协程里，阻塞在 Scan 时 ctx 取消也能退出。
	lines    chan string
	readOnce sync.Once
}

func New(svc *app.CampaignService, log logx.Logger, in io.Reader, out io.Writer, defaultSlot string) *CLI {
	if log == nil {
		log = logx.Nop()
	}
	if defaultSlot == "" {
		defaultSlot = "default"
	}
	return &CLI{svc: svc, log: log, in: bufio.NewScanner(in), out: out, slot: defaultSlot, lines: make(chan string)}
}

// Run 主菜单循环，直到玩家选择退出、输入结束或 ctx 取消。
func (c *CLI) Run(ctx context.Context) error {
	ctx = tracex.EnsureTraceID(ctx)
	c.startReader(ctx)
	c.print(renderBanner())
	for {
		if ctx.Err() != nil {
			return nil
		}
		c.print(renderMainMenu())
		line, ok := c.prompt(ctx, "Select an option (1-4): ")
		if !ok {
			return nil
		}
		var err error
		switch strings.ToLower(line) {
		case "1", "new":
			err = c.newCampaign(ctx)
		case "2", "load":
			err = c.loadCampaign(ctx)
		case "3", "help", "instructions":
			c.print(renderInstructions())
		case "4", "quit", "exit":
			c.print("Thank you for playing Napoleon's Campaign!\n")
			return nil
		default:
			c.print(warn.Render("Please enter a number between 1 and 4.") + "\n")
		}
		if errors.Is(err, errQuit) {
			c.print("Thank you for playing Napoleon's Campaign!\n")
			return nil
		}
	}
}

func (c *CLI) newCampaign(ctx context.Context) error {
	camp, err := c.svc.NewCampaign(ctx)
	if err != nil {
		c.reportError(ctx, "new", err)
		return nil
	}
	return c.play(ctx, camp)
}

func (c *CLI) loadCampaign(ctx context.Context) error {
	if list, err := c.svc.ListSaves(ctx); err == nil && len(list) > 0 {
		c.print(renderSaves(list))
	}
	line, ok := c.prompt(ctx, fmt.Sprintf("Slot to load [%s]: ", c.slot))
	if !ok || isQuit(line) {
		return errQuit
	}
	slot := line
	if slot == "" {
		slot = c.slot
	}
	camp, err := c.svc.Load(ctx, slot)
	if err != nil {
		c.reportError(ctx, "load", err)
		return nil
	}
	logx.ReportCommand(ctx, c.log, "load", "", false, zap.String("slot", slot))
	c.print(good.Render(fmt.Sprintf("Campaign loaded from slot %q.", slot)) + "\n")
	return c.play(ctx, camp)
}

// play 回合循环；战役结束后回到主菜单，quit/EOF 直接结束程序。
func (c *CLI) play(ctx context.Context, camp *entity.Campaign) error {
	ctx = tracex.WithSpanID(ctx, camp.ID)
	showStatus := true
	for !camp.Phase.Terminal() {
		if ctx.Err() != nil {
			c.svc.Exit(camp)
			return errQuit
		}
		view, err := c.svc.CurrentEvent(camp)
		if err != nil {
			c.reportError(ctx, "event", err)
			c.svc.Exit(camp)
			return nil
		}
		if showStatus {
			c.print(renderStatus(camp))
			c.print(renderEvent(view))
			showStatus = false
		}

		line, ok := c.prompt(ctx, "Your choice (number, or 'help'): ")
		if !ok {
			c.svc.Exit(camp)
			return errQuit
		}
		refresh, err := c.handle(ctx, camp, view, line)
		if errors.Is(err, errQuit) {
			return errQuit
		}
		showStatus = refresh
	}
	c.print(renderGameOver(camp, c.svc.Accuracy(camp)))
	return nil
}

// handle 执行一条命令，返回是否需要重新显示状态和事件。
func (c *CLI) handle(ctx context.Context, camp *entity.Campaign, view app.EventView, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		c.print(renderEvent(view))
		return false, nil
	}
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	if n, err := strconv.Atoi(cmd); err == nil {
		return c.choose(ctx, camp, n), nil
	}
	switch cmd {
	case "quit", "exit":
		c.svc.Exit(camp)
		logx.ReportCommand(ctx, c.log, "quit", "", false, zap.String("campaign_id", camp.ID))
		c.print(renderGameOver(camp, c.svc.Accuracy(camp)))
		return false, errQuit
	case "save":
		slot := c.slot
		if arg != "" {
			slot = arg
		}
		if err := c.svc.Save(ctx, slot, camp); err != nil {
			c.reportError(ctx, "save", err)
			return false, nil
		}
		logx.ReportCommand(ctx, c.log, "save", "", false, zap.String("slot", slot))
		c.print(good.Render(fmt.Sprintf("Game saved to slot %q.", slot)) + "\n")
	case "delete":
		if err := c.svc.DeleteSave(ctx, arg); err != nil {
			c.reportError(ctx, "delete", err)
			return false, nil
		}
		logx.ReportCommand(ctx, c.log, "delete", "", false, zap.String("slot", arg))
		c.print(good.Render(fmt.Sprintf("Save slot %q deleted.", arg)) + "\n")
	case "status":
		c.print(renderStatus(camp))
	case "envoy":
		res, err := c.svc.Envoy(ctx, camp, arg)
		if err != nil {
			c.reportError(ctx, "envoy", err)
			return false, nil
		}
		logx.ReportCommand(ctx, c.log, "envoy", "", false, zap.String("nation", res.Nation), zap.Bool("success", res.Success))
		c.print(renderEnvoy(res, camp))
		return camp.Phase.Terminal(), nil
	case "goal":
		g, err := c.svc.AddGoal(camp, arg)
		if err != nil {
			c.reportError(ctx, "goal", err)
			return false, nil
		}
		logx.ReportCommand(ctx, c.log, "goal", "", false, zap.String("goal_id", g.ID), zap.String("kind", string(g.Kind)))
		c.print(good.Render(fmt.Sprintf("Goal %s added (%s, %d%%).", g.ID, g.Kind, g.Progress)) + "\n")
	case "goals":
		c.print(renderGoals(camp.Goals))
	case "help", "?":
		c.print(renderHelp())
	default:
		c.reportError(ctx, "input", errx.ErrReqParamERR.WithData("input", line))
	}
	return false, nil
}

func (c *CLI) choose(ctx context.Context, camp *entity.Campaign, n int) bool {
	out, err := c.svc.Choose(ctx, camp, n)
	if err != nil {
		c.reportError(ctx, "choose", err)
		return false
	}
	logx.ReportCommand(ctx, c.log, "choose", "", false,
		zap.String("event_id", out.EventID), zap.Int("choice", n), zap.String("next", out.NextEventID))

	c.print(dim.Render("> "+out.Choice) + "\n")
	if out.Battle != nil {
		c.print(renderBattle(*out.Battle))
	}
	if out.Report != nil {
		c.print(renderTurnReport(*out.Report))
	}
	for _, g := range out.CompletedGoals {
		c.print(good.Render(fmt.Sprintf("Goal completed: %s", g.Description)) + "\n")
	}
	if out.AutosaveErr != nil {
		c.print(warn.Render("Autosave failed; your campaign continues. Try 'save' later.") + "\n")
	}
	return true
}

// reportError 业务拒绝记 INFO 并给出提示；系统错误记 ERROR，游戏继续。
func (c *CLI) reportError(ctx context.Context, command string, err error) {
	code := string(errx.CodeOf(err))
	biz := errx.IsBiz(err)
	logx.ReportCommand(ctx, c.log, command, code, biz)
	if biz {
		logx.ReportBiz(ctx, c.log, logx.NewBizLog(command, app.GetErrorReasonCode(err), err.Error()))
	} else {
		logx.ReportSysError(ctx, c.log, logx.NewSysLog(command, err))
	}
	c.print(bad.Render(userMessage(err)) + "\n")
}

func (c *CLI) startReader(ctx context.Context) {
	c.readOnce.Do(func() {
		go func() {
			defer close(c.lines)
			for c.in.Scan() {
				select {
				case c.lines <- c.in.Text():
				case <-ctx.Done():
					return
				}
			}
		}()
	})
}

// prompt 输入结束或 ctx 取消时返回 false。
func (c *CLI) prompt(ctx context.Context, p string) (string, bool) {
	c.print(p)
	select {
	case <-ctx.Done():
		c.print("\n")
		return "", false
	case line, ok := <-c.lines:
		if !ok {
			c.print("\n")
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

func isQuit(s string) bool {
	s = strings.ToLower(s)
	return s == "quit" || s == "exit"
}

func (c *CLI) print(s string) {
	_, _ = io.WriteString(c.out, s)
}
