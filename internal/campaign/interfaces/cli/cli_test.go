package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"NapoleonCampaign/internal/campaign/app"
	"NapoleonCampaign/internal/campaign/infra/persistence/memory"
	"NapoleonCampaign/internal/shared/config"
)

func quietTunables() config.CampaignConfig {
	c := config.Default().Campaign
	c.RandomEventChance = 0
	c.Autosave = false
	return c
}

func newService(repo app.SaveRepository) *app.CampaignService {
	return app.NewCampaignService(repo, nil, quietTunables, rand.New(rand.NewSource(11)),
		app.WithIDGenerator(func() (string, error) { return "c-cli", nil }),
		app.WithGoalIDs(func() string { return "g-cli" }),
	)
}

func run(t *testing.T, repo app.SaveRepository, input ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	err := New(newService(repo), nil, in, &out, "default").Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestRun_主菜单非法输入后重新提示(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "7", "hello", "4")
	require.Equal(t, 2, strings.Count(out, "Please enter a number between 1 and 4."))
	require.Contains(t, out, "Thank you for playing")
}

func TestRun_输入结束即退出(t *testing.T) {
	var out bytes.Buffer
	err := New(newService(memory.NewSaveRepo()), nil, strings.NewReader(""), &out, "").Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "NAPOLEON'S CAMPAIGN")
}

func TestRun_说明页(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "3", "4")
	require.Contains(t, out, "INSTRUCTIONS")
	require.Contains(t, out, "envoy <nation>")
}

func TestRun_新游戏非法选项不结束循环(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "1", "9", "march on Vienna", "0", "quit")
	require.Contains(t, out, "The Italian Campaign")
	require.Contains(t, out, "Please choose a number between 1 and 3.")
	require.Contains(t, out, "Unknown command")
	require.Contains(t, out, "CAMPAIGN ABANDONED")
}

func TestRun_选择推进到下一事件(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "1", "2", "quit")
	require.Contains(t, out, "Build fortifications")
	require.Contains(t, out, "Austrian Invasion")
	require.Contains(t, out, "End of spring")
}

func TestRun_存档后读档回到同一事件(t *testing.T) {
	repo := memory.NewSaveRepo()
	out := run(t, repo, "1", "2", "save", "save slot two", "save campaign_b", "quit")
	require.Contains(t, out, `Game saved to slot "default".`)
	require.Contains(t, out, "save slot names may only use")
	require.Contains(t, out, `Game saved to slot "campaign_b".`)

	out = run(t, repo, "2", "", "status", "quit")
	require.Contains(t, out, `Campaign loaded from slot "default".`)
	require.Contains(t, out, "Austrian Invasion")
	require.Contains(t, out, "campaign_b")
}

func TestRun_读取不存在的存档(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "2", "nothing_here", "4")
	require.Contains(t, out, `No saved game found in slot "nothing_here".`)
	require.Contains(t, out, "Thank you for playing")
}

func TestRun_读档提示输入quit直接退出(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "2", "quit")
	require.Contains(t, out, "Thank you for playing")
	require.NotContains(t, out, "No saved game found")
}

func TestRun_删除存档槽位(t *testing.T) {
	repo := memory.NewSaveRepo()
	out := run(t, repo, "1", "save old_run", "delete old_run", "delete old_run", "delete ../x", "quit")
	require.Contains(t, out, `Save slot "old_run" deleted.`)
	require.Contains(t, out, `No saved game found in slot "old_run".`)
	require.Contains(t, out, "save slot names may only use")

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRun_ctx取消时不必等回车(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out bytes.Buffer
	cli := New(newService(memory.NewSaveRepo()), nil, pr, &out, "default")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx) }()

	// 写入返回说明读协程已经取走这一行，之后输入流一直阻塞。
	_, err := pw.Write([]byte("1\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("ctx 取消后 Run 没有返回")
	}
}

func TestRun_使节与目标命令(t *testing.T) {
	out := run(t, memory.NewSaveRepo(), "1", "envoy Atlantis", "envoy", "envoy Spain", "goal", "goal Amass 20000 gold", "goals", "help", "quit")
	require.Contains(t, out, `Unknown nation "Atlantis"`)
	require.Contains(t, out, "Your envoy to Spain")
	require.Contains(t, out, "describe the goal in a few words")
	require.Contains(t, out, "Goal g-cli added (economic")
	require.Contains(t, out, "Amass 20000 gold")
	require.Contains(t, out, "Commands:")
}

func TestRun_战役结束后回到主菜单(t *testing.T) {
	repo := memory.NewSaveRepo()
	svc := newService(repo)
	camp, err := svc.NewCampaign(context.Background())
	require.NoError(t, err)
	camp.CurrentEventID = "final_defeat_1814"
	require.NoError(t, svc.Save(context.Background(), "default", camp))

	out := run(t, repo, "2", "", "1", "4")
	require.Contains(t, out, "GAME OVER")
	require.Contains(t, out, "DEFEAT: Defeat")
	require.Contains(t, out, "Historical accuracy")
	require.Contains(t, out, "Thank you for playing")
}
