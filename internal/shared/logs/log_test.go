package logs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	glogger "gorm.io/gorm/logger"

	"NapoleonCampaign/internal/shared/config"
	"NapoleonCampaign/modules/kit/tracex"
)

func TestInit_写入文件(t *testing.T) {
	path := filepath.Join(t.TempDir(), "napoleon.log")
	if err := Init("napoleon", config.LogConfig{FileDir: path, Level: "debug"}); err != nil {
		t.Fatalf("Init err=%v", err)
	}
	t.Cleanup(func() { Replace(nil) })

	Info("campaign started", zap.String("slot", "default"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读日志文件失败 err=%v", err)
	}
	if len(data) == 0 {
		t.Fatalf("期望日志文件非空")
	}
}

func TestGormLogger_错误带trace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Replace(zap.New(core))
	t.Cleanup(func() { Replace(nil) })

	gl := NewGormLogger(glogger.Warn, 200*time.Millisecond)
	ctx := tracex.WithTraceID(context.Background(), "t-9")
	gl.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	gl.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, glogger.ErrRecordNotFound)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望只记录 1 条错误（RecordNotFound 忽略）, got=%d", len(entries))
	}
	if entries[0].ContextMap()["trace_id"] != "t-9" {
		t.Fatalf("期望带 trace_id, got=%v", entries[0].ContextMap())
	}
}
