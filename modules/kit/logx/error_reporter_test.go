package logx

import (
	"context"
	"errors"
	"testing"

	"NapoleonCampaign/modules/kit/errx"
	"NapoleonCampaign/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_提取语义与栈(t *testing.T) {
	e := errx.NewSys("STORAGE_UNAVAILABLE", "cannot write save").
		WithData("slot", "autosave").
		WithCause(errors.New("disk full"))

	meta := BuildErrorLog(e)
	if meta.Code != "STORAGE_UNAVAILABLE" || meta.Msg == "" {
		t.Fatalf("期望 code/msg 非空, got=%+v", meta)
	}
	if meta.Data["slot"] != "autosave" {
		t.Fatalf("期望 data 带 slot, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 cause 链非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望带发生处栈 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportSysError_带trace_id(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := tracex.WithTraceID(context.Background(), "campaign-1")

	ReportSysError(ctx, l, NewSysLog("save campaign", errx.ErrUnavailable.WithCause(errors.New("boom"))))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志, got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != "campaign-1" || fields["err_type"] != "sys" {
		t.Fatalf("期望 trace_id/err_type 字段, got=%v", fields)
	}
}

func TestReportCommand_按结果分级(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core))

	ReportCommand(context.Background(), l, "choose", "", false)
	ReportCommand(context.Background(), l, "choose", "CAMPAIGN_INVALID_CHOICE", true)
	ReportCommand(context.Background(), l, "save", "STORAGE_UNAVAILABLE", false)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("期望 3 条日志, got=%d", len(entries))
	}
	want := []string{"debug", "info", "warn"}
	for i, e := range entries {
		if e.Level.String() != want[i] {
			t.Fatalf("第 %d 条期望 %s, got=%s", i, want[i], e.Level)
		}
	}
}
