package tracex

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("期望未设置 span_id")
	}
}

func TestEnsureTraceID_不覆盖已有值(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	first, ok := TraceIDFrom(ctx)
	if !ok || len(first) != 16 {
		t.Fatalf("期望生成 16 位 hex trace_id，got=%q", first)
	}
	ctx = EnsureTraceID(ctx)
	if again, _ := TraceIDFrom(ctx); again != first {
		t.Fatalf("期望保留原 trace_id，got=%q want=%q", again, first)
	}
}
