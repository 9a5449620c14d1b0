package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// trace_id 标识一局游戏（从开新战役/读档到退出），span_id 标识一次玩家命令。

type traceIDKey struct{}
type spanIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(traceIDKey{}).(string)
	return s, ok && s != ""
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(spanIDKey{}).(string)
	return s, ok && s != ""
}

// NewTraceID 生成 8 字节随机 id（hex）。
func NewTraceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}

// EnsureTraceID ctx 上没有 trace_id 时补一个。
func EnsureTraceID(ctx context.Context) context.Context {
	if _, ok := TraceIDFrom(ctx); ok {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}
