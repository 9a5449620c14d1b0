package logs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"

	"NapoleonCampaign/modules/kit/tracex"
)

type GormLogger struct {
	level         glogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger 把 gorm 的日志接到全局 zap logger。
func NewGormLogger(level glogger.LogLevel, slowThreshold time.Duration) glogger.Interface {
	return &GormLogger{
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Info {
		Info("gorm: "+msg, withTrace(ctx, zap.Any("data", data))...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Warn {
		Warn("gorm: "+msg, withTrace(ctx, zap.Any("data", data))...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Error {
		Error("gorm: "+msg, withTrace(ctx, zap.Any("data", data))...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= glogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := withTrace(ctx,
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)

	switch {
	case err != nil && !errors.Is(err, glogger.ErrRecordNotFound):
		fields = append(fields, zap.Error(err))
		Error("gorm trace error", fields...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		Warn("gorm slow query", fields...)
	default:
		if l.level >= glogger.Info {
			Debug("gorm trace", fields...)
		}
	}
}

func withTrace(ctx context.Context, fields ...zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		fields = append(fields, zap.String("trace_id", tid))
	}
	return fields
}
