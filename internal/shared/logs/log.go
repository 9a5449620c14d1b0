package logs

import (
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"NapoleonCampaign/internal/shared/config"
)

var logger *zap.Logger = zap.NewNop()

// Init 按配置构建全局 logger：
// - console：stderr 彩色输出，cfg.Console 打开时才启用（stdout 留给游戏画面）
// - file：lumberjack 切割的 JSON 文件，cfg.FileDir 非空时启用
// 两路都关闭时是 Nop。
func Init(appName string, cfg config.LogConfig) error {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	atomicLevel := zap.NewAtomicLevelAt(lvl)

	//    2026-01-28T10:00:00 INFO  napoleon  turn resolved  campaign_service.go:120
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cores := make([]zapcore.Core, 0, 2)
	if cfg.Console {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), atomicLevel))
	}
	if cfg.FileDir != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FileDir,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		// 不把 ANSI 颜色写进文件。
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), atomicLevel))
	}
	if len(cores) == 0 {
		Replace(zap.NewNop())
		return nil
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	Replace(zap.New(zapcore.NewTee(cores...), opts...).Named(appName))
	return nil
}

// Replace 替换全局 logger，旧的先刷盘。
func Replace(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	if logger != nil {
		_ = logger.Sync()
	}
	logger = l
}

// L 返回全局 logger，交给 logx.NewZapLogger 做依赖注入。
func L() *zap.Logger {
	return logger
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func Debug(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Debug(msg, fields...)
	}
}

// Info 示例：Info("campaign loaded", zap.String("slot", slot))
func Info(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Error(msg, fields...)
	}
}

// Fatal 输出后直接 os.Exit(1)，只在 main 里用。
func Fatal(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Fatal(msg, fields...)
	}
}
