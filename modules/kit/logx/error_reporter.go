package logx

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BizLog 玩家操作被拒绝（非法选项、存档不存在……）。
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog 系统故障（存档写失败……）。
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// ReportCommand 记录一次玩家命令：
// - code 为空：DEBUG（正常推进，量大）
// - 业务拒绝：INFO
// - 其他：WARN
func ReportCommand(ctx context.Context, l Logger, command string, code string, biz bool, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := []zap.Field{
		zap.String("log_type", "command"),
		zap.String("command", command),
	}
	if code != "" {
		base = append(base, zap.String("code", code))
	}
	base = append(base, fields...)
	withCtx := l.WithContext(ctx)
	switch {
	case code == "":
		withCtx.Debug("command", base...)
	case biz:
		withCtx.Info("command", base...)
	default:
		withCtx.Warn("command", base...)
	}
}

// ReportBiz 记录业务拒绝：INFO、err_type=biz、不带栈。
func ReportBiz(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	action := biz.Action
	if action == "" {
		action = "biz_reject"
	}
	base := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String("action", action),
	}
	msg := action
	if biz.Reason != "" {
		base = append(base, zap.String("reason", biz.Reason))
		msg = fmt.Sprintf("%s, reason:%s", msg, biz.Reason)
	}
	if biz.Message != "" {
		base = append(base, zap.String("biz_message", biz.Message))
		msg = fmt.Sprintf("%s, msg:%s", msg, biz.Message)
	}
	base = append(base, fields...)
	l.WithContext(ctx).Info(msg, base...)
}

// ReportSysError 记录系统错误：ERROR、err_type=sys，附带 cause 链和发生处栈。
func ReportSysError(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}
	meta := BuildErrorLog(sys.Err)
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
	}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin))
	}
	if meta.Stack != "" {
		base = append(base, zap.String("stack_origin", meta.Stack))
	}
	base = append(base, fields...)

	msg := fmt.Sprintf("%s, error:%s", action, meta.Error)
	if meta.Reason != "" {
		msg = fmt.Sprintf("%s, reason:%s, error:%s", action, meta.Reason, meta.Error)
	}
	l.WithContext(ctx).Error(msg, base...)
}
