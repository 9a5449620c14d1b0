package errx

import (
	"errors"
	"fmt"
	"runtime"
)

// Code 是错误语义的稳定标识，CLI 层按它决定给玩家看的提示。
type Code string

type kind uint8

const (
	kindBiz kind = iota
	kindSys
)

// Reason 只暴露 reason code，便于各层自定义枚举。
type Reason interface {
	ReasonCode() string
}

// Error 是战役内通用的错误模型：
// - code/msg：玩家可见的语义
// - data：上下文（事件 id、存档槽位等），每次派生都会复制
// - cause：底层错误，只用于排障
// - stack：系统类错误第一次挂 cause 时捕获，业务类错误从不捕获
type Error struct {
	code  Code
	msg   string
	data  map[string]any
	cause error
	stack []uintptr
	kind  kind
}

// NewBiz 创建业务类错误（非法选项、存档不存在等），不带栈。
func NewBiz(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindBiz}
}

// NewSys 创建系统类错误（存储不可用等）。
func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindSys}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.msg == "" && e.cause == nil:
		return string(e.code)
	case e.msg == "":
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	case e.cause == nil:
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	default:
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 只比较 code，msg/data/cause 不参与。
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string {
	return string(e.Code())
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// IsBiz 表示这是一次“玩家操作被拒绝”，而不是系统故障。
func (e *Error) IsBiz() bool {
	return e != nil && e.kind == kindBiz
}

// Data 返回拷贝。
func (e *Error) Data() map[string]any {
	if e == nil || e.data == nil {
		return nil
	}
	return cloneAnyMap(e.data)
}

// Reason 读取 data["reason"]。
func (e *Error) Reason() string {
	if e == nil || e.data == nil {
		return ""
	}
	s, _ := e.data["reason"].(string)
	return s
}

func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	return cloneStack(e.stack)
}

func (e *Error) derive() *Error {
	return &Error{
		code:  e.code,
		msg:   e.msg,
		data:  cloneAnyMap(e.data),
		cause: e.cause,
		stack: cloneStack(e.stack),
		kind:  e.kind,
	}
}

func (e *Error) WithData(key string, value any) *Error {
	next := e.derive()
	if next.data == nil {
		next.data = make(map[string]any, 1)
	}
	next.data[key] = value
	return next
}

func (e *Error) WithDataMap(data map[string]any) *Error {
	next := e.derive()
	if len(data) == 0 {
		return next
	}
	if next.data == nil {
		next.data = make(map[string]any, len(data))
	}
	for k, v := range data {
		next.data[k] = v
	}
	return next
}

// WithReason 等价于 WithData("reason", reason.ReasonCode())。
func (e *Error) WithReason(reason Reason) *Error {
	if reason == nil {
		return e.WithData("reason", "")
	}
	return e.WithData("reason", reason.ReasonCode())
}

// WithMsg 替换玩家可见的提示，code 不变。
func (e *Error) WithMsg(msg string) *Error {
	next := e.derive()
	next.msg = msg
	return next
}

func (e *Error) WithCause(cause error) *Error {
	next := e.derive()
	next.cause = cause
	// 系统错误只在链路上第一次出现时抓栈，下层已经抓过就不再重复。
	if next.kind == kindSys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

// CodeOf 沿错误链找到第一个 *Error 的 code，找不到返回空串。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ""
}

// IsBiz 判断错误链上第一个 *Error 是否为业务类错误。
func IsBiz(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.IsBiz()
	}
	return false
}

func cloneAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneStack(in []uintptr) []uintptr {
	if len(in) == 0 {
		return nil
	}
	out := make([]uintptr, len(in))
	copy(out, in)
	return out
}

func captureStack(skip int) []uintptr {
	const maxDepth = 64
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	const maxDepth = 32
	for i := 0; i < maxDepth && err != nil; i++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
