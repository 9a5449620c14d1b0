package errx

// 系统类错误码：存储、配置、内容表这类“不是玩家操作导致”的故障。
// 玩法相关的业务码（非法选项、战役已结束等）由 internal/campaign/app 自己定义。

const (
	// CodeInternal 兜底。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 存档后端不可用（文件系统、sqlite、mysql、mongodb）。
	CodeUnavailable Code = "STORAGE_UNAVAILABLE"
	// CodeTimeout 存档读写超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeBadConfig 配置或静态内容表不合法。
	CodeBadConfig Code = "BAD_CONFIG"
	// CodeReqParamError 玩家输入无法解析。
	CodeReqParamError Code = "REQ_PARAM_ERROR"
)

var (
	ErrInternal    = NewSys(CodeInternal, "internal error")
	ErrUnavailable = NewSys(CodeUnavailable, "save storage unavailable")
	ErrTimeout     = NewSys(CodeTimeout, "save storage timed out")
	ErrBadConfig   = NewSys(CodeBadConfig, "invalid configuration")
	ErrReqParamERR = NewBiz(CodeReqParamError, "invalid input")
)
