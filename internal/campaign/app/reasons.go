package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 业务拒绝 reason，CLI 据此给出更具体的提示。
	ReasonChoiceOutOfRange = NewReason("CHOICE_OUT_OF_RANGE", "选项编号超出范围")
	ReasonUnknownNation    = NewReason("ENVOY_UNKNOWN_NATION", "没有这个国家")
	ReasonNotEnoughGold    = NewReason("ENVOY_NOT_ENOUGH_GOLD", "金币不足以派出使节")
	ReasonAlreadyAllied    = NewReason("ENVOY_ALREADY_ALLIED", "已经是盟友")
	ReasonEmptyGoal        = NewReason("GOAL_EMPTY", "目标描述为空")
)

var (
	// 技术错误 reason，用于日志与排障。
	ReasonSaveWriteFail  = NewReason("SAVE_WRITE_FAIL", "存档写入失败")
	ReasonSaveReadFail   = NewReason("SAVE_READ_FAIL", "存档读取失败")
	ReasonSaveDeleteFail = NewReason("SAVE_DELETE_FAIL", "存档删除失败")
	ReasonAutosaveFail   = NewReason("AUTOSAVE_FAIL", "自动存档失败")
	ReasonEventMissing   = NewReason("EVENT_MISSING", "事件表里找不到当前事件")
	ReasonIDGenerate     = NewReason("ID_GENERATE_FAIL", "战役 id 生成失败")
)
