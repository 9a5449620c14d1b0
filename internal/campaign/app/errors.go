package app

import (
	"errors"

	"NapoleonCampaign/modules/kit/errx"
)

// Code 应用层错误码，CLI 按它决定给玩家的提示。
type Code = errx.Code

const (
	CodeInvalidChoice  Code = "CAMPAIGN_INVALID_CHOICE"
	CodeSaveNotFound   Code = "CAMPAIGN_SAVE_NOT_FOUND"
	CodeCorruptSave    Code = "CAMPAIGN_CORRUPT_SAVE"
	CodeFinished       Code = "CAMPAIGN_FINISHED"
	CodeEnvoyRejected  Code = "CAMPAIGN_ENVOY_REJECTED"
	CodeInvalidGoal    Code = "CAMPAIGN_INVALID_GOAL"
	CodeInvalidSlot    Code = "CAMPAIGN_INVALID_SLOT"
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
)

type Error = errx.Error

// 哨兵错误：通过 WithData/WithReason/WithCause 派生，不要直接修改。
var (
	ErrInvalidChoice  = errx.NewBiz(CodeInvalidChoice, "that is not one of the available choices")
	ErrSaveNotFound   = errx.NewBiz(CodeSaveNotFound, "no saved campaign found")
	ErrCorruptSave    = errx.NewBiz(CodeCorruptSave, "the saved campaign is damaged and cannot be loaded")
	ErrFinished       = errx.NewBiz(CodeFinished, "the campaign is over")
	ErrEnvoyRejected  = errx.NewBiz(CodeEnvoyRejected, "the envoy cannot be sent")
	ErrInvalidGoal    = errx.NewBiz(CodeInvalidGoal, "describe the goal in a few words")
	ErrInvalidSlot    = errx.NewBiz(CodeInvalidSlot, "save slot names may only use letters, digits, - and _")
	ErrInternalServer = errx.ErrInternal
	ErrUnavailable    = errx.ErrUnavailable
)

// GetErrorReasonCode 取错误链上的 reason，没有时返回空串。
func GetErrorReasonCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason()
	}
	return ""
}
