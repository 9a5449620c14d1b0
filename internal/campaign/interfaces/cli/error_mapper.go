package cli

import (
	"errors"
	"fmt"

	"NapoleonCampaign/internal/campaign/app"
	"NapoleonCampaign/internal/campaign/service"
	"NapoleonCampaign/internal/shared/gameconfig/nation"
	"NapoleonCampaign/modules/kit/errx"
)

// userMessage 把错误翻译成给玩家看的一句话。
func userMessage(err error) string {
	var e *errx.Error
	if !errors.As(err, &e) {
		return "Something went wrong: " + err.Error()
	}
	data := e.Data()

	switch app.GetErrorReasonCode(err) {
	case app.ReasonChoiceOutOfRange.Code:
		return fmt.Sprintf("Please choose a number between 1 and %v.", data["max"])
	case app.ReasonUnknownNation.Code:
		return fmt.Sprintf("Unknown nation %q. Known nations: %s.", data["nation"], nationNames())
	case app.ReasonNotEnoughGold.Code:
		return fmt.Sprintf("An envoy costs %s gold.", num(service.EnvoyCost))
	case app.ReasonAlreadyAllied.Code:
		return fmt.Sprintf("%v is already your ally.", data["nation"])
	case app.ReasonSaveWriteFail.Code:
		return "The game could not be saved. Your campaign continues."
	case app.ReasonSaveReadFail.Code:
		return "The save could not be read right now."
	case app.ReasonSaveDeleteFail.Code:
		return "The save could not be deleted right now."
	}

	switch {
	case errors.Is(err, errx.ErrReqParamERR):
		return "Unknown command. Type 'help' for the list of commands."
	case errors.Is(err, app.ErrSaveNotFound):
		return fmt.Sprintf("No saved game found in slot %q.", data["slot"])
	case e.IsBiz():
		return e.Msg()
	default:
		return "Something went wrong: " + e.Msg()
	}
}

func nationNames() string {
	var out string
	for i, n := range nation.All() {
		if i > 0 {
			out += ", "
		}
		out += n.Name
	}
	return out
}
