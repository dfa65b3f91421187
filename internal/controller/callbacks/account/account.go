package account

import (
	"context"
	"errors"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleLoginStart начинает диалог привязки аккаунта
func HandleLoginStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		_, err := h.AccountService.Get(ctx, hc.User.ID)
		switch {
		case err == nil:
			hc.AnswerAlert("ℹ️ Аккаунт уже привязан. Чтобы сменить его, сначала выйдите.")
			return
		case !errors.Is(err, service.ErrAccountNotLinked):
			common.HandleError(hc, err, "login_start")
			return
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateLoginSchoolQuery))

		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(callbacktypes.BackToMain)).Build()
		if err := hc.ShowText(common.LoginSchoolPrompt, kb); err != nil {
			h.Logger.Error("Failed to show login prompt", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleLoginSchool запоминает выбранную школу (login_school:2)
func HandleLoginSchool(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if h.StateManager.GetState(hc.TelegramID) != callbacktypes.UserState(state.StateLoginPickSchool) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
			return
		}

		parts, err := common.SplitCallback(callback.Data, callbacktypes.LoginSchool, 1)
		if err != nil {
			common.HandleError(hc, err, "parse_login_school")
			return
		}
		idx, err := common.ParseIntArg(parts[0])
		if err != nil {
			common.HandleError(hc, err, "parse_login_school")
			return
		}

		raw, _ := hc.GetData(state.DataSchools)
		schools, _ := raw.([]model.School)
		if idx < 0 || int(idx) >= len(schools) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
			return
		}
		school := schools[idx]

		hc.SetData(state.DataSchool, school)
		hc.SetState(callbacktypes.UserState(state.StateLoginUsername))

		h.Logger.Info("School selected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("school", school.LoginName),
			zap.String("server", school.Server))

		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(callbacktypes.BackToMain)).Build()
		if err := hc.ShowText(common.FormatUsernamePrompt(school), kb); err != nil {
			h.Logger.Error("Failed to show username prompt", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleLogoutAsk спрашивает подтверждение отвязки
func HandleLogoutAsk(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text, kb := common.BuildLogoutConfirm(hc.Account)
		if err := hc.ShowText(text, kb); err != nil {
			h.Logger.Error("Failed to show logout confirm", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleLogoutConfirm отвязывает аккаунт и возвращает в меню
func HandleLogoutConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.AccountService.Unlink(ctx, hc.User.ID); err != nil {
			common.HandleError(hc, err, "unlink_account")
			return
		}

		h.Logger.Info("Account unlinked via menu", zap.Int64("telegram_id", hc.TelegramID))

		text, kb := common.BuildMainMenu(hc.User, nil, h.TimetableService.CurrentWeek())
		if err := hc.ShowText(text, kb); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("🚪 Аккаунт отвязан")
	})
}
