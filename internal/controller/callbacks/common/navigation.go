package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		// Выход в меню прерывает незавершённый диалог
		hc.ClearState()

		acc, err := h.AccountService.Get(ctx, hc.User.ID)
		if err != nil && !errors.Is(err, service.ErrAccountNotLinked) {
			HandleError(hc, err, "back_to_main")
			return
		}

		text, kb := BuildMainMenu(hc.User, acc, h.TimetableService.CurrentWeek())
		if err := hc.ShowText(text, kb); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleNoop подтверждает нажатие на неактивную кнопку
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	AnswerCallback(ctx, b, callback.ID, "")
}
