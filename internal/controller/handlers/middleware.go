package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser проверяет что пользователь существует
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := h.userService.GetByTelegramID(ctx, telegramID)

	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}

	if user == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrUserNotFound))
		return nil, false
	}

	return user, true
}

// requireAccount проверяет что у пользователя привязан аккаунт WebUntis
func (h *Handlers) requireAccount(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, *model.Account, bool) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return nil, nil, false
	}

	acc, err := h.accountService.Get(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, service.ErrAccountNotLinked) {
			h.logger.Error("Failed to get account", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return nil, nil, false
	}

	return user, acc, true
}
