package handlers

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleLogin начинает диалог привязки аккаунта WebUntis
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	_, err := h.accountService.Get(ctx, user.ID)
	switch {
	case err == nil:
		h.sendMessage(ctx, b, chatID, "ℹ️ Аккаунт уже привязан. Чтобы сменить его, сначала выполните /logout", nil)
		return
	case !errors.Is(err, service.ErrAccountNotLinked):
		h.logger.Error("Failed to get account", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginSchoolQuery)

	h.logger.Info("Login dialog started", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, chatID, common.LoginSchoolPrompt, nil)
}

// handleSchoolQueryStep ищет школы по введённому тексту
func (h *Handlers) handleSchoolQueryStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	query := strings.TrimSpace(update.Message.Text)

	schools, err := h.accountService.SearchSchools(ctx, query)
	if err != nil {
		if !errors.Is(err, service.ErrQueryTooShort) && !errors.Is(err, untis.ErrTooManyResults) {
			h.logger.Error("School search failed",
				zap.Int64("telegram_id", telegramID),
				zap.String("query", query),
				zap.Error(err))
		}
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте ещё раз:")
		return
	}

	h.logger.Info("Schools found",
		zap.Int64("telegram_id", telegramID),
		zap.String("query", query),
		zap.Int("count", len(schools)))

	if len(schools) == 0 {
		h.sendError(ctx, b, chatID, "🔎 Школы не найдены. Попробуйте другой запрос:")
		return
	}

	truncated := len(schools) > MaxSchoolsShown
	if truncated {
		schools = schools[:MaxSchoolsShown]
	}

	h.stateManager.SetData(telegramID, state.DataSchools, schools)
	h.stateManager.SetState(telegramID, state.StateLoginPickSchool)

	text, kb := common.BuildSchoolPicker(schools)
	if truncated {
		text += "\n\nПоказаны первые результаты. Если вашей школы нет, уточните запрос."
	}
	h.sendMessage(ctx, b, chatID, text, kb)
}

// handleUsernameStep запоминает логин
func (h *Handlers) handleUsernameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	username := strings.TrimSpace(update.Message.Text)

	if username == "" || utf8.RuneCountInString(username) > UsernameMaxLength {
		h.sendError(ctx, b, chatID, "❌ Некорректный логин.\n\nПопробуйте ещё раз:")
		return
	}

	if _, ok := h.stateManager.GetData(telegramID, state.DataSchool); !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	h.stateManager.SetData(telegramID, state.DataUsername, username)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, chatID, common.FormatPasswordPrompt(username), nil)
}

// handlePasswordStep проверяет данные на сервере WebUntis и привязывает аккаунт
func (h *Handlers) handlePasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// Пароль не должен оставаться в истории чата
	h.deleteMessage(ctx, b, chatID, update.Message.ID)

	if utf8.RuneCountInString(password) > PasswordMaxLength {
		h.sendError(ctx, b, chatID, "❌ Слишком длинный пароль.\n\nПопробуйте ещё раз:")
		return
	}

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	rawSchool, _ := h.stateManager.GetData(telegramID, state.DataSchool)
	school, okSchool := rawSchool.(model.School)
	rawUsername, _ := h.stateManager.GetData(telegramID, state.DataUsername)
	username, okUsername := rawUsername.(string)
	if !okSchool || !okUsername {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	acc, err := h.accountService.Link(ctx, user.ID, service.LinkRequest{
		School:   school,
		Username: username,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, untis.ErrAuthFailed) {
			h.logger.Info("WebUntis login rejected",
				zap.Int64("telegram_id", telegramID),
				zap.String("school", school.LoginName))
			// Школа остаётся выбранной, спрашиваем логин заново
			h.stateManager.SetState(telegramID, state.StateLoginUsername)
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите логин ещё раз:")
			return
		}

		h.logger.Error("Failed to link account",
			zap.Int64("telegram_id", telegramID),
			zap.String("school", school.LoginName),
			zap.Error(err))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Account linked",
		zap.Int64("telegram_id", telegramID),
		zap.String("school", acc.School),
		zap.Int64("person_id", acc.PersonID))

	text, kb := common.BuildMainMenu(user, acc, h.timetableService.CurrentWeek())
	h.sendMessage(ctx, b, chatID, "✅ Аккаунт привязан!\n\n"+text, kb)
}
