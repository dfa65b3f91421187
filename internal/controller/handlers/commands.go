package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	acc, err := h.accountService.Get(ctx, registeredUser.ID)
	if err != nil && !errors.Is(err, service.ErrAccountNotLinked) {
		h.logger.Error("Failed to get account", zap.Int64("user_id", registeredUser.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildMainMenu(registeredUser, acc, h.timetableService.CurrentWeek())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>Справка по командам</b>\n\n" +
		"/start - Главное меню\n" +
		"/login - Привязать аккаунт WebUntis\n" +
		"/week - Расписание на текущую неделю\n" +
		"/filter - Выбрать свои курсы\n" +
		"/export - Выгрузить неделю в Excel или календарь\n" +
		"/logout - Отвязать аккаунт\n" +
		"/cancel - Отменить текущий диалог\n" +
		"/help - Показать эту справку\n\n" +
		"Обозначения:\n" +
		"❌ урок отменён\n" +
		"🔄 замена учителя или кабинета\n" +
		"⚠️ нерегулярный урок\n" +
		"ℹ️ есть дополнительная информация\n\n" +
		"Если отмечен хотя бы один курс, в расписании показываются только отмеченные."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleWeek показывает текущую неделю
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, _, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	view, err := common.LoadWeekView(ctx, h.timetableService, user.ID, h.timetableService.CurrentWeek(), false, h.now(), h.logger)
	if err != nil {
		h.logger.Error("Failed to load week", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if view.Image != nil {
		h.sendPhoto(ctx, b, chatID, view.Image, view.Caption, view.Keyboard)
		return
	}
	h.sendMessage(ctx, b, chatID, view.Caption, view.Keyboard)
}

// HandleFilter показывает список курсов для отметки
func (h *Handlers) HandleFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, _, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	list, err := h.courseService.Courses(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load courses", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildFilterScreen(list, 0, h.timetableService.CurrentWeek())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleExport предлагает выгрузить текущую или следующую неделю
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, _, ok := h.requireAccount(ctx, b, update); !ok {
		return
	}

	current := h.timetableService.CurrentWeek()
	next := timetable.StepWeek(current, timetable.Next)

	text := fmt.Sprintf("📤 <b>Выгрузка расписания</b>\n\n"+
		"Эта неделя: %s\n"+
		"Следующая: %s\n\n"+
		"Excel - таблица как в приложении, календарь - файл .ics для импорта.",
		formatting.FormatWeekRange(current, timetable.FridayOfWeek(current)),
		formatting.FormatWeekRange(next, timetable.FridayOfWeek(next)),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.ExportButtons(current)...).
		Row(
			keyboard.Button("📊 Excel (след.)", keyboard.ExportData(callbacktypes.ExportXLSX, next)),
			keyboard.Button("📅 Календарь (след.)", keyboard.ExportData(callbacktypes.ExportICS, next)),
		).
		Build()

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleLogout спрашивает подтверждение отвязки аккаунта
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, acc, ok := h.requireAccount(ctx, b, update)
	if !ok {
		return
	}

	text, kb := common.BuildLogoutConfirm(acc)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Текст не логируем: в диалоге входа это может быть пароль
	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
	case state.StateLoginSchoolQuery, state.StateLoginPickSchool:
		// Повторный ввод на шаге выбора школы - новый поиск
		h.handleSchoolQueryStep(ctx, b, update)
	case state.StateLoginUsername:
		h.handleUsernameStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handlePasswordStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
