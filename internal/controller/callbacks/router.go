package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/filter"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/week"
	"github.com/Freeeeeet/timetable_bot/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data
	route := routeName(data)

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.String("route", route),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	metrics.BotCallbacks.WithLabelValues(route).Inc()

	switch {
	// ===== Навигация =====
	case data == callbacktypes.BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == callbacktypes.Noop:
		common.HandleNoop(ctx, b, callback)

	// ===== Расписание =====
	case strings.HasPrefix(data, callbacktypes.WeekRefresh):
		week.HandleWeekRefresh(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.WeekDay):
		week.HandleWeekDay(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.Week):
		week.HandleWeek(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.Lesson):
		week.HandleLesson(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.Export):
		week.HandleExport(ctx, b, callback, h)

	// ===== Фильтр курсов =====
	case strings.HasPrefix(data, callbacktypes.FilterPage):
		filter.HandleFilterPage(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.FilterToggle):
		filter.HandleFilterToggle(ctx, b, callback, h)
	case data == callbacktypes.FilterClear:
		filter.HandleFilterClear(ctx, b, callback, h)

	// ===== Аккаунт =====
	case data == callbacktypes.LoginStart:
		account.HandleLoginStart(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.LoginSchool):
		account.HandleLoginSchool(ctx, b, callback, h)
	case data == callbacktypes.LogoutAsk:
		account.HandleLogoutAsk(ctx, b, callback, h)
	case data == callbacktypes.LogoutConfirm:
		account.HandleLogoutConfirm(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}

// routeName метка маршрута без аргументов: "week_day:20250811:20250813" -> "week_day"
func routeName(data string) string {
	name, _, _ := strings.Cut(data, ":")
	switch name {
	case callbacktypes.BackToMain, callbacktypes.Noop, callbacktypes.FilterClear,
		callbacktypes.LoginStart, callbacktypes.LogoutAsk, callbacktypes.LogoutConfirm:
		return name
	}
	for _, prefix := range []string{
		callbacktypes.Week, callbacktypes.WeekRefresh, callbacktypes.WeekDay, callbacktypes.Lesson,
		callbacktypes.FilterPage, callbacktypes.FilterToggle, callbacktypes.Export, callbacktypes.LoginSchool,
	} {
		if name+":" == prefix {
			return name
		}
	}
	return "unknown"
}
