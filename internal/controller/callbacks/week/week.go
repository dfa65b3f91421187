package week

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleWeek показывает неделю (week:20250811)
func HandleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	showWeek(ctx, b, callback, h, callbacktypes.Week, false)
}

// HandleWeekRefresh перезагружает неделю с сервера в обход кэша
func HandleWeekRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	showWeek(ctx, b, callback, h, callbacktypes.WeekRefresh, true)
}

func showWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, prefix string, refresh bool) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.SplitCallback(callback.Data, prefix, 1)
		if err != nil {
			common.HandleError(hc, err, "parse_week")
			return
		}
		weekStart, err := common.ParseDateArg(parts[0])
		if err != nil {
			common.HandleError(hc, err, "parse_week")
			return
		}

		view, err := common.LoadWeekView(ctx, h.TimetableService, hc.User.ID, weekStart, refresh, h.Now(), h.Logger)
		if err != nil {
			common.HandleError(hc, err, "load_week")
			return
		}

		if view.Image != nil {
			err = hc.ShowPhoto(view.Image, view.Caption, view.Keyboard)
		} else {
			err = hc.ShowText(view.Caption, view.Keyboard)
		}
		if err != nil {
			h.Logger.Error("Failed to show week",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Int("week_start", int(weekStart)),
				zap.Error(err))
			hc.AnswerAlert("❌ Не удалось показать расписание")
			return
		}

		if refresh {
			hc.Answer("🔄 Обновлено")
			return
		}
		hc.Answer("")
	})
}

// HandleWeekDay показывает уроки одного дня (week_day:20250811:20250813)
func HandleWeekDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.SplitCallback(callback.Data, callbacktypes.WeekDay, 2)
		if err != nil {
			common.HandleError(hc, err, "parse_week_day")
			return
		}
		weekStart, err := common.ParseDateArg(parts[0])
		if err != nil {
			common.HandleError(hc, err, "parse_week_day")
			return
		}
		day, err := common.ParseDateArg(parts[1])
		if err != nil {
			common.HandleError(hc, err, "parse_week_day")
			return
		}

		res, err := h.TimetableService.Week(ctx, hc.User.ID, weekStart, false)
		if err != nil {
			common.HandleError(hc, err, "load_week_day")
			return
		}

		idx := res.Week.DayIndex(day)
		if idx < 0 {
			common.HandleError(hc, common.ErrInvalidFormat, "find_week_day")
			return
		}

		text, kb := common.BuildDayScreen(res.Week, idx)
		if err := hc.ShowText(text, kb); err != nil {
			h.Logger.Error("Failed to show day", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleLesson показывает карточку урока (lesson:20250811:123456)
func HandleLesson(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.SplitCallback(callback.Data, callbacktypes.Lesson, 2)
		if err != nil {
			common.HandleError(hc, err, "parse_lesson")
			return
		}
		weekStart, err := common.ParseDateArg(parts[0])
		if err != nil {
			common.HandleError(hc, err, "parse_lesson")
			return
		}
		lessonID, err := common.ParseIntArg(parts[1])
		if err != nil {
			common.HandleError(hc, err, "parse_lesson")
			return
		}

		entry, err := h.TimetableService.Lesson(ctx, hc.User.ID, weekStart, lessonID)
		if err != nil {
			common.HandleError(hc, err, "load_lesson")
			return
		}

		text, kb := common.BuildLessonScreen(entry, weekStart)
		if err := hc.ShowText(text, kb); err != nil {
			h.Logger.Error("Failed to show lesson", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
		hc.Answer("")
	})
}
