package filter

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleFilterPage показывает страницу списка курсов (filter_page:0)
func HandleFilterPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.SplitCallback(callback.Data, callbacktypes.FilterPage, 1)
		if err != nil {
			common.HandleError(hc, err, "parse_filter_page")
			return
		}
		page, err := common.ParseIntArg(parts[0])
		if err != nil {
			common.HandleError(hc, err, "parse_filter_page")
			return
		}

		if err := showFilter(hc, int(page)); err != nil {
			common.HandleError(hc, err, "show_filter")
			return
		}
		hc.Answer("")
	})
}

// HandleFilterToggle отмечает курс или снимает отметку (filter_toggle:12-345:0)
func HandleFilterToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.SplitCallback(callback.Data, callbacktypes.FilterToggle, 2)
		if err != nil {
			common.HandleError(hc, err, "parse_filter_toggle")
			return
		}
		key := parts[0]
		page, err := common.ParseIntArg(parts[1])
		if err != nil {
			common.HandleError(hc, err, "parse_filter_toggle")
			return
		}

		marked, err := h.CourseService.Toggle(ctx, hc.User.ID, key)
		if err != nil {
			common.HandleError(hc, err, "toggle_course")
			return
		}

		h.Logger.Info("Course toggled",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("course", key),
			zap.Bool("marked", marked.Has(key)))

		if err := showFilter(hc, int(page)); err != nil {
			common.HandleError(hc, err, "show_filter")
			return
		}

		if marked.Has(key) {
			hc.Answer("✅ Курс отмечен")
		} else {
			hc.Answer("▫️ Отметка снята")
		}
	})
}

// HandleFilterClear снимает все отметки
func HandleFilterClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.CourseService.Clear(ctx, hc.User.ID); err != nil {
			common.HandleError(hc, err, "clear_courses")
			return
		}

		h.Logger.Info("Course filter cleared", zap.Int64("telegram_id", hc.TelegramID))

		if err := showFilter(hc, 0); err != nil {
			common.HandleError(hc, err, "show_filter")
			return
		}
		hc.Answer("🧹 Фильтр сброшен")
	})
}

func showFilter(hc *common.HandlerContext, page int) error {
	h := hc.Handler

	list, err := h.CourseService.Courses(hc.Ctx, hc.User.ID)
	if err != nil {
		return err
	}

	text, kb := common.BuildFilterScreen(list, page, h.TimetableService.CurrentWeek())
	if err := hc.ShowText(text, kb); err != nil {
		h.Logger.Error("Failed to show filter", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
	}
	return nil
}
