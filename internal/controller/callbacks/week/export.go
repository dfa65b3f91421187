package week

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleExport отправляет неделю файлом (export:xlsx:20250811, export:ics:20250811)
func HandleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAccount(ctx, b, callback, h, func(hc *common.HandlerContext) {
		parts, err := common.SplitCallback(callback.Data, callbacktypes.Export, 2)
		if err != nil {
			common.HandleError(hc, err, "parse_export")
			return
		}
		format := parts[0]
		weekStart, err := common.ParseDateArg(parts[1])
		if err != nil {
			common.HandleError(hc, err, "parse_export")
			return
		}

		res, err := h.TimetableService.Week(ctx, hc.User.ID, weekStart, false)
		if err != nil {
			common.HandleError(hc, err, "load_export_week")
			return
		}

		var (
			data     []byte
			filename string
		)
		switch format {
		case callbacktypes.ExportXLSX:
			buf, name, xerr := h.ExportService.XLSX(res.Week)
			if xerr != nil {
				err = xerr
				break
			}
			data, filename = buf.Bytes(), name
		case callbacktypes.ExportICS:
			body, name, ierr := h.ExportService.ICS(res.Week)
			if ierr != nil {
				err = ierr
				break
			}
			data, filename = []byte(body), name
		default:
			err = common.ErrInvalidFormat
		}
		if err != nil {
			common.HandleError(hc, err, "export_week")
			return
		}

		caption := fmt.Sprintf("📤 Неделя %s", formatting.FormatWeekRange(res.Week.Start, res.Week.End))
		if err := hc.SendDocument(filename, data, caption); err != nil {
			h.Logger.Error("Failed to send export",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("format", format),
				zap.Error(err))
			hc.AnswerAlert("❌ Не удалось отправить файл")
			return
		}

		h.Logger.Info("Week exported",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("format", format),
			zap.Int("week_start", int(weekStart)))
		hc.Answer("📤 Файл отправлен")
	})
}
