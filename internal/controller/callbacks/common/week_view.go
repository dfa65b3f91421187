package common

import (
	"context"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WeekView готовый к отправке экран недели
type WeekView struct {
	Result   *service.WeekResult
	Image    []byte // nil если картинку нарисовать не удалось
	Caption  string
	Keyboard *models.InlineKeyboardMarkup
}

// LoadWeekView получает неделю и рисует её. Ошибка рисования не фатальна:
// экран показывается текстом.
func LoadWeekView(
	ctx context.Context,
	svc *service.TimetableService,
	userID int64,
	weekStart model.Date,
	refresh bool,
	now time.Time,
	logger *zap.Logger,
) (*WeekView, error) {
	res, err := svc.Week(ctx, userID, weekStart, refresh)
	if err != nil {
		return nil, err
	}

	view := &WeekView{
		Result:   res,
		Caption:  BuildWeekCaption(res, now.Location()),
		Keyboard: BuildWeekKeyboard(res.Week, svc.CurrentWeek()),
	}

	img, err := GenerateWeekImage(res.Week, now)
	if err != nil {
		logger.Warn("Failed to render week image",
			zap.Int64("user_id", userID),
			zap.Int("week_start", int(weekStart)),
			zap.Error(err))
		return view, nil
	}
	view.Image = img

	return view, nil
}
