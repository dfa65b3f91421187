package timetable

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Direction направление листания недель
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// daysSinceMonday смещение от понедельника по ISO (воскресенье = 6)
func daysSinceMonday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// PreviousMonday возвращает понедельник недели, в которую попадает now
func PreviousMonday(now time.Time) model.Date {
	today := model.DateOf(now)
	return today.AddDays(-daysSinceMonday(today.Weekday()))
}

// FridayOfWeek возвращает ближайшую пятницу начиная с d (смещение 0-6 дней вперёд)
func FridayOfWeek(d model.Date) model.Date {
	offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	return d.AddDays(offset)
}

// StepWeek сдвигает дату на неделю по календарю
func StepWeek(d model.Date, dir Direction) model.Date {
	return d.AddDays(7 * int(dir))
}

// EnumerateDays возвращает все даты из [from, to]. Пустой результат если from > to.
func EnumerateDays(from, to model.Date) []model.Date {
	if from > to {
		return nil
	}
	var days []model.Date
	for d := from; d <= to; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// HolidayOn ищет первые каникулы, содержащие дату. При пересечении побеждает
// порядок во входном списке.
func HolidayOn(d model.Date, holidays []model.Holiday) (model.Holiday, bool) {
	for _, h := range holidays {
		if d >= h.StartDate && d <= h.EndDate {
			return h, true
		}
	}
	return model.Holiday{}, false
}

// IsHoliday возвращает название каникул на дату
func IsHoliday(d model.Date, holidays []model.Holiday) (string, bool) {
	h, ok := HolidayOn(d, holidays)
	if !ok {
		return "", false
	}
	return h.Label(), true
}

// CourseRange окно для сбора списка курсов: с понедельника двумя неделями раньше
// текущей до пятницы через две недели после ближайшей пятницы
func CourseRange(now time.Time) (from, to model.Date) {
	today := model.DateOf(now)
	from = today.AddDays(-(daysSinceMonday(today.Weekday()) + 14))

	untilFriday := (int(time.Friday) - int(today.Weekday()) + 7) % 7
	if untilFriday == 0 {
		untilFriday = 7
	}
	to = today.AddDays(untilFriday + 14)
	return from, to
}
