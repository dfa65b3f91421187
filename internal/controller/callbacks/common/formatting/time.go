package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует дату WebUntis как 18.08.2025
func FormatDate(d model.Date) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day(), int(d.Month()), d.Year())
}

// FormatShortDate форматирует дату без года: 18.08
func FormatShortDate(d model.Date) string {
	return fmt.Sprintf("%02d.%02d", d.Day(), int(d.Month()))
}

// FormatDateWithWeekday форматирует дату с днём недели: Понедельник, 18.08.2025
func FormatDateWithWeekday(d model.Date) string {
	return GetWeekdayName(int(d.Weekday())) + ", " + FormatDate(d)
}

// FormatTimeRange форматирует пару/урок: 08:00 - 08:45
func FormatTimeRange(start, end model.Clock) string {
	return start.String() + " - " + end.String()
}

// FormatWeekRange диапазон недели: 11.08 - 15.08.2025
func FormatWeekRange(from, to model.Date) string {
	return FormatShortDate(from) + " - " + FormatDate(to)
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
