package keyboard

import (
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", callbacktypes.BackToMain)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// ConfirmCancelButtons создаёт ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

// AddBackButton добавляет кнопку "Назад" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddBackToMainButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// WeekData callback открытия недели
func WeekData(weekStart model.Date) string {
	return fmt.Sprintf("%s%d", callbacktypes.Week, int(weekStart))
}

// WeekRefreshData callback обновления недели в обход кэша
func WeekRefreshData(weekStart model.Date) string {
	return fmt.Sprintf("%s%d", callbacktypes.WeekRefresh, int(weekStart))
}

// WeekDayData callback списка уроков дня
func WeekDayData(weekStart, day model.Date) string {
	return fmt.Sprintf("%s%d:%d", callbacktypes.WeekDay, int(weekStart), int(day))
}

// LessonData callback карточки урока
func LessonData(weekStart model.Date, lessonID int64) string {
	return fmt.Sprintf("%s%d:%d", callbacktypes.Lesson, int(weekStart), lessonID)
}

// ExportData callback выгрузки недели
func ExportData(format string, weekStart model.Date) string {
	return fmt.Sprintf("%s%s:%d", callbacktypes.Export, format, int(weekStart))
}

// FilterToggleData callback отметки курса
func FilterToggleData(courseKey string, page int) string {
	return fmt.Sprintf("%s%s:%d", callbacktypes.FilterToggle, courseKey, page)
}

// WeekNavigation ряд "пред. неделя / сегодня / след. неделя"
func WeekNavigation(prev, today, next model.Date) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", WeekData(prev)),
		Button("📍 Сегодня", WeekData(today)),
		Button("▶️", WeekData(next)),
	}
}

// ExportButtons ряд выгрузки недели
func ExportButtons(weekStart model.Date) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("📊 Excel", ExportData(callbacktypes.ExportXLSX, weekStart)),
		Button("📅 Календарь", ExportData(callbacktypes.ExportICS, weekStart)),
	}
}
