package formatting

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

// CategoryDisplay emoji и подпись категории урока
type CategoryDisplay struct {
	Emoji string
	Text  string
}

// GetCategoryDisplay возвращает emoji и подпись категории
func GetCategoryDisplay(c timetable.Category) CategoryDisplay {
	switch c {
	case timetable.CategoryCancelled:
		return CategoryDisplay{Emoji: "❌", Text: "Отменён"}
	case timetable.CategorySubstituted:
		return CategoryDisplay{Emoji: "🔄", Text: "Замена"}
	case timetable.CategoryIrregular:
		return CategoryDisplay{Emoji: "⚠️", Text: "Нерегулярный"}
	default:
		return CategoryDisplay{Emoji: "📘", Text: "По расписанию"}
	}
}

// SubjectOrDefault название предмета или "Занятие", если предмет не указан
func SubjectOrDefault(e timetable.Entry) string {
	if e.Subject != "" {
		return e.Subject
	}
	return "Занятие"
}

// FormatLessonLine одна строка урока для списка дня (HTML)
func FormatLessonLine(e timetable.Entry) string {
	display := GetCategoryDisplay(e.Category)

	parts := []string{"<b>" + html.EscapeString(SubjectOrDefault(e)) + "</b>"}
	if e.Teacher != "" {
		parts = append(parts, html.EscapeString(e.Teacher))
	}
	if e.Room != "" {
		parts = append(parts, html.EscapeString(e.Room))
	}

	line := fmt.Sprintf("%s %s %s", display.Emoji, FormatTimeRange(e.Lesson.StartTime, e.Lesson.EndTime), strings.Join(parts, " · "))
	if e.Category != timetable.CategoryNormal {
		line += " <i>(" + display.Text + ")</i>"
	}
	if e.HasAdditionalInfo {
		line += " ℹ️"
	}
	return line
}

// FormatLessonButton короткая подпись кнопки урока
func FormatLessonButton(e timetable.Entry) string {
	display := GetCategoryDisplay(e.Category)
	return fmt.Sprintf("%s %s %s", display.Emoji, e.Lesson.StartTime, SubjectOrDefault(e))
}

// FormatLessonDetails полная карточка урока (HTML)
func FormatLessonDetails(e timetable.Entry) string {
	l := e.Lesson
	display := GetCategoryDisplay(e.Category)

	var sb strings.Builder
	sb.WriteString("📖 <b>Подробности урока</b>\n\n")

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString("<b>" + label + ":</b> " + html.EscapeString(value) + "\n")
	}

	row("Статус", display.Emoji+" "+display.Text)
	row("ID", strconv.FormatInt(l.ID, 10))
	row("Предмет", l.Subjects.LongNames())
	row("Класс", l.Classes.LongNames())
	row("Учитель", e.TeacherLong)
	row("Кабинет", e.RoomLong)
	row("Дата", FormatDateWithWeekday(l.Date))
	row("Время", FormatTimeRange(l.StartTime, l.EndTime))
	row("Тип урока", lessonType(l))
	row("Текст урока", l.LessonText)
	row("Текст замены", l.SubstitutionText)
	row("Код", string(l.Code))
	row("Информация", l.Info)
	row("Номер урока", lessonNumber(l))
	row("Флаги статуса", l.StatusFlags)
	row("Тип активности", l.ActivityType)
	row("Группа", l.StudentGroup)
	row("Примечание к брони", l.BookingRemark)
	row("Текст брони", l.BookingText)

	return sb.String()
}

func lessonType(l model.Lesson) string {
	if l.LessonType == "" {
		return "ls"
	}
	return l.LessonType
}

func lessonNumber(l model.Lesson) string {
	if l.LessonNumber == 0 {
		return ""
	}
	return strconv.Itoa(l.LessonNumber)
}
