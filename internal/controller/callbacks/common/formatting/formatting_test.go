package formatting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "урок"},
		{2, "урока"},
		{4, "урока"},
		{5, "уроков"},
		{11, "уроков"},
		{12, "уроков"},
		{21, "урок"},
		{22, "урока"},
		{111, "уроков"},
		{0, "уроков"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeLessons(tt.count), "count=%d", tt.count)
	}
	assert.Equal(t, "курса", PluralizeCourses(3))
	assert.Equal(t, "школ", PluralizeSchools(7))
}

func TestDates(t *testing.T) {
	d := model.Date(20250811)

	assert.Equal(t, "11.08.2025", FormatDate(d))
	assert.Equal(t, "11.08", FormatShortDate(d))
	assert.Equal(t, "Понедельник, 11.08.2025", FormatDateWithWeekday(d))
	assert.Equal(t, "11.08 - 15.08.2025", FormatWeekRange(d, 20250815))
	assert.Equal(t, "08:00 - 09:35", FormatTimeRange(800, 935))
	assert.Equal(t, "Пт", GetWeekdayShort(5))
	assert.Equal(t, "?", GetWeekdayShort(9))
}

func entry(category timetable.Category) timetable.Entry {
	return timetable.Entry{
		Lesson: model.Lesson{
			ID: 12, Date: 20250811, StartTime: 800, EndTime: 845,
			Subjects: model.RefList{{ID: 1, Name: "MA", LongName: "Mathematik"}},
			Classes:  model.RefList{{ID: 7, Name: "10a", LongName: "Klasse 10a"}},
			Info:     "Test <morgen>",
		},
		Classification: timetable.Classification{
			Category:          category,
			Subject:           "MA",
			Teacher:           "SCH (MUE)",
			TeacherLong:       "Schulz (MUE)",
			Room:              "101",
			HasAdditionalInfo: true,
		},
	}
}

func TestFormatLessonLine(t *testing.T) {
	line := FormatLessonLine(entry(timetable.CategorySubstituted))
	assert.Equal(t, "🔄 08:00 - 08:45 <b>MA</b> · SCH (MUE) · 101 <i>(Замена)</i> ℹ️", line)

	e := entry(timetable.CategoryNormal)
	e.HasAdditionalInfo = false
	e.Subject = ""
	assert.Equal(t, "📘 08:00 - 08:45 <b>Занятие</b> · SCH (MUE) · 101", FormatLessonLine(e))
}

func TestFormatLessonDetails(t *testing.T) {
	details := FormatLessonDetails(entry(timetable.CategoryCancelled))

	assert.Contains(t, details, "<b>Статус:</b> ❌ Отменён")
	assert.Contains(t, details, "<b>Предмет:</b> Mathematik")
	assert.Contains(t, details, "<b>Учитель:</b> Schulz (MUE)")
	assert.Contains(t, details, "<b>Кабинет:</b> -")
	assert.Contains(t, details, "<b>Информация:</b> Test &lt;morgen&gt;")
	assert.Contains(t, details, "<b>Тип урока:</b> ls")
	assert.Equal(t, 19, strings.Count(details, "\n")-2)
}

func TestGetCategoryDisplay(t *testing.T) {
	assert.Equal(t, "По расписанию", GetCategoryDisplay(timetable.CategoryNormal).Text)
	assert.Equal(t, "Нерегулярный", GetCategoryDisplay(timetable.CategoryIrregular).Text)
	assert.Equal(t, "❌", GetCategoryDisplay(timetable.CategoryCancelled).Emoji)
}
