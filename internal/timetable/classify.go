package timetable

import (
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Viewer идентификация пользователя, для которого строится расписание
type Viewer struct {
	PersonID int64
	KlasseID int64
}

// Category категория урока для отображения
type Category string

const (
	CategoryNormal      Category = "normal"
	CategoryCancelled   Category = "cancelled"
	CategoryIrregular   Category = "irregular"
	CategorySubstituted Category = "substituted"
)

// Classification категория урока и готовые к выводу поля
type Classification struct {
	Category Category

	Subject     string
	SubjectLong string
	Teacher     string
	TeacherLong string
	Room        string
	RoomLong    string
	Classes     string

	HasAdditionalInfo bool
}

// Classify определяет категорию урока. Порядок проверок: отмена, нерегулярный,
// замена, обычный. Отмена важнее замены учителя.
func Classify(l model.Lesson, v Viewer) Classification {
	c := Classification{
		Category:          category(l, v),
		Teacher:           refDisplay(l.Teachers, false),
		TeacherLong:       refDisplay(l.Teachers, true),
		Room:              refDisplay(l.Rooms, false),
		RoomLong:          refDisplay(l.Rooms, true),
		Classes:           l.Classes.LongNames(),
		HasAdditionalInfo: l.Info != "" || l.SubstitutionText != "",
	}
	if s, ok := l.Subjects.Primary(); ok {
		c.Subject = s.Name
		c.SubjectLong = s.LongName
	}
	return c
}

func category(l model.Lesson, v Viewer) Category {
	switch {
	case l.Code == model.LessonCodeCancelled:
		return CategoryCancelled
	case l.Code == model.LessonCodeIrregular:
		return CategoryIrregular
	case substituted(l, v):
		return CategorySubstituted
	}
	return CategoryNormal
}

func substituted(l model.Lesson, v Viewer) bool {
	if t, ok := l.Teachers.Primary(); ok && t.Substituted() {
		return true
	}
	if r, ok := l.Rooms.Primary(); ok && r.Substituted() {
		return true
	}
	if len(l.Classes) == 0 {
		return false
	}
	return !l.Classes.Contains(v.PersonID) && !l.Classes.Contains(v.KlasseID)
}

// refDisplay выводит имена через запятую. Если основная ссылка заменена,
// каждое имя дополняется исходным значением в скобках.
func refDisplay(refs model.RefList, long bool) string {
	primary, ok := refs.Primary()
	if !ok {
		return ""
	}

	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		name := r.Name
		if long && r.LongName != "" {
			name = r.LongName
		}
		if primary.Substituted() && r.OriginName != "" {
			name += " (" + r.OriginName + ")"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}
