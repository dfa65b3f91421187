package model

import (
	"errors"
	"strings"
)

// Ref ссылка на предмет, учителя, кабинет или класс внутри урока.
// OriginID != nil означает замену: исходное значение (OriginID/OriginName)
// отличается от действующего (ID/Name).
type Ref struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LongName   string `json:"long_name"`
	OriginID   *int64 `json:"origin_id,omitempty"`
	OriginName string `json:"origin_name,omitempty"`
}

// Substituted сообщает, заменена ли ссылка
func (r Ref) Substituted() bool {
	return r.OriginID != nil
}

// EffectiveID возвращает исходный ID для заменённой ссылки, иначе ID
func (r Ref) EffectiveID() int64 {
	if r.OriginID != nil {
		return *r.OriginID
	}
	return r.ID
}

// RefList упорядоченный список ссылок: первая - основная, остальные - дополнительные
type RefList []Ref

// Primary возвращает основную ссылку
func (l RefList) Primary() (Ref, bool) {
	if len(l) == 0 {
		return Ref{}, false
	}
	return l[0], true
}

// Secondary возвращает ссылки после основной
func (l RefList) Secondary() []Ref {
	if len(l) < 2 {
		return nil
	}
	return l[1:]
}

// Names короткие имена через запятую
func (l RefList) Names() string {
	names := make([]string, 0, len(l))
	for _, r := range l {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// LongNames полные имена через запятую
func (l RefList) LongNames() string {
	names := make([]string, 0, len(l))
	for _, r := range l {
		names = append(names, r.LongName)
	}
	return strings.Join(names, ", ")
}

// Contains проверяет, есть ли в списке ссылка с указанным ID
func (l RefList) Contains(id int64) bool {
	for _, r := range l {
		if r.ID == id {
			return true
		}
	}
	return false
}

type LessonCode string

const (
	LessonCodeNone      LessonCode = ""
	LessonCodeCancelled LessonCode = "cancelled"
	LessonCodeIrregular LessonCode = "irregular"
)

// Lesson один урок расписания (плановый, заменённый или отменённый)
type Lesson struct {
	ID        int64 `json:"id"`
	Date      Date  `json:"date"`
	StartTime Clock `json:"start_time"`
	EndTime   Clock `json:"end_time"`

	Subjects RefList `json:"subjects"`
	Teachers RefList `json:"teachers"`
	Rooms    RefList `json:"rooms"`
	Classes  RefList `json:"classes"`

	Code       LessonCode `json:"code,omitempty"`
	LessonType string     `json:"lesson_type,omitempty"`

	SubstitutionText string `json:"substitution_text,omitempty"`
	LessonText       string `json:"lesson_text,omitempty"`
	Info             string `json:"info,omitempty"`
	BookingRemark    string `json:"booking_remark,omitempty"`
	BookingText      string `json:"booking_text,omitempty"`

	// Только для отображения
	LessonNumber int    `json:"lesson_number"`
	StatusFlags  string `json:"status_flags,omitempty"`
	ActivityType string `json:"activity_type,omitempty"`
	StudentGroup string `json:"student_group,omitempty"`
}

var (
	ErrNoSubject    = errors.New("lesson has no subject")
	ErrNoTeacher    = errors.New("lesson has no teacher")
	ErrBadTimeRange = errors.New("lesson start is not before end")
)

// Validate проверяет минимальные требования к уроку для расчёта сетки
func (l Lesson) Validate() error {
	switch {
	case len(l.Subjects) == 0:
		return ErrNoSubject
	case len(l.Teachers) == 0:
		return ErrNoTeacher
	case l.StartTime >= l.EndTime:
		return ErrBadTimeRange
	}
	return nil
}
