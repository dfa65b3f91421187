package timetable

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// ErrMalformedLesson урок без предмета/учителя или с некорректным интервалом
var ErrMalformedLesson = errors.New("malformed lesson")

// MalformedLessonError описывает урок, исключённый из расчёта
type MalformedLessonError struct {
	LessonID int64
	Reason   string
}

func (e *MalformedLessonError) Error() string {
	return fmt.Sprintf("lesson %d: %s", e.LessonID, e.Reason)
}

func (e *MalformedLessonError) Unwrap() error {
	return ErrMalformedLesson
}

func checkLesson(l model.Lesson) error {
	if err := l.Validate(); err != nil {
		return &MalformedLessonError{LessonID: l.ID, Reason: err.Error()}
	}
	return nil
}
