package timetable

import (
	"sort"
	"strconv"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// CourseKey возвращает ключ курса "{subjectID}-{teacherID}" по основному предмету
// и основному учителю. Для заменённого учителя берётся исходный ID, поэтому
// замена не меняет ключ.
func CourseKey(l model.Lesson) (string, error) {
	subject, ok := l.Subjects.Primary()
	if !ok {
		return "", &MalformedLessonError{LessonID: l.ID, Reason: model.ErrNoSubject.Error()}
	}
	teacher, ok := l.Teachers.Primary()
	if !ok {
		return "", &MalformedLessonError{LessonID: l.ID, Reason: model.ErrNoTeacher.Error()}
	}
	return strconv.FormatInt(subject.ID, 10) + "-" + strconv.FormatInt(teacher.EffectiveID(), 10), nil
}

// DistinctCourses возвращает по одному курсу на ключ в порядке первого появления.
// Уроки без предмета или учителя пропускаются.
func DistinctCourses(lessons []model.Lesson) []model.Course {
	seen := make(map[string]struct{}, len(lessons))
	var courses []model.Course

	for _, l := range lessons {
		key, err := CourseKey(l)
		if err != nil {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		subject, _ := l.Subjects.Primary()
		teacher, _ := l.Teachers.Primary()
		courses = append(courses, model.Course{
			Key:         key,
			SubjectID:   subject.ID,
			TeacherID:   teacher.EffectiveID(),
			SubjectName: subject.Name,
			TeacherName: teacherName(teacher),
		})
	}

	return courses
}

// teacherName имя учителя, за которым закреплён курс
func teacherName(r model.Ref) string {
	if r.Substituted() && r.OriginName != "" {
		return r.OriginName
	}
	return r.Name
}

// DropPlaceholders убирает служебные записи, у которых набор имён предметов
// совпадает с набором имён учителей
func DropPlaceholders(lessons []model.Lesson) []model.Lesson {
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if namesDiffer(l.Subjects, l.Teachers) || namesDiffer(l.Teachers, l.Subjects) {
			out = append(out, l)
		}
	}
	return out
}

// namesDiffer true если в a есть имя, которого нет в b
func namesDiffer(a, b model.RefList) bool {
	names := make(map[string]struct{}, len(b))
	for _, r := range b {
		names[r.Name] = struct{}{}
	}
	for _, r := range a {
		if _, ok := names[r.Name]; !ok {
			return true
		}
	}
	return false
}

// MarkedSet неизменяемое множество отмеченных курсов.
// Нулевое значение - пустое множество (фильтр выключен).
type MarkedSet struct {
	keys map[string]struct{}
}

func NewMarkedSet(keys ...string) MarkedSet {
	m := MarkedSet{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		m.keys[k] = struct{}{}
	}
	return m
}

func (m MarkedSet) Has(key string) bool {
	_, ok := m.keys[key]
	return ok
}

func (m MarkedSet) Len() int {
	return len(m.keys)
}

// Keys ключи в отсортированном порядке
func (m MarkedSet) Keys() []string {
	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Toggle добавляет ключ, если его нет, и удаляет, если есть.
// Возвращает новое множество, исходное не меняется.
func (m MarkedSet) Toggle(key string) MarkedSet {
	next := MarkedSet{keys: make(map[string]struct{}, len(m.keys)+1)}
	for k := range m.keys {
		next.keys[k] = struct{}{}
	}
	if m.Has(key) {
		delete(next.keys, key)
	} else {
		next.keys[key] = struct{}{}
	}
	return next
}
