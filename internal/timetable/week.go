package timetable

import (
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Input всё, что нужно для построения недели. Данные уже получены с сервера
// и из хранилища отметок.
type Input struct {
	WeekStart model.Date
	Lessons   []model.Lesson
	Grid      model.TimeGrid
	Holidays  []model.Holiday
	Marked    MarkedSet
	Viewer    Viewer
}

// Day колонка недели
type Day struct {
	Date    model.Date
	Holiday string
}

// IsHoliday сообщает, попадает ли день на каникулы
func (d Day) IsHoliday() bool {
	return d.Holiday != ""
}

// Entry урок в ячейке вместе с его классификацией
type Entry struct {
	Lesson model.Lesson
	Classification
}

// Week готовая к отображению неделя: дни x слоты
type Week struct {
	Start model.Date
	End   model.Date
	Grid  model.TimeGrid
	Days  []Day

	// Cells[день][слот]
	Cells [][][]Entry

	// Skipped уроки, исключённые из расчёта (*MalformedLessonError), по одной записи на урок
	Skipped []error
}

// Build строит неделю с понедельника in.WeekStart по пятницу.
// Результат детерминирован для одинаковых входных данных.
func Build(in Input) *Week {
	w := &Week{
		Start: in.WeekStart,
		End:   FridayOfWeek(in.WeekStart),
		Grid:  in.Grid,
	}

	valid := make([]model.Lesson, 0, len(in.Lessons))
	for _, l := range in.Lessons {
		if err := checkLesson(l); err != nil {
			w.Skipped = append(w.Skipped, err)
			continue
		}
		valid = append(valid, l)
	}

	dates := EnumerateDays(w.Start, w.End)
	matrix := Project(GroupByDate(FilterByMarked(valid, in.Marked)), in.Grid, dates)

	w.Days = make([]Day, len(dates))
	w.Cells = make([][][]Entry, len(dates))
	for i, d := range dates {
		label, _ := IsHoliday(d, in.Holidays)
		w.Days[i] = Day{Date: d, Holiday: label}

		row := make([][]Entry, len(matrix[i]))
		for j, cell := range matrix[i] {
			if len(cell) == 0 {
				continue
			}
			entries := make([]Entry, len(cell))
			for k, l := range cell {
				entries[k] = Entry{Lesson: l, Classification: Classify(l, in.Viewer)}
			}
			row[j] = entries
		}
		w.Cells[i] = row
	}

	return w
}

// Cell уроки в ячейке. Вне границ возвращает nil.
func (w *Week) Cell(day, slot int) []Entry {
	if day < 0 || day >= len(w.Cells) || slot < 0 || slot >= len(w.Cells[day]) {
		return nil
	}
	return w.Cells[day][slot]
}

// DayEntries уроки дня без повторов (урок на две пары встречается один раз)
// в порядке слотов
func (w *Week) DayEntries(day int) []Entry {
	if day < 0 || day >= len(w.Cells) {
		return nil
	}
	seen := make(map[int64]struct{})
	var out []Entry
	for _, cell := range w.Cells[day] {
		for _, e := range cell {
			if _, ok := seen[e.Lesson.ID]; ok {
				continue
			}
			seen[e.Lesson.ID] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// Entries все размещённые уроки недели без повторов, по дням
func (w *Week) Entries() []Entry {
	var out []Entry
	for i := range w.Days {
		out = append(out, w.DayEntries(i)...)
	}
	return out
}

// Find ищет размещённый урок по ID
func (w *Week) Find(lessonID int64) (Entry, bool) {
	for i := range w.Days {
		for _, e := range w.DayEntries(i) {
			if e.Lesson.ID == lessonID {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// DayIndex позиция даты в неделе, -1 если даты нет
func (w *Week) DayIndex(d model.Date) int {
	for i, day := range w.Days {
		if day.Date == d {
			return i
		}
	}
	return -1
}

// Empty true если в неделе нет ни одного размещённого урока
func (w *Week) Empty() bool {
	for _, row := range w.Cells {
		for _, cell := range row {
			if len(cell) > 0 {
				return false
			}
		}
	}
	return true
}
