package timetable

import (
	"sort"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// FilterByMarked оставляет уроки отмеченных курсов. Пустое множество пропускает все уроки.
func FilterByMarked(lessons []model.Lesson, marked MarkedSet) []model.Lesson {
	if marked.Len() == 0 {
		return lessons
	}

	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		key, err := CourseKey(l)
		if err != nil {
			continue
		}
		if marked.Has(key) {
			out = append(out, l)
		}
	}
	return out
}

// Grouped уроки по датам, внутри даты отсортированы по времени начала
type Grouped map[model.Date][]model.Lesson

// GroupByDate раскладывает уроки по датам. Сортировка устойчивая: уроки
// с одинаковым началом сохраняют входной порядок.
func GroupByDate(lessons []model.Lesson) Grouped {
	g := make(Grouped)
	for _, l := range lessons {
		g[l.Date] = append(g[l.Date], l)
	}
	for _, bucket := range g {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartTime < bucket[j].StartTime
		})
	}
	return g
}

// Dates даты в порядке возрастания
func (g Grouped) Dates() []model.Date {
	dates := make([]model.Date, 0, len(g))
	for d := range g {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}
