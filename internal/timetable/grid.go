package timetable

import (
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Cell уроки в одной ячейке сетки
type Cell []model.Lesson

// Matrix ячейки сетки: Matrix[день][слот]
type Matrix [][]Cell

// Overlaps проверяет, попадает ли урок в слот: заходит в слот, начинается
// внутри слота или полностью его покрывает
func Overlaps(l model.Lesson, slot model.TimeSlot) bool {
	spansInto := l.StartTime < slot.StartTime && l.EndTime > slot.StartTime
	startsDuring := l.StartTime >= slot.StartTime && l.StartTime < slot.EndTime
	covers := l.StartTime <= slot.StartTime && l.EndTime >= slot.EndTime
	return spansInto || startsDuring || covers
}

// Project раскладывает уроки по ячейкам. Урок попадает во все слоты, которые
// пересекает. Порядок внутри ячейки совпадает с порядком в группе.
// Уроки без предмета, учителя или с пустым интервалом пропускаются.
func Project(grouped Grouped, grid model.TimeGrid, days []model.Date) Matrix {
	m := make(Matrix, len(days))
	for i, day := range days {
		row := make([]Cell, len(grid))
		for _, l := range grouped[day] {
			if l.Validate() != nil {
				continue
			}
			for j, slot := range grid {
				if Overlaps(l, slot) {
					row[j] = append(row[j], l)
				}
			}
		}
		m[i] = row
	}
	return m
}

// SelectGrid берёт сетку первого дня, пришедшего с сервера
func SelectGrid(days []model.TimegridDay) model.TimeGrid {
	if len(days) == 0 {
		return nil
	}
	return days[0].Units
}
