package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

const (
	exportSheet  = "Расписание"
	icsProductID = "-//timetable-bot//WebUntis week export//RU"
)

var weekdayShort = map[time.Weekday]string{
	time.Monday:    "Пн",
	time.Tuesday:   "Вт",
	time.Wednesday: "Ср",
	time.Thursday:  "Чт",
	time.Friday:    "Пт",
	time.Saturday:  "Сб",
	time.Sunday:    "Вс",
}

// Цвета заливки по категориям, те же что на картинке недели
var categoryFill = map[timetable.Category]string{
	timetable.CategoryNormal:      "#FFFFFF",
	timetable.CategorySubstituted: "#FFA3A3",
	timetable.CategoryCancelled:   "#B8B8B8",
	timetable.CategoryIrregular:   "#FFD27F",
}

const holidayFill = "#DDEBF7"

// ExportService выгрузка недели в xlsx и ics
type ExportService struct {
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewExportService(location *time.Location, logger *zap.Logger) *ExportService {
	return &ExportService{
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// XLSX таблица: строка заголовка с днями, далее по строке на слот сетки
func (s *ExportService) XLSX(week *timetable.Week) (*bytes.Buffer, string, error) {
	if week == nil || week.Empty() {
		return nil, "", ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}

	fills := make(map[string]int)
	styleFor := func(color string) (int, error) {
		if id, ok := fills[color]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
			Border: []excelize.Border{
				{Type: "left", Color: "#A6A6A6", Style: 1},
				{Type: "right", Color: "#A6A6A6", Style: 1},
				{Type: "top", Color: "#A6A6A6", Style: 1},
				{Type: "bottom", Color: "#A6A6A6", Style: 1},
			},
		})
		if err != nil {
			return 0, err
		}
		fills[color] = id
		return id, nil
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 14)
	lastCol := colName(len(week.Days))
	_ = f.SetColWidth(exportSheet, "B", lastCol, 28)

	_ = f.SetCellValue(exportSheet, cell("A", 1), "Время")
	for i, day := range week.Days {
		header := dayHeader(day)
		if day.IsHoliday() {
			header += "\n" + day.Holiday
		}
		_ = f.SetCellValue(exportSheet, cell(colName(i+1), 1), header)
	}
	_ = f.SetCellStyle(exportSheet, "A1", cell(lastCol, 1), headerStyle)

	for j, slot := range week.Grid {
		row := j + 2
		_ = f.SetCellValue(exportSheet, cell("A", row), slotLabel(slot))

		for i, day := range week.Days {
			entries := week.Cell(i, j)
			color := categoryFill[timetable.CategoryNormal]
			text := ""

			switch {
			case len(entries) > 0:
				lines := make([]string, 0, len(entries))
				for _, e := range entries {
					lines = append(lines, entryLine(e))
				}
				text = strings.Join(lines, "\n")
				color = categoryFill[cellCategory(entries)]
			case day.IsHoliday():
				color = holidayFill
			}

			ref := cell(colName(i+1), row)
			if text != "" {
				_ = f.SetCellValue(exportSheet, ref, text)
			}
			style, err := styleFor(color)
			if err != nil {
				return nil, "", fmt.Errorf("create cell style: %w", err)
			}
			_ = f.SetCellStyle(exportSheet, ref, ref, style)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Failed to write xlsx", zap.Error(err))
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}

	return buf, exportFilename(week.Start, "xlsx"), nil
}

// ICS календарь: одно событие на урок, отменённые со STATUS:CANCELLED
func (s *ExportService) ICS(week *timetable.Week) (string, string, error) {
	if week == nil || week.Empty() {
		return "", "", ErrNothingToExport
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := s.now().UTC()
	for _, e := range week.Entries() {
		l := e.Lesson
		event := cal.AddEvent(fmt.Sprintf("lesson-%d-%d@timetable-bot", l.ID, int(l.Date)))
		event.SetDtStampTime(stamp)
		event.SetStartAt(lessonTime(l.Date, l.StartTime, s.location))
		event.SetEndAt(lessonTime(l.Date, l.EndTime, s.location))
		event.SetSummary(eventSummary(e))
		if e.RoomLong != "" {
			event.SetLocation(e.RoomLong)
		}
		if desc := eventDescription(e); desc != "" {
			event.SetDescription(desc)
		}
		if e.Category == timetable.CategoryCancelled {
			event.SetStatus(ics.ObjectStatusCancelled)
		} else {
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	return cal.Serialize(), exportFilename(week.Start, "ics"), nil
}

func lessonTime(d model.Date, c model.Clock, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

func eventSummary(e timetable.Entry) string {
	subject := e.SubjectLong
	if subject == "" {
		subject = e.Subject
	}
	switch e.Category {
	case timetable.CategoryCancelled:
		return subject + " (отменён)"
	case timetable.CategorySubstituted:
		return subject + " (замена)"
	}
	return subject
}

func eventDescription(e timetable.Entry) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Учитель", e.TeacherLong)
	add("Классы", e.Classes)
	add("Замена", e.Lesson.SubstitutionText)
	add("Информация", e.Lesson.Info)
	add("Текст урока", e.Lesson.LessonText)
	return strings.Join(lines, "\n")
}

// cellCategory категория для заливки ячейки: первая необычная среди уроков
func cellCategory(entries []timetable.Entry) timetable.Category {
	for _, e := range entries {
		if e.Category != timetable.CategoryNormal {
			return e.Category
		}
	}
	return timetable.CategoryNormal
}

func entryLine(e timetable.Entry) string {
	parts := []string{e.Subject}
	if e.Teacher != "" {
		parts = append(parts, e.Teacher)
	}
	if e.Room != "" {
		parts = append(parts, e.Room)
	}
	line := strings.Join(parts, " · ")
	if e.Category == timetable.CategoryCancelled {
		line += " (отменён)"
	}
	return line
}

func dayHeader(d timetable.Day) string {
	return fmt.Sprintf("%s %02d.%02d", weekdayShort[d.Date.Weekday()], d.Date.Day(), int(d.Date.Month()))
}

func slotLabel(slot model.TimeSlot) string {
	return slot.StartTime.String() + " - " + slot.EndTime.String()
}

func exportFilename(weekStart model.Date, ext string) string {
	return fmt.Sprintf("timetable_%s_%s.%s", weekStart, uuid.NewString()[:8], ext)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
