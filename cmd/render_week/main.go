package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

func main() {
	// Текущая неделя с понедельника
	now := time.Now()
	monday := timetable.PreviousMonday(now)

	grid := model.TimeGrid{
		{StartTime: 800, EndTime: 845},
		{StartTime: 850, EndTime: 935},
		{StartTime: 955, EndTime: 1040},
		{StartTime: 1045, EndTime: 1130},
		{StartTime: 1150, EndTime: 1235},
		{StartTime: 1240, EndTime: 1325},
	}

	teacher := func(id int64, name string) model.Ref { return model.Ref{ID: id, Name: name, LongName: name} }
	subject := func(id int64, name string) model.RefList {
		return model.RefList{{ID: id, Name: name, LongName: name}}
	}
	room := model.RefList{{ID: 1, Name: "101"}}
	origin := int64(12)

	lessons := []model.Lesson{
		// Понедельник: двойной урок и два параллельных курса
		{ID: 1, Date: monday, StartTime: 800, EndTime: 935, Subjects: subject(1, "MA"), Teachers: model.RefList{teacher(11, "MUE")}, Rooms: room},
		{ID: 2, Date: monday, StartTime: 955, EndTime: 1040, Subjects: subject(2, "EN"), Teachers: model.RefList{teacher(12, "SCH")}, Rooms: room},
		{ID: 3, Date: monday, StartTime: 955, EndTime: 1040, Subjects: subject(3, "FR"), Teachers: model.RefList{teacher(13, "DUP")}, Rooms: room},
		// Вторник: замена учителя
		{ID: 4, Date: monday.AddDays(1), StartTime: 850, EndTime: 935, Subjects: subject(2, "EN"),
			Teachers: model.RefList{{ID: 14, Name: "BEC", OriginID: &origin, OriginName: "SCH"}}, Rooms: room,
			SubstitutionText: "Vertretung"},
		// Среда: отмена
		{ID: 5, Date: monday.AddDays(2), StartTime: 1045, EndTime: 1130, Subjects: subject(4, "DE"),
			Teachers: model.RefList{teacher(15, "KOC")}, Rooms: room, Code: model.LessonCodeCancelled},
		// Четверг: нерегулярный урок с комментарием
		{ID: 6, Date: monday.AddDays(3), StartTime: 1150, EndTime: 1325, Subjects: subject(5, "BIO"),
			Teachers: model.RefList{teacher(16, "WAG")}, Rooms: room, Code: model.LessonCodeIrregular, Info: "Exkursion"},
	}

	week := timetable.Build(timetable.Input{
		WeekStart: monday,
		Lessons:   lessons,
		Grid:      grid,
		Holidays: []model.Holiday{
			{ID: 1, Name: "BT", LongName: "Brückentag", StartDate: monday.AddDays(4), EndDate: monday.AddDays(4)},
		},
	})

	// Генерируем изображение
	imageData, err := common.GenerateWeekImage(week, now)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	// Сохраняем в файл
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Период: %s - %s\n", week.Start, week.End)
	fmt.Printf("📊 Уроков: %d\n", len(week.Entries()))
}
