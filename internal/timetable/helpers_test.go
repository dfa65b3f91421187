package timetable

import (
	"strconv"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func ptr(v int64) *int64 { return &v }

func lesson(id int64, date model.Date, start, end model.Clock, subject, teacher int64) model.Lesson {
	return model.Lesson{
		ID:        id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Subjects:  model.RefList{{ID: subject, Name: "S" + itoa(subject), LongName: "Subject " + itoa(subject)}},
		Teachers:  model.RefList{{ID: teacher, Name: "T" + itoa(teacher), LongName: "Teacher " + itoa(teacher)}},
		Rooms:     model.RefList{{ID: 1, Name: "R1", LongName: "Room 1"}},
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
