package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func weekInput() Input {
	cancelled := lesson(3, 20250812, 955, 1040, 3, 3)
	cancelled.Code = model.LessonCodeCancelled
	cancelled.Teachers[0].OriginID = ptr(8)

	broken := lesson(4, 20250812, 800, 845, 3, 3)
	broken.Subjects = nil

	return Input{
		WeekStart: 20250811,
		Lessons: []model.Lesson{
			lesson(1, 20250811, 800, 935, 1, 1),
			lesson(2, 20250811, 955, 1040, 2, 2),
			cancelled,
			broken,
			lesson(5, 20250815, 800, 845, 1, 1),
		},
		Grid: testGrid(),
		Holidays: []model.Holiday{
			{ID: 1, Name: "FT", LongName: "Feiertag", StartDate: 20250815, EndDate: 20250815},
		},
		Viewer: Viewer{KlasseID: 7},
	}
}

func TestBuild(t *testing.T) {
	w := Build(weekInput())

	assert.Equal(t, model.Date(20250811), w.Start)
	assert.Equal(t, model.Date(20250815), w.End)
	require.Len(t, w.Days, 5)
	require.Len(t, w.Cells, 5)
	assert.Equal(t, "Feiertag", w.Days[4].Holiday)
	assert.True(t, w.Days[4].IsHoliday())
	assert.False(t, w.Days[0].IsHoliday())

	require.Len(t, w.Skipped, 1)
	assert.ErrorIs(t, w.Skipped[0], ErrMalformedLesson)

	monday := w.DayEntries(0)
	require.Len(t, monday, 2)
	assert.Equal(t, int64(1), monday[0].Lesson.ID)
	assert.Len(t, w.Cell(0, 0), 1)
	assert.Len(t, w.Cell(0, 1), 1)

	e, ok := w.Find(3)
	require.True(t, ok)
	assert.Equal(t, CategoryCancelled, e.Category)

	_, ok = w.Find(4)
	assert.False(t, ok)

	assert.Len(t, w.Entries(), 4)
	assert.Equal(t, 4, w.DayIndex(20250815))
	assert.Equal(t, -1, w.DayIndex(20250818))
	assert.Nil(t, w.Cell(9, 0))
	assert.False(t, w.Empty())
}

func TestBuild_MarkedFilter(t *testing.T) {
	in := weekInput()
	in.Marked = NewMarkedSet("1-1")

	w := Build(in)
	ids := make([]int64, 0)
	for _, e := range w.Entries() {
		ids = append(ids, e.Lesson.ID)
	}
	assert.Equal(t, []int64{1, 5}, ids)
}

func TestBuild_EmptyGrid(t *testing.T) {
	in := weekInput()
	in.Grid = nil

	w := Build(in)
	require.Len(t, w.Days, 5)
	for i := range w.Days {
		assert.Len(t, w.Cells[i], 0)
	}
	assert.True(t, w.Empty())
}

func TestBuild_Deterministic(t *testing.T) {
	assert.Equal(t, Build(weekInput()), Build(weekInput()))
}
