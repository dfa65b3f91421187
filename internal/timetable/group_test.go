package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func sampleLessons() []model.Lesson {
	return []model.Lesson{
		lesson(1, 20250812, 1000, 1045, 1, 1),
		lesson(2, 20250811, 935, 1020, 2, 2),
		lesson(3, 20250811, 800, 845, 1, 1),
		lesson(4, 20250812, 800, 845, 3, 3),
		lesson(5, 20250811, 935, 1020, 4, 4),
		lesson(6, 20250813, 1200, 1350, 2, 2),
	}
}

func TestFilterByMarked_EmptySetIsIdentity(t *testing.T) {
	lessons := sampleLessons()
	assert.Equal(t, lessons, FilterByMarked(lessons, MarkedSet{}))
	assert.Equal(t, lessons, FilterByMarked(lessons, NewMarkedSet()))
}

func TestFilterByMarked(t *testing.T) {
	lessons := append(sampleLessons(), model.Lesson{ID: 99, Date: 20250811})

	out := FilterByMarked(lessons, NewMarkedSet("1-1", "2-2"))
	ids := make([]int64, 0, len(out))
	for _, l := range out {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 6}, ids)
}

func TestGroupByDate_EmptyFilterKeepsEveryLesson(t *testing.T) {
	lessons := sampleLessons()
	grouped := GroupByDate(FilterByMarked(lessons, MarkedSet{}))

	total := 0
	seen := make(map[int64]int)
	for date, bucket := range grouped {
		total += len(bucket)
		for i, l := range bucket {
			seen[l.ID]++
			assert.Equal(t, date, l.Date)
			if i > 0 {
				assert.LessOrEqual(t, bucket[i-1].StartTime, l.StartTime)
			}
		}
	}

	assert.Equal(t, len(lessons), total)
	for _, l := range lessons {
		assert.Equal(t, 1, seen[l.ID], "lesson %d", l.ID)
	}
}

func TestGroupByDate_StableOnEqualStart(t *testing.T) {
	grouped := GroupByDate(sampleLessons())

	monday := grouped[20250811]
	require.Len(t, monday, 3)
	assert.Equal(t, int64(3), monday[0].ID)
	assert.Equal(t, int64(2), monday[1].ID)
	assert.Equal(t, int64(5), monday[2].ID)

	assert.Equal(t, []model.Date{20250811, 20250812, 20250813}, grouped.Dates())
}

func TestGroupByDate_Idempotent(t *testing.T) {
	assert.Equal(t, GroupByDate(sampleLessons()), GroupByDate(sampleLessons()))
}

func TestGroupByDate_DoesNotMutateInput(t *testing.T) {
	lessons := sampleLessons()
	before := append([]model.Lesson(nil), lessons...)
	GroupByDate(lessons)
	assert.Equal(t, before, lessons)
}
