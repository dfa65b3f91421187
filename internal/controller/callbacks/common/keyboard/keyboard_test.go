package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Grid(t *testing.T) {
	kb := NewBuilder().
		Grid(2, Button("a", "1"), Button("b", "2"), Button("c", "3")).
		Row().
		AddBackToMainButton().
		Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "back_to_main", kb.InlineKeyboard[2][0].CallbackData)
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("filter_page:", 0, 1))

	first := PaginationButtons("filter_page:", 0, 3)
	require.Len(t, first, 2)
	assert.Equal(t, "📄 1/3", first[0].Text)
	assert.Equal(t, "filter_page:1", first[1].CallbackData)

	middle := PaginationButtons("filter_page:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "filter_page:0", middle[0].CallbackData)
	assert.Equal(t, "noop", middle[1].CallbackData)

	last := PaginationButtons("filter_page:", 2, 3)
	require.Len(t, last, 2)
	assert.Equal(t, "filter_page:1", last[0].CallbackData)
}

func TestPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 8))
	assert.Equal(t, 1, TotalPages(8, 8))
	assert.Equal(t, 2, TotalPages(9, 8))

	assert.Equal(t, 0, ClampPage(-1, 2))
	assert.Equal(t, 1, ClampPage(5, 2))
	assert.Equal(t, 1, ClampPage(1, 2))
}

func TestCallbackData(t *testing.T) {
	assert.Equal(t, "week:20250811", WeekData(20250811))
	assert.Equal(t, "week_refresh:20250811", WeekRefreshData(20250811))
	assert.Equal(t, "week_day:20250811:20250813", WeekDayData(20250811, 20250813))
	assert.Equal(t, "lesson:20250811:42", LessonData(20250811, 42))
	assert.Equal(t, "export:ics:20250811", ExportData("ics", 20250811))
	assert.Equal(t, "filter_toggle:12-345:2", FilterToggleData("12-345", 2))

	nav := WeekNavigation(20250804, 20250811, 20250818)
	require.Len(t, nav, 3)
	assert.Equal(t, "week:20250804", nav[0].CallbackData)
	assert.Equal(t, "week:20250818", nav[2].CallbackData)
}
