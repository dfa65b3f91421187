package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func TestPreviousMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want model.Date
	}{
		{"monday", time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC), 20250811},
		{"wednesday", time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC), 20250811},
		{"sunday", time.Date(2025, 8, 17, 23, 59, 0, 0, time.UTC), 20250811},
		{"across year end", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), 20241230},
		{"across month end", time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), 20250224},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviousMonday(tt.now))
		})
	}
}

func TestFridayOfWeek_SameWeekForEveryMonday(t *testing.T) {
	for d := model.Date(20231225); d <= 20270105; d = d.AddDays(1) {
		monday := PreviousMonday(d.Time())
		friday := FridayOfWeek(monday)

		require.Equal(t, time.Monday, monday.Weekday(), "date %s", d)
		assert.Equal(t, time.Friday, friday.Weekday(), "date %s", d)
		assert.GreaterOrEqual(t, friday, monday)
		assert.LessOrEqual(t, friday, monday.AddDays(4))
	}
}

func TestFridayOfWeek_ForwardOnly(t *testing.T) {
	assert.Equal(t, model.Date(20250815), FridayOfWeek(20250815))
	assert.Equal(t, model.Date(20250822), FridayOfWeek(20250816))
	assert.Equal(t, model.Date(20250822), FridayOfWeek(20250817))
	assert.Equal(t, model.Date(20260102), FridayOfWeek(20251229))
}

func TestStepWeek(t *testing.T) {
	tests := []struct {
		name string
		from model.Date
		next model.Date
	}{
		{"plain", 20250811, 20250818},
		{"month end", 20250825, 20250901},
		{"year end", 20251231, 20260107},
		{"leap february", 20240226, 20240304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := StepWeek(tt.from, Next)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.from, StepWeek(next, Prev))
		})
	}
}

func TestStepWeek_RoundTrip(t *testing.T) {
	for d := model.Date(20241201); d <= 20260131; d = d.AddDays(1) {
		assert.Equal(t, d, StepWeek(StepWeek(d, Next), Prev), "date %s", d)
		assert.Equal(t, d, StepWeek(StepWeek(d, Prev), Next), "date %s", d)
	}
}

func TestEnumerateDays(t *testing.T) {
	days := EnumerateDays(20250828, 20250902)
	assert.Equal(t, []model.Date{20250828, 20250829, 20250830, 20250831, 20250901, 20250902}, days)

	assert.Equal(t, []model.Date{20250101}, EnumerateDays(20250101, 20250101))
	assert.Empty(t, EnumerateDays(20250902, 20250828))
}

func TestEnumerateDays_Length(t *testing.T) {
	pairs := [][2]model.Date{
		{20250101, 20250131},
		{20241220, 20250110},
		{20240201, 20240301},
		{20250811, 20250815},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		want := int(b.Time().Sub(a.Time()).Hours()/24) + 1
		assert.Len(t, EnumerateDays(a, b), want)
		assert.Len(t, EnumerateDays(b, a), 0)
	}
}

func TestIsHoliday(t *testing.T) {
	holidays := []model.Holiday{
		{ID: 1, Name: "Sommer", LongName: "Sommerferien", StartDate: 20250801, EndDate: 20250820},
	}

	name, ok := IsHoliday(20250810, holidays)
	assert.True(t, ok)
	assert.Equal(t, "Sommerferien", name)

	for _, d := range []model.Date{20250801, 20250820} {
		_, ok = IsHoliday(d, holidays)
		assert.True(t, ok, "boundary %s", d)
	}

	name, ok = IsHoliday(20250821, holidays)
	assert.False(t, ok)
	assert.Empty(t, name)

	_, ok = IsHoliday(20250810, nil)
	assert.False(t, ok)
}

func TestIsHoliday_FirstMatchWins(t *testing.T) {
	holidays := []model.Holiday{
		{ID: 1, Name: "Herbst", StartDate: 20251020, EndDate: 20251031},
		{ID: 2, Name: "Brücke", LongName: "Brückentag", StartDate: 20251031, EndDate: 20251031},
	}

	name, ok := IsHoliday(20251031, holidays)
	require.True(t, ok)
	assert.Equal(t, "Herbst", name)

	h, ok := HolidayOn(20251031, holidays)
	require.True(t, ok)
	assert.Equal(t, int64(1), h.ID)
}

func TestCourseRange(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		from, to model.Date
	}{
		{"wednesday", time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC), 20250728, 20250829},
		{"friday jumps to next friday", time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), 20250728, 20250905},
		{"sunday", time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC), 20250728, 20250905},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := CourseRange(tt.now)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}
