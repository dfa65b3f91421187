package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

func exportWeek() *timetable.Week {
	return timetable.Build(timetable.Input{
		WeekStart: 20250811,
		Lessons:   testLessons(),
		Grid:      timetable.SelectGrid(testGrid()),
		Viewer:    timetable.Viewer{PersonID: 42, KlasseID: 7},
	})
}

func TestExportService_XLSX(t *testing.T) {
	svc := NewExportService(time.UTC, zap.NewNop())

	buf, name, err := svc.XLSX(exportWeek())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "timetable_2025-08-11_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1+3)
	assert.Equal(t, "Время", rows[0][0])
	assert.Equal(t, "Пн 11.08", rows[0][1])
	assert.Equal(t, "08:00 - 08:45", rows[1][0])
	assert.Contains(t, rows[1][1], "MA")
	assert.Contains(t, rows[2][1], "MA")
}

func TestExportService_ICS(t *testing.T) {
	svc := NewExportService(time.UTC, zap.NewNop())

	out, name, err := svc.ICS(exportWeek())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".ics"))

	// урок 1 занимает два слота, но событие одно
	assert.Equal(t, 4, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 1, strings.Count(out, "STATUS:CANCELLED"))
	assert.Contains(t, out, "DTSTART:20250811T080000Z")
}

func TestExportService_EmptyWeek(t *testing.T) {
	svc := NewExportService(time.UTC, zap.NewNop())
	empty := timetable.Build(timetable.Input{WeekStart: 20250811})

	_, _, err := svc.XLSX(empty)
	assert.ErrorIs(t, err, ErrNothingToExport)
	_, _, err = svc.ICS(empty)
	assert.ErrorIs(t, err, ErrNothingToExport)
}
