package common

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

func TestGenerateWeekImage(t *testing.T) {
	data, err := GenerateWeekImage(sampleWeek(), time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestGenerateWeekImage_NoGrid(t *testing.T) {
	w := timetable.Build(timetable.Input{WeekStart: 20250811})

	data, err := GenerateWeekImage(w, time.Now())
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestEntryColor(t *testing.T) {
	assert.Equal(t, entryNormalColor, entryColor(timetable.CategoryNormal))
	assert.Equal(t, entrySubstitutedColor, entryColor(timetable.CategorySubstituted))
	assert.Equal(t, entryCancelledColor, entryColor(timetable.CategoryCancelled))
	assert.Equal(t, entryIrregularColor, entryColor(timetable.CategoryIrregular))
}

func TestFitText(t *testing.T) {
	dc := gg.NewContext(200, 50)
	loadFont(dc, 14)

	assert.Equal(t, "MA", fitText(dc, "MA", 100))

	long := strings.Repeat("Mathematik ", 10)
	got := fitText(dc, long, 80)
	assert.True(t, strings.HasSuffix(got, "…"))
	w, _ := dc.MeasureString(got)
	assert.LessOrEqual(t, w, 80.0)
}
