package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
)

var testNow = time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC)

func setupTimetableService(accs ...*model.Account) (*TimetableService, *fakeUntis, *fakeMarked, *fakeCache, *fakeAccounts) {
	accounts := newFakeAccounts(accs...)
	marked := newFakeMarked()
	api := newFakeUntis()
	api.lessons = testLessons()
	api.grid = testGrid()
	api.holidays = []model.Holiday{{ID: 1, Name: "FT", LongName: "Feiertag", StartDate: 20250815, EndDate: 20250815}}
	c := newFakeCache()

	svc := NewTimetableService(accounts, marked, api, fakeSealer{}, c, time.Hour, time.UTC, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, api, marked, c, accounts
}

func TestTimetableService_Week(t *testing.T) {
	svc, api, _, _, accounts := setupTimetableService(testAccount())
	ctx := context.Background()

	assert.Equal(t, model.Date(20250811), svc.CurrentWeek())

	res, err := svc.Week(ctx, 1, 20250811, false)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.False(t, res.Filtered)
	assert.Equal(t, "2025/2026", res.SchoolYear)
	assert.Equal(t, [2]model.Date{20250811, 20250815}, api.ranges[0])

	w := res.Week
	require.Len(t, w.Days, 5)
	require.Len(t, w.Skipped, 1)
	assert.Equal(t, "Feiertag", w.Days[4].Holiday)
	assert.Len(t, w.Entries(), 4)

	sub, ok := w.Find(2)
	require.True(t, ok)
	assert.Equal(t, timetable.CategorySubstituted, sub.Category)
	assert.Equal(t, "SCH (MUE)", sub.Teacher)

	cancelled, ok := w.Find(3)
	require.True(t, ok)
	assert.Equal(t, timetable.CategoryCancelled, cancelled.Category)

	assert.Equal(t, 1, api.logouts)
	assert.Equal(t, "2025/2026", accounts.schoolInfo[1])
}

func TestTimetableService_Week_UsesCache(t *testing.T) {
	svc, api, _, _, _ := setupTimetableService(testAccount())
	ctx := context.Background()

	_, err := svc.Week(ctx, 1, 20250811, false)
	require.NoError(t, err)

	res, err := svc.Week(ctx, 1, 20250811, false)
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Equal(t, 1, api.calls["timetable"])

	res, err = svc.Week(ctx, 1, 20250811, true)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 2, api.calls["timetable"])

	_, err = svc.Week(ctx, 1, 20250818, false)
	require.NoError(t, err)
	assert.Equal(t, 3, api.calls["timetable"])
}

func TestTimetableService_Week_MarkedFilter(t *testing.T) {
	svc, _, marked, _, _ := setupTimetableService(testAccount())
	ctx := context.Background()
	require.NoError(t, marked.Replace(ctx, 1, "anna@demo", []string{"1-9"}))

	res, err := svc.Week(ctx, 1, 20250811, false)
	require.NoError(t, err)
	assert.True(t, res.Filtered)

	var ids []int64
	for _, e := range res.Week.Entries() {
		ids = append(ids, e.Lesson.ID)
	}
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestTimetableService_Week_NotLinked(t *testing.T) {
	svc, _, _, _, _ := setupTimetableService()

	_, err := svc.Week(context.Background(), 1, 20250811, false)
	assert.ErrorIs(t, err, ErrAccountNotLinked)
}

func TestTimetableService_Lesson(t *testing.T) {
	svc, _, _, _, _ := setupTimetableService(testAccount())
	ctx := context.Background()

	e, err := svc.Lesson(ctx, 1, 20250811, 1)
	require.NoError(t, err)
	assert.Equal(t, "MA", e.Subject)
	assert.Equal(t, timetable.CategoryNormal, e.Category)

	_, err = svc.Lesson(ctx, 1, 20250811, 4)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestTimetableService_Prefetch(t *testing.T) {
	broken := testAccount()
	broken.UserID = 2
	broken.School = "Broken"

	svc, api, _, c, _ := setupTimetableService(testAccount(), broken)
	api.failTimetable["Broken"] = true

	warmed, err := svc.Prefetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, warmed)
	assert.Contains(t, c.items, "week:anna@demo:20250811")
	assert.Equal(t, 2, api.logouts)
}
