package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func setupCourseService() (*CourseService, *fakeUntis, *fakeMarked) {
	accounts := newFakeAccounts(testAccount())
	marked := newFakeMarked()
	api := newFakeUntis()
	api.lessons = testLessons()

	svc := NewCourseService(accounts, marked, api, fakeSealer{}, newFakeCache(), time.Hour, time.UTC, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc, api, marked
}

func TestCourseService_Courses(t *testing.T) {
	svc, api, _ := setupCourseService()
	ctx := context.Background()

	list, err := svc.Courses(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, [2]model.Date{20250728, 20250829}, api.ranges[0])

	keys := make([]string, 0, len(list.Courses))
	for _, c := range list.Courses {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"1-9", "2-5"}, keys)
	assert.Equal(t, 0, list.Marked.Len())

	_, err = svc.Courses(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls["timetable"])
}

func TestCourseService_Toggle(t *testing.T) {
	svc, _, marked := setupCourseService()
	ctx := context.Background()

	set, err := svc.Toggle(ctx, 1, "1-9")
	require.NoError(t, err)
	assert.True(t, set.Has("1-9"))
	assert.Equal(t, []string{"1-9"}, marked.keys["1|anna@demo"])

	set, err = svc.Toggle(ctx, 1, "2-5")
	require.NoError(t, err)
	assert.Equal(t, []string{"1-9", "2-5"}, set.Keys())

	set, err = svc.Toggle(ctx, 1, "1-9")
	require.NoError(t, err)
	assert.Equal(t, []string{"2-5"}, set.Keys())

	require.NoError(t, svc.Clear(ctx, 1))
	current, err := svc.Marked(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Len())
}

func TestCourseService_NotLinked(t *testing.T) {
	svc, _, _ := setupCourseService()

	_, err := svc.Toggle(context.Background(), 2, "1-9")
	assert.ErrorIs(t, err, ErrAccountNotLinked)
}
