package timetable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

func TestCourseKey_UsesOriginTeacher(t *testing.T) {
	plain := model.Lesson{
		ID:       1,
		Subjects: model.RefList{{ID: 1}},
		Teachers: model.RefList{{ID: 1}},
	}
	substituted := model.Lesson{
		ID:       2,
		Subjects: model.RefList{{ID: 1}},
		Teachers: model.RefList{{ID: 1, OriginID: ptr(9)}},
	}

	key, err := CourseKey(substituted)
	require.NoError(t, err)
	assert.Equal(t, "1-9", key)

	key, err = CourseKey(plain)
	require.NoError(t, err)
	assert.Equal(t, "1-1", key)
}

func TestCourseKey_StableUnderSubstitution(t *testing.T) {
	regular := model.Lesson{Subjects: model.RefList{{ID: 4}}, Teachers: model.RefList{{ID: 9}}}
	replaced := model.Lesson{Subjects: model.RefList{{ID: 4}}, Teachers: model.RefList{{ID: 17, OriginID: ptr(9)}}}

	a, err := CourseKey(regular)
	require.NoError(t, err)
	b, err := CourseKey(replaced)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCourseKey_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		lesson model.Lesson
	}{
		{"no subject", model.Lesson{ID: 5, Teachers: model.RefList{{ID: 1}}}},
		{"no teacher", model.Lesson{ID: 6, Subjects: model.RefList{{ID: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := CourseKey(tt.lesson)
			assert.Empty(t, key)
			assert.ErrorIs(t, err, ErrMalformedLesson)

			var malformed *MalformedLessonError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.lesson.ID, malformed.LessonID)
		})
	}
}

func TestDistinctCourses(t *testing.T) {
	lessons := []model.Lesson{
		{ID: 1, Subjects: model.RefList{{ID: 1, Name: "M"}}, Teachers: model.RefList{{ID: 9, Name: "Mü"}}},
		{ID: 2, Subjects: model.RefList{{ID: 1, Name: "M"}}, Teachers: model.RefList{{ID: 1, Name: "Sch", OriginID: ptr(9), OriginName: "Mü"}}},
		{ID: 3, Subjects: model.RefList{{ID: 2, Name: "D"}}, Teachers: model.RefList{{ID: 3, Name: "Kl"}}},
		{ID: 4, Subjects: nil, Teachers: model.RefList{{ID: 3}}},
		{ID: 5, Subjects: model.RefList{{ID: 1, Name: "M"}}, Teachers: model.RefList{{ID: 9, Name: "Mü"}}},
	}

	courses := DistinctCourses(lessons)
	require.Len(t, courses, 2)
	assert.Equal(t, model.Course{Key: "1-9", SubjectID: 1, TeacherID: 9, SubjectName: "M", TeacherName: "Mü"}, courses[0])
	assert.Equal(t, "2-3", courses[1].Key)
}

func TestDistinctCourses_SubstitutedPairIsOneCourse(t *testing.T) {
	lessons := []model.Lesson{
		{Subjects: model.RefList{{ID: 1}}, Teachers: model.RefList{{ID: 1, OriginID: ptr(9)}}},
		{Subjects: model.RefList{{ID: 1}}, Teachers: model.RefList{{ID: 9}}},
	}

	courses := DistinctCourses(lessons)
	require.Len(t, courses, 1)
	assert.Equal(t, "1-9", courses[0].Key)
}

func TestDropPlaceholders(t *testing.T) {
	regular := model.Lesson{ID: 1, Subjects: model.RefList{{Name: "MA"}}, Teachers: model.RefList{{Name: "MUE"}}}
	placeholder := model.Lesson{ID: 2, Subjects: model.RefList{{Name: "AG"}}, Teachers: model.RefList{{Name: "AG"}}}
	partial := model.Lesson{ID: 3, Subjects: model.RefList{{Name: "AG"}}, Teachers: model.RefList{{Name: "AG"}, {Name: "KL"}}}

	out := DropPlaceholders([]model.Lesson{regular, placeholder, partial})
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}

func TestMarkedSet_Toggle(t *testing.T) {
	empty := MarkedSet{}
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Has("1-9"))

	one := empty.Toggle("1-9")
	assert.True(t, one.Has("1-9"))
	assert.Equal(t, 0, empty.Len(), "receiver must stay unchanged")

	two := one.Toggle("2-3")
	assert.Equal(t, []string{"1-9", "2-3"}, two.Keys())

	back := two.Toggle("2-3")
	assert.Equal(t, one.Keys(), back.Keys())
	assert.True(t, two.Has("2-3"))
}

func TestMarkedSet_ToggleTwiceRestores(t *testing.T) {
	sets := []MarkedSet{
		NewMarkedSet(),
		NewMarkedSet("1-1"),
		NewMarkedSet("3-4", "1-2", "10-1"),
	}

	for _, s := range sets {
		for _, key := range []string{"1-1", "5-5"} {
			assert.Equal(t, s.Keys(), s.Toggle(key).Toggle(key).Keys())
		}
	}
}

func TestMarkedSet_KeysSorted(t *testing.T) {
	s := NewMarkedSet("3-4", "1-2", "10-1", "1-2")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"1-2", "10-1", "3-4"}, s.Keys())
}
