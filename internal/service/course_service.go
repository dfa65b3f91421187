package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/cache"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

// CourseList курсы из окна CourseRange и текущие отметки пользователя
type CourseList struct {
	Courses []model.Course
	Marked  timetable.MarkedSet
}

type CourseService struct {
	accounts AccountStore
	marked   MarkedCourseStore
	sessions sessionOpener
	cache    cache.WeekCache
	cacheTTL time.Duration
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewCourseService(
	accounts AccountStore,
	marked MarkedCourseStore,
	api UntisAPI,
	box Sealer,
	weekCache cache.WeekCache,
	cacheTTL time.Duration,
	location *time.Location,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		accounts: accounts,
		marked:   marked,
		sessions: sessionOpener{api: api, box: box, logger: logger},
		cache:    weekCache,
		cacheTTL: cacheTTL,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Courses список различных курсов за несколько недель вокруг текущей
func (s *CourseService) Courses(ctx context.Context, userID int64) (*CourseList, error) {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessons(ctx, acc)
	if err != nil {
		return nil, err
	}

	marked, err := s.load(ctx, acc)
	if err != nil {
		return nil, err
	}

	return &CourseList{
		Courses: timetable.DistinctCourses(timetable.DropPlaceholders(lessons)),
		Marked:  marked,
	}, nil
}

// Marked текущие отметки пользователя
func (s *CourseService) Marked(ctx context.Context, userID int64) (timetable.MarkedSet, error) {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return timetable.MarkedSet{}, err
	}
	return s.load(ctx, acc)
}

// Toggle отмечает курс или снимает отметку и сохраняет результат
func (s *CourseService) Toggle(ctx context.Context, userID int64, key string) (timetable.MarkedSet, error) {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return timetable.MarkedSet{}, err
	}

	current, err := s.load(ctx, acc)
	if err != nil {
		return timetable.MarkedSet{}, err
	}

	next := current.Toggle(key)
	if err := s.marked.Replace(ctx, userID, acc.Namespace(), next.Keys()); err != nil {
		return timetable.MarkedSet{}, fmt.Errorf("save marked courses: %w", err)
	}

	s.logger.Debug("Course toggled",
		zap.Int64("user_id", userID),
		zap.String("course_key", key),
		zap.Bool("marked", next.Has(key)),
	)

	return next, nil
}

// Clear снимает все отметки: фильтр выключается
func (s *CourseService) Clear(ctx context.Context, userID int64) error {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.marked.Replace(ctx, userID, acc.Namespace(), nil); err != nil {
		return fmt.Errorf("clear marked courses: %w", err)
	}
	return nil
}

func (s *CourseService) account(ctx context.Context, userID int64) (*model.Account, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if acc == nil {
		return nil, ErrAccountNotLinked
	}
	return acc, nil
}

func (s *CourseService) load(ctx context.Context, acc *model.Account) (timetable.MarkedSet, error) {
	keys, err := s.marked.List(ctx, acc.UserID, acc.Namespace())
	if err != nil {
		return timetable.MarkedSet{}, fmt.Errorf("load marked courses: %w", err)
	}
	return timetable.NewMarkedSet(keys...), nil
}

// lessons уроки окна CourseRange, из кэша если есть
func (s *CourseService) lessons(ctx context.Context, acc *model.Account) ([]model.Lesson, error) {
	key := cache.CoursesKey(acc.Namespace())

	snap, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Course cache read failed", zap.String("key", key), zap.Error(err))
	}
	if snap != nil {
		return snap.Lessons, nil
	}

	from, to := timetable.CourseRange(s.now().In(s.location))

	var lessons []model.Lesson
	err = s.sessions.withSession(ctx, acc, func(sess *untis.Session) error {
		var err error
		lessons, err = s.sessions.api.Timetable(ctx, sess, from, to)
		if err != nil {
			return fmt.Errorf("get timetable %s..%s: %w", from, to, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	snap = &cache.Snapshot{Lessons: lessons, FetchedAt: s.now()}
	if err := s.cache.Set(ctx, key, snap, s.cacheTTL); err != nil {
		s.logger.Warn("Course cache write failed", zap.String("key", key), zap.Error(err))
	}

	return lessons, nil
}
