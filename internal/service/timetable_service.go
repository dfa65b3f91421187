package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/cache"
	"github.com/Freeeeeet/timetable_bot/internal/metrics"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

// WeekResult неделя, готовая к показу, и сведения об источнике данных
type WeekResult struct {
	Week       *timetable.Week
	Account    *model.Account
	SchoolYear string
	LastImport time.Time
	FetchedAt  time.Time
	FromCache  bool
	Filtered   bool
}

type TimetableService struct {
	accounts AccountStore
	marked   MarkedCourseStore
	sessions sessionOpener
	cache    cache.WeekCache
	cacheTTL time.Duration
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewTimetableService(
	accounts AccountStore,
	marked MarkedCourseStore,
	api UntisAPI,
	box Sealer,
	weekCache cache.WeekCache,
	cacheTTL time.Duration,
	location *time.Location,
	logger *zap.Logger,
) *TimetableService {
	return &TimetableService{
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

// CurrentWeek понедельник текущей недели в часовом поясе школы
func (s *TimetableService) CurrentWeek() model.Date {
	return timetable.PreviousMonday(s.now().In(s.location))
}

// Week строит неделю пользователя. refresh=true игнорирует кэш.
func (s *TimetableService) Week(ctx context.Context, userID int64, weekStart model.Date, refresh bool) (*WeekResult, error) {
	acc, err := s.account(ctx, userID)
	if err != nil {
		return nil, err
	}

	keys, err := s.marked.List(ctx, userID, acc.Namespace())
	if err != nil {
		return nil, fmt.Errorf("load marked courses: %w", err)
	}

	snap, fromCache, err := s.snapshot(ctx, acc, weekStart, refresh)
	if err != nil {
		return nil, err
	}

	week := timetable.Build(timetable.Input{
		WeekStart: weekStart,
		Lessons:   snap.Lessons,
		Grid:      timetable.SelectGrid(snap.Timegrid),
		Holidays:  snap.Holidays,
		Marked:    timetable.NewMarkedSet(keys...),
		Viewer:    timetable.Viewer{PersonID: acc.PersonID, KlasseID: acc.KlasseID},
	})

	for _, skipped := range week.Skipped {
		s.logger.Warn("Skipping malformed lesson",
			zap.Int64("user_id", userID),
			zap.Int("week_start", int(weekStart)),
			zap.Error(skipped),
		)
	}
	metrics.SkippedLessons.Add(float64(len(week.Skipped)))

	source := metrics.SourceRemote
	if fromCache {
		source = metrics.SourceCache
	}
	metrics.TimetableBuilds.WithLabelValues(source).Inc()

	return &WeekResult{
		Week:       week,
		Account:    acc,
		SchoolYear: snap.SchoolYear,
		LastImport: snap.LastImport,
		FetchedAt:  snap.FetchedAt,
		FromCache:  fromCache,
		Filtered:   len(keys) > 0,
	}, nil
}

// Lesson урок недели для подробного просмотра
func (s *TimetableService) Lesson(ctx context.Context, userID int64, weekStart model.Date, lessonID int64) (timetable.Entry, error) {
	res, err := s.Week(ctx, userID, weekStart, false)
	if err != nil {
		return timetable.Entry{}, err
	}

	entry, ok := res.Week.Find(lessonID)
	if !ok {
		return timetable.Entry{}, ErrLessonNotFound
	}
	return entry, nil
}

// Prefetch обновляет в кэше текущую неделю всех аккаунтов.
// Ошибки отдельных аккаунтов логируются и не прерывают обход.
func (s *TimetableService) Prefetch(ctx context.Context) (int, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list accounts: %w", err)
	}

	weekStart := s.CurrentWeek()
	warmed := 0
	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}

		if _, _, err := s.snapshot(ctx, acc, weekStart, true); err != nil {
			s.logger.Warn("Prefetch failed",
				zap.Int64("user_id", acc.UserID),
				zap.Error(err),
			)
			continue
		}
		warmed++
	}

	return warmed, nil
}

func (s *TimetableService) account(ctx context.Context, userID int64) (*model.Account, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if acc == nil {
		return nil, ErrAccountNotLinked
	}
	return acc, nil
}

// snapshot берёт неделю из кэша или загружает с сервера
func (s *TimetableService) snapshot(ctx context.Context, acc *model.Account, weekStart model.Date, refresh bool) (*cache.Snapshot, bool, error) {
	key := cache.WeekKey(acc.Namespace(), weekStart)

	if !refresh {
		snap, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Week cache read failed", zap.String("key", key), zap.Error(err))
		}
		if snap != nil {
			return snap, true, nil
		}
	}

	snap, err := s.fetchWeek(ctx, acc, weekStart)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, key, snap, s.cacheTTL); err != nil {
		s.logger.Warn("Week cache write failed", zap.String("key", key), zap.Error(err))
	}

	if err := s.accounts.UpdateSchoolInfo(ctx, acc.UserID, snap.SchoolYear, snap.LastImport); err != nil {
		s.logger.Warn("Failed to store school info", zap.Int64("user_id", acc.UserID), zap.Error(err))
	}

	return snap, false, nil
}

func (s *TimetableService) fetchWeek(ctx context.Context, acc *model.Account, weekStart model.Date) (*cache.Snapshot, error) {
	snap := &cache.Snapshot{FetchedAt: s.now()}
	api := s.sessions.api

	err := s.sessions.withSession(ctx, acc, func(sess *untis.Session) error {
		var err error

		snap.Timegrid, err = api.Timegrid(ctx, sess)
		if err != nil {
			return fmt.Errorf("get timegrid: %w", err)
		}

		snap.Lessons, err = api.Timetable(ctx, sess, weekStart, timetable.FridayOfWeek(weekStart))
		if err != nil {
			return fmt.Errorf("get timetable: %w", err)
		}

		snap.Holidays, err = api.Holidays(ctx, sess)
		if err != nil {
			return fmt.Errorf("get holidays: %w", err)
		}

		// учебный год и время импорта только для подписи
		year, err := api.CurrentSchoolYear(ctx, sess)
		if err != nil {
			s.logger.Debug("School year unavailable", zap.Int64("user_id", acc.UserID), zap.Error(err))
		} else {
			snap.SchoolYear = year.Name
		}

		snap.LastImport, err = api.LatestImportTime(ctx, sess)
		if err != nil {
			s.logger.Debug("Latest import time unavailable", zap.Int64("user_id", acc.UserID), zap.Error(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}
