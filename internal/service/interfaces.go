package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

var (
	ErrAccountNotLinked = errors.New("untis account is not linked")
	ErrLessonNotFound   = errors.New("lesson not found in week")
	ErrQueryTooShort    = errors.New("school search query is too short")
	ErrNothingToExport  = errors.New("week has no lessons to export")
)

// UserStore хранилище пользователей Telegram
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// AccountStore хранилище привязанных аккаунтов WebUntis
type AccountStore interface {
	Upsert(ctx context.Context, a *model.Account) error
	GetByUserID(ctx context.Context, userID int64) (*model.Account, error)
	Delete(ctx context.Context, userID int64) error
	ListAll(ctx context.Context) ([]*model.Account, error)
	UpdateSchoolInfo(ctx context.Context, userID int64, schoolYear string, lastImport time.Time) error
}

// MarkedCourseStore хранилище отмеченных курсов
type MarkedCourseStore interface {
	List(ctx context.Context, userID int64, namespace string) ([]string, error)
	Replace(ctx context.Context, userID int64, namespace string, keys []string) error
}

// UntisAPI вызовы WebUntis, которые нужны сервисам
type UntisAPI interface {
	Authenticate(ctx context.Context, creds untis.Credentials) (*untis.Session, error)
	Logout(ctx context.Context, s *untis.Session) error
	Timetable(ctx context.Context, s *untis.Session, from, to model.Date) ([]model.Lesson, error)
	Timegrid(ctx context.Context, s *untis.Session) ([]model.TimegridDay, error)
	Holidays(ctx context.Context, s *untis.Session) ([]model.Holiday, error)
	CurrentSchoolYear(ctx context.Context, s *untis.Session) (model.SchoolYear, error)
	LatestImportTime(ctx context.Context, s *untis.Session) (time.Time, error)
	SearchSchools(ctx context.Context, query string) ([]model.School, error)
}

// Sealer шифрование сохранённых паролей
type Sealer interface {
	SealString(s string) ([]byte, error)
	OpenString(sealed []byte) (string, error)
}
