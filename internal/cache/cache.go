package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// Snapshot данные недели, полученные с сервера WebUntis
type Snapshot struct {
	Lessons    []model.Lesson      `json:"lessons"`
	Timegrid   []model.TimegridDay `json:"timegrid"`
	Holidays   []model.Holiday     `json:"holidays"`
	SchoolYear string              `json:"school_year"`
	LastImport time.Time           `json:"last_import"`
	FetchedAt  time.Time           `json:"fetched_at"`
}

// WeekCache кэш снимков недель. Get возвращает nil, nil при промахе.
type WeekCache interface {
	Get(ctx context.Context, key string) (*Snapshot, error)
	Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error
	Invalidate(ctx context.Context, namespace string) error
}

// WeekKey ключ недели пользователя: week:{namespace}:{weekStart}
func WeekKey(namespace string, weekStart model.Date) string {
	return fmt.Sprintf("week:%s:%d", namespace, int(weekStart))
}

// CoursesKey ключ выборки уроков для списка курсов. Лежит в том же
// пространстве, что и недели, поэтому сбрасывается вместе с ними.
func CoursesKey(namespace string) string {
	return fmt.Sprintf("week:%s:courses", namespace)
}

func namespacePattern(namespace string) string {
	return fmt.Sprintf("week:%s:*", namespace)
}

// Nop кэш-заглушка, когда redis не настроен
type Nop struct{}

func (Nop) Get(context.Context, string) (*Snapshot, error)              { return nil, nil }
func (Nop) Set(context.Context, string, *Snapshot, time.Duration) error { return nil }
func (Nop) Invalidate(context.Context, string) error                    { return nil }
