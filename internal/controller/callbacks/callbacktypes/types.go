package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetAllData(telegramID int64) map[string]interface{}
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService      *service.UserService
	AccountService   *service.AccountService
	TimetableService *service.TimetableService
	CourseService    *service.CourseService
	ExportService    *service.ExportService
	StateManager     StateManager
	Location         *time.Location
	Logger           *zap.Logger
}

// Now текущее время в часовом поясе школы
func (h *Handler) Now() time.Time {
	return time.Now().In(h.Location)
}
