package handlers

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService      *service.UserService
	accountService   *service.AccountService
	timetableService *service.TimetableService
	courseService    *service.CourseService
	stateManager     *state.Manager
	location         *time.Location
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	accountService *service.AccountService,
	timetableService *service.TimetableService,
	courseService *service.CourseService,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:      userService,
		accountService:   accountService,
		timetableService: timetableService,
		courseService:    courseService,
		stateManager:     stateManager,
		location:         location,
		logger:           logger,
	}
}

func (h *Handlers) now() time.Time {
	return time.Now().In(h.location)
}
