package handlers

import "github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"

// Ограничения диалога входа
const (
	UsernameMaxLength = 100
	PasswordMaxLength = 200

	// Больше кнопок со школами не показываем, просим уточнить запрос
	MaxSchoolsShown = common.MaxSchoolChoices
)
