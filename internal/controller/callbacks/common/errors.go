package common

import (
	"errors"

	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog data expired")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "⌛ Диалог устарел. Начните заново: /login"
	case errors.Is(err, service.ErrAccountNotLinked):
		return "🔑 Аккаунт WebUntis не привязан. Используйте /login"
	case errors.Is(err, service.ErrLessonNotFound):
		return "❌ Урок не найден в этой неделе"
	case errors.Is(err, service.ErrNothingToExport):
		return "📭 На этой неделе нет уроков для выгрузки"
	case errors.Is(err, service.ErrQueryTooShort):
		return "✏️ Введите хотя бы 3 символа"
	case errors.Is(err, untis.ErrAuthFailed):
		return "❌ Неверный логин или пароль WebUntis"
	case errors.Is(err, untis.ErrTooManyResults):
		return "🔎 Найдено слишком много школ, уточните запрос"
	case errors.Is(err, untis.ErrNotAuthenticated):
		return "❌ Сессия WebUntis истекла, попробуйте ещё раз"
	case errors.Is(err, untis.ErrUnexpectedStatus):
		return "⚠️ Сервер WebUntis недоступен, попробуйте позже"
	default:
		return "❌ Произошла ошибка"
	}
}
