package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Диалог привязки аккаунта WebUntis (/login)
	StateLoginSchoolQuery UserState = "login_school_query"
	StateLoginPickSchool  UserState = "login_pick_school"
	StateLoginUsername    UserState = "login_username"
	StateLoginPassword    UserState = "login_password"
)

// Ключи временных данных диалога
const (
	DataSchools  = "schools"  // []model.School - результаты поиска
	DataSchool   = "school"   // model.School - выбранная школа
	DataUsername = "username" // string
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
