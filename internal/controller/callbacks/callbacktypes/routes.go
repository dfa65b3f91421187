package callbacktypes

// Форматы callback data. Даты передаются как YYYYMMDD.
const (
	BackToMain = "back_to_main"
	Noop       = "noop"

	Week        = "week:"         // week:20250811
	WeekRefresh = "week_refresh:" // week_refresh:20250811
	WeekDay     = "week_day:"     // week_day:20250811:20250813
	Lesson      = "lesson:"       // lesson:20250811:123456

	FilterPage   = "filter_page:"   // filter_page:0
	FilterToggle = "filter_toggle:" // filter_toggle:12-345:0 (курс:страница)
	FilterClear  = "filter_clear"

	Export = "export:" // export:xlsx:20250811

	LoginStart    = "login_start"
	LoginSchool   = "login_school:" // login_school:2 (индекс в результатах поиска)
	LogoutAsk     = "logout_ask"
	LogoutConfirm = "logout_confirm"
)

// Форматы выгрузки
const (
	ExportXLSX = "xlsx"
	ExportICS  = "ics"
)
