package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/Freeeeeet/timetable_bot/internal/timetable"
	"github.com/go-telegram/bot/models"
)

const (
	CoursesPerPage   = 8
	MaxSchoolChoices = 8
)

// BuildMainMenu формирует главное меню. acc == nil - аккаунт не привязан.
func BuildMainMenu(user *model.User, acc *model.Account, currentWeek model.Date) (string, *models.InlineKeyboardMarkup) {
	name := "друг"
	if user != nil && user.FirstName != "" {
		name = user.FirstName
	}

	if acc == nil {
		text := fmt.Sprintf("📋 <b>Главное меню</b>\n\n"+
			"Привет, %s! Чтобы смотреть расписание, привяжите аккаунт WebUntis.", html.EscapeString(name))
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🔑 Войти в WebUntis", callbacktypes.LoginStart)).
			Build()
		return text, kb
	}

	school := acc.SchoolName
	if school == "" {
		school = acc.School
	}

	text := fmt.Sprintf("📋 <b>Главное меню</b>\n\n"+
		"👤 %s\n"+
		"🏫 %s\n\n"+
		"/week - расписание на неделю\n"+
		"/filter - выбор курсов\n"+
		"/export - выгрузка недели\n"+
		"/logout - отвязать аккаунт",
		html.EscapeString(acc.Username),
		html.EscapeString(school),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Расписание", keyboard.WeekData(currentWeek))).
		Row(keyboard.Button("🎯 Фильтр курсов", fmt.Sprintf("%s0", callbacktypes.FilterPage))).
		Row(keyboard.Button("🚪 Выйти", callbacktypes.LogoutAsk)).
		Build()

	return text, kb
}

// BuildWeekCaption подпись к картинке недели
func BuildWeekCaption(res *service.WeekResult, loc *time.Location) string {
	w := res.Week

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Неделя %s</b>\n", formatting.FormatWeekRange(w.Start, w.End))

	if res.Filtered {
		sb.WriteString("🎯 Показаны только отмеченные курсы\n")
	}

	for _, d := range w.Days {
		if d.IsHoliday() {
			fmt.Fprintf(&sb, "🏖 %s: %s\n",
				formatting.GetWeekdayShort(int(d.Date.Weekday())), html.EscapeString(d.Holiday))
		}
	}

	if w.Empty() {
		sb.WriteString("📭 Уроков нет\n")
	} else {
		n := len(w.Entries())
		fmt.Fprintf(&sb, "📚 %d %s\n", n, formatting.PluralizeLessons(n))
	}

	if n := len(w.Skipped); n > 0 {
		fmt.Fprintf(&sb, "⚠️ Пропущено %d %s с неполными данными\n", n, formatting.PluralizeLessons(n))
	}

	sb.WriteString("\n")
	if res.SchoolYear != "" {
		fmt.Fprintf(&sb, "🎓 Учебный год: %s\n", html.EscapeString(res.SchoolYear))
	}
	if !res.LastImport.IsZero() {
		fmt.Fprintf(&sb, "🕓 Данные WebUntis от %s\n", formatting.FormatDateTime(res.LastImport.In(loc)))
	}
	if res.FromCache {
		fmt.Fprintf(&sb, "♻️ Загружено %s", formatting.FormatDateTime(res.FetchedAt.In(loc)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// BuildWeekKeyboard навигация по неделям, дни, фильтр и выгрузка
func BuildWeekKeyboard(w *timetable.Week, today model.Date) *models.InlineKeyboardMarkup {
	dayButtons := make([]models.InlineKeyboardButton, 0, len(w.Days))
	for _, d := range w.Days {
		label := formatting.GetWeekdayShort(int(d.Date.Weekday()))
		if d.IsHoliday() {
			label = "🏖 " + label
		}
		dayButtons = append(dayButtons, keyboard.Button(label, keyboard.WeekDayData(w.Start, d.Date)))
	}

	return keyboard.NewBuilder().
		Row(keyboard.WeekNavigation(
			timetable.StepWeek(w.Start, timetable.Prev),
			today,
			timetable.StepWeek(w.Start, timetable.Next),
		)...).
		Row(dayButtons...).
		Row(
			keyboard.Button("🔄 Обновить", keyboard.WeekRefreshData(w.Start)),
			keyboard.Button("🎯 Фильтр", fmt.Sprintf("%s0", callbacktypes.FilterPage)),
		).
		Row(keyboard.ExportButtons(w.Start)...).
		AddBackToMainButton().
		Build()
}

// BuildDayScreen список уроков дня в порядке сетки
func BuildDayScreen(w *timetable.Week, dayIdx int) (string, *models.InlineKeyboardMarkup) {
	day := w.Days[dayIdx]
	entries := w.DayEntries(dayIdx)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>\n\n", formatting.FormatDateWithWeekday(day.Date))

	if day.IsHoliday() {
		fmt.Fprintf(&sb, "🏖 %s\n\n", html.EscapeString(day.Holiday))
	}

	if len(entries) == 0 {
		sb.WriteString("Уроков нет.")
	}
	for _, e := range entries {
		sb.WriteString(formatting.FormatLessonLine(e))
		sb.WriteString("\n")
	}
	if hasInfo(entries) {
		sb.WriteString("\nℹ️ - есть дополнительная информация")
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(entries))
	for _, e := range entries {
		buttons = append(buttons, keyboard.Button(formatting.FormatLessonButton(e), keyboard.LessonData(w.Start, e.Lesson.ID)))
	}

	kb := keyboard.NewBuilder().
		Grid(2, buttons...).
		AddBackButton(keyboard.WeekData(w.Start)).
		Build()

	return strings.TrimRight(sb.String(), "\n"), kb
}

func hasInfo(entries []timetable.Entry) bool {
	for _, e := range entries {
		if e.HasAdditionalInfo {
			return true
		}
	}
	return false
}

// BuildLessonScreen карточка урока
func BuildLessonScreen(e timetable.Entry, weekStart model.Date) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.BackButton(keyboard.WeekDayData(weekStart, e.Lesson.Date)),
			keyboard.Button("📅 К неделе", keyboard.WeekData(weekStart)),
		).
		Build()
	return formatting.FormatLessonDetails(e), kb
}

// BuildFilterScreen страница списка курсов с отметками
func BuildFilterScreen(list *service.CourseList, page int, currentWeek model.Date) (string, *models.InlineKeyboardMarkup) {
	total := len(list.Courses)
	pages := keyboard.TotalPages(total, CoursesPerPage)
	page = keyboard.ClampPage(page, pages)

	var sb strings.Builder
	sb.WriteString("🎯 <b>Фильтр курсов</b>\n\n")
	if total == 0 {
		sb.WriteString("В ближайшие недели курсов не найдено.")
	} else {
		fmt.Fprintf(&sb, "Найдено %d %s, отмечено %d.\n", total, formatting.PluralizeCourses(total), list.Marked.Len())
		sb.WriteString("Если ничего не отмечено, в расписании показываются все уроки.")
	}

	b := keyboard.NewBuilder()

	from := page * CoursesPerPage
	to := from + CoursesPerPage
	if to > total {
		to = total
	}
	for _, c := range list.Courses[from:to] {
		mark := "▫️"
		if list.Marked.Has(c.Key) {
			mark = "✅"
		}
		label := fmt.Sprintf("%s %s · %s", mark, c.SubjectName, c.TeacherName)
		b.Row(keyboard.Button(label, keyboard.FilterToggleData(c.Key, page)))
	}

	b.AddPagination(callbacktypes.FilterPage, page, pages)
	if list.Marked.Len() > 0 {
		b.Row(keyboard.Button("🧹 Сбросить фильтр", callbacktypes.FilterClear))
	}
	b.Row(keyboard.Button("📅 К расписанию", keyboard.WeekData(currentWeek)))
	b.AddBackToMainButton()

	return sb.String(), b.Build()
}

// BuildSchoolPicker кнопки выбора школы из результатов поиска
func BuildSchoolPicker(schools []model.School) (string, *models.InlineKeyboardMarkup) {
	n := len(schools)
	text := fmt.Sprintf("🏫 Найдено %d %s. Выберите свою:", n, formatting.PluralizeSchools(n))

	b := keyboard.NewBuilder()
	for i, s := range schools {
		label := s.DisplayName
		if s.Address != "" {
			label += ", " + s.Address
		}
		b.Row(keyboard.Button(label, fmt.Sprintf("%s%d", callbacktypes.LoginSchool, i)))
	}
	b.AddBackToMainButton()

	return text, b.Build()
}

// BuildLogoutConfirm подтверждение отвязки аккаунта
func BuildLogoutConfirm(acc *model.Account) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("🚪 Отвязать аккаунт <b>%s</b>?\n\n"+
		"Отмеченные курсы сохранятся и вернутся при следующем входе.",
		html.EscapeString(acc.Username))

	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelButtons(callbacktypes.LogoutConfirm, callbacktypes.BackToMain)...).
		Build()

	return text, kb
}

// LoginSchoolPrompt первый шаг диалога входа
const LoginSchoolPrompt = "🔑 <b>Вход в WebUntis</b>\n\n" +
	"Шаг 1 из 3: введите название школы или город (минимум 3 символа).\n\n" +
	"Для отмены используйте /cancel"

// FormatUsernamePrompt второй шаг диалога входа
func FormatUsernamePrompt(school model.School) string {
	return fmt.Sprintf("🏫 <b>%s</b>\n\n"+
		"Шаг 2 из 3: введите логин WebUntis.\n\n"+
		"Для отмены используйте /cancel", html.EscapeString(school.DisplayName))
}

// FormatPasswordPrompt третий шаг диалога входа
func FormatPasswordPrompt(username string) string {
	return fmt.Sprintf("👤 <b>%s</b>\n\n"+
		"Шаг 3 из 3: введите пароль. Сообщение с паролем будет сразу удалено, "+
		"а сам пароль хранится в зашифрованном виде.\n\n"+
		"Для отмены используйте /cancel", html.EscapeString(username))
}
