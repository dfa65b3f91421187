package formatting

// pluralize выбирает форму слова для числа: одна, две-четыре, пять и больше
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeLessons возвращает правильное склонение слова "урок"
func PluralizeLessons(count int) string {
	return pluralize(count, "урок", "урока", "уроков")
}

// PluralizeCourses возвращает правильное склонение слова "курс"
func PluralizeCourses(count int) string {
	return pluralize(count, "курс", "курса", "курсов")
}

// PluralizeSchools возвращает правильное склонение слова "школа"
func PluralizeSchools(count int) string {
	return pluralize(count, "школа", "школы", "школ")
}
