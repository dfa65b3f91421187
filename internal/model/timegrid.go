package model

// TimeSlot одна пара/урок в сетке звонков
type TimeSlot struct {
	StartTime Clock `json:"start_time"`
	EndTime   Clock `json:"end_time"`
}

// TimeGrid упорядоченная сетка звонков на учебный день
type TimeGrid []TimeSlot

// TimegridDay сетка звонков для одного дня недели (1 = воскресенье, как в WebUntis)
type TimegridDay struct {
	Day   int      `json:"day"`
	Units TimeGrid `json:"units"`
}

// Holiday каникулы или праздник, даты включительно
type Holiday struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LongName  string `json:"long_name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

// Label возвращает полное название, если оно есть
func (h Holiday) Label() string {
	if h.LongName != "" {
		return h.LongName
	}
	return h.Name
}

// SchoolYear текущий учебный год
type SchoolYear struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

// School результат поиска школы
type School struct {
	Server      string `json:"server"`
	LoginName   string `json:"login_name"`
	DisplayName string `json:"display_name"`
	Address     string `json:"address"`
}
