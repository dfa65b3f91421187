package model

import (
	"fmt"
	"strconv"
	"time"
)

// Date дата в формате WebUntis: YYYY*10000 + MM*100 + DD (например 20250818)
type Date int

// Clock время в формате WebUntis: HH*100 + MM (например 935 = 09:35)
type Clock int

// NewDate собирает Date из компонентов
func NewDate(year int, month time.Month, day int) Date {
	return Date(year*10000 + int(month)*100 + day)
}

// DateOf возвращает календарную дату t (в часовом поясе t)
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Year() int         { return int(d) / 10000 }
func (d Date) Month() time.Month { return time.Month(int(d) % 10000 / 100) }
func (d Date) Day() int          { return int(d) % 100 }

// Time переводит дату в полночь UTC. Невалидные компоненты нормализуются календарём.
func (d Date) Time() time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Valid проверяет что дата существует в календаре
func (d Date) Valid() bool {
	if d <= 0 {
		return false
	}
	return DateOf(d.Time()) == d
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekday день недели даты
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// ParseDate разбирает строку вида 20250818
func ParseDate(s string) (Date, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}
	d := Date(v)
	if !d.Valid() {
		return 0, fmt.Errorf("parse date %q: invalid calendar date", s)
	}
	return d, nil
}

func (c Clock) Hour() int   { return int(c) / 100 }
func (c Clock) Minute() int { return int(c) % 100 }

// Minutes количество минут от полуночи
func (c Clock) Minutes() int {
	return c.Hour()*60 + c.Minute()
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
