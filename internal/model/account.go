package model

import (
	"strings"
	"time"
)

// Account привязанная учётная запись WebUntis пользователя
type Account struct {
	UserID         int64      `json:"user_id"`
	Server         string     `json:"server"`
	School         string     `json:"school"`
	SchoolName     string     `json:"school_name"`
	Username       string     `json:"username"`
	SealedPassword []byte     `json:"-"` // пароль, зашифрованный secret.Box
	PersonID       int64      `json:"person_id"`
	PersonType     int        `json:"person_type"`
	KlasseID       int64      `json:"klasse_id"`
	SchoolYear     string     `json:"school_year"`
	LastImport     *time.Time `json:"last_import"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Namespace ключ пространства отмеченных курсов: логин@школа в нижнем регистре
func (a *Account) Namespace() string {
	return strings.ToLower(a.Username) + "@" + strings.ToLower(a.School)
}
