// Серверные модели хранимых сущностей
package models

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	LastLogin    *time.Time
	DateJoined   time.Time
}

// Token — выданный API-токен. Сам токен не хранится, только sha256 от него.
type Token struct {
	ID         int64
	UserID     int64
	ExpiresAt  *time.Time
	UserActive bool
}

// Expired сообщает, истёк ли токен к моменту now. Токен без срока не истекает.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
