package models

import "time"

// AccessLogEntry представляет запись журнала проверок доступа.
// Журнал append-only, пишется в режиме best-effort: ошибка записи
// никогда не блокирует действие, которое её вызвало.
type AccessLogEntry struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	Plan      string    `json:"plan"`
	Entitled  bool      `json:"entitled"`
	CreatedAt time.Time `json:"created_at"`
}
