package models

import "time"

// UserWithSubscription объединяет пользователя с данными его подписки
// для административной панели.
type UserWithSubscription struct {
	UID       string     `json:"uid"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	TrialEnd  *time.Time `json:"trial_end,omitempty"`
}

// SubscriptionStat количество подписок с заданными планом и статусом.
type SubscriptionStat struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}
