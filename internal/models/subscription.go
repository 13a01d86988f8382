package models

import "time"

// Subscription представляет запись подписки пользователя.
// На каждого пользователя приходится ровно одна строка; создаётся при
// регистрации, изменяется только внешней биллинговой интеграцией через webhook.
type Subscription struct {
	UserUID   string     // Владелец подписки
	Plan      string     // Тарифный план: free, premium или family
	Status    string     // Статус: trial, active, expired или canceled
	TrialEnd  *time.Time // Дата окончания пробного периода (nil — не задана)
	UpdatedAt time.Time  // Дата последнего изменения
}

// DummySubscriptionEvent используется для приёма события биллинга из JSON-запроса.
// Дата окончания пробного периода приходит строкой в формате RFC3339.
type DummySubscriptionEvent struct {
	UserUID  string `json:"user_uid" validate:"required,uuid"`
	Plan     string `json:"plan" validate:"required,oneof=free premium family"`
	Status   string `json:"status" validate:"required,oneof=trial active expired canceled"`
	TrialEnd string `json:"trial_end,omitempty"`
}
