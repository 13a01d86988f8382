package models

import "time"

// Category представляет категорию доходов или расходов пользователя.
// Владеющий ключ — UserUID.
type Category struct {
	ID        string    // Уникальный идентификатор категории
	UserUID   string    // Пользователь, которому принадлежит категория
	Name      string    // Название категории
	Kind      string    // Тип: income или expense
	CreatedAt time.Time // Дата создания
	UpdatedAt time.Time // Дата последнего изменения
}

// Transaction представляет запись дохода или расхода.
// Владеющий ключ — UserUID.
type Transaction struct {
	ID          string    // Уникальный идентификатор записи
	UserUID     string    // Пользователь, которому принадлежит запись
	CategoryID  string    // Категория записи
	Amount      float64   // Сумма, всегда положительная
	Kind        string    // Тип: income или expense
	Description string    // Описание, до 255 символов
	OccurredAt  time.Time // Дата операции
	CreatedAt   time.Time // Дата создания записи
	UpdatedAt   time.Time // Дата последнего изменения
}

// Liability представляет обязательство пользователя: кредит, долг и т.д.
// Владеющий ключ — UserUID. Списки упорядочены по сроку платежа,
// записи без срока — в конце.
type Liability struct {
	ID           string     // Уникальный идентификатор обязательства
	UserUID      string     // Пользователь, которому принадлежит запись
	Name         string     // Название обязательства
	Balance      float64    // Остаток задолженности
	InterestRate float64    // Процентная ставка
	DueDate      *time.Time // Срок платежа (nil — не задан)
	CreatedAt    time.Time  // Дата создания
	UpdatedAt    time.Time  // Дата последнего изменения
}

// NetWorth представляет результат агрегации calculate_net_worth.
type NetWorth struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	NetWorth         float64 `json:"net_worth"`
}

// DummyCategory используется для приёма данных категории из JSON-запроса.
type DummyCategory struct {
	Name string `json:"name" validate:"required,max=100"`
	Kind string `json:"kind" validate:"required,oneof=income expense"`
}

// DummyTransaction используется для приёма данных записи из JSON-запроса.
// Дата операции приходит строкой в формате 02-01-2006.
type DummyTransaction struct {
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0,lte=999999.99"`
	Kind        string  `json:"kind" validate:"required,oneof=income expense"`
	Description string  `json:"description" validate:"max=255"`
	OccurredAt  string  `json:"occurred_at" validate:"required"`
}

// DummyLiability используется для приёма данных обязательства из JSON-запроса.
// Срок платежа приходит строкой в формате 02-01-2006, может быть пустым.
type DummyLiability struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Balance      float64 `json:"balance" validate:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0,lte=100"`
	DueDate      string  `json:"due_date,omitempty"`
}
