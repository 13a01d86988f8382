package models

import "time"

// Family представляет семью — группу пользователей с общим бюджетом.
type Family struct {
	ID        string    // Уникальный идентификатор семьи
	Name      string    // Название семьи
	OwnerUID  string    // Пользователь, создавший семью
	CreatedAt time.Time // Дата создания
}

// FamilyMember представляет участника семьи.
// Владеющий ключ — FamilyID: все операции чтения и записи
// фильтруются по семье вызывающего пользователя.
type FamilyMember struct {
	ID           string    // Уникальный идентификатор участника
	FamilyID     string    // Семья, которой принадлежит запись
	Name         string    // Имя участника
	Relationship string    // Родственная связь: spouse, child и т.д.
	CreatedAt    time.Time // Дата добавления
	UpdatedAt    time.Time // Дата последнего изменения
}

// DummyFamily используется для приёма данных семьи из JSON-запроса.
type DummyFamily struct {
	Name string `json:"name" validate:"required,max=100"`
}

// DummyFamilyMember используется для приёма данных участника из JSON-запроса.
type DummyFamilyMember struct {
	Name         string `json:"name" validate:"required,max=100"`
	Relationship string `json:"relationship" validate:"required,max=50"`
}
