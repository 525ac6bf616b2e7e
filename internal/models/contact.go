package models

import "time"

// Contact представляет собой запись личного контакта пользователя.
// Email и PhoneNumber уникальны во всей таблице, Birthday обязателен.
type Contact struct {
	ID          int       `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Birthday    time.Time `json:"birthday"`
	OtherInfo   *string   `json:"other_info,omitempty"`
	UserID      int       `json:"-"` // Владелец контакта, наружу не отдаётся
}

// DummyContact используется для приёма данных нового контакта из JSON-запроса.
// Дата рождения приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyContact struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Birthday    string `json:"birthday" validate:"required,datetime=2006-01-02"` // Дата в формате 2006-01-02
	OtherInfo   string `json:"other_info" validate:"omitempty,max=250"`
}

// DummyContactUpdate используется для частичного обновления контакта.
// Все поля опциональны: отсутствующее в запросе поле не изменяется.
type DummyContactUpdate struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=50"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Birthday    *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	OtherInfo   *string `json:"other_info" validate:"omitempty,max=250"`
}

// ContactUpdate представляет уже распарсенный частичный апдейт для слоя хранилища.
// Поле со значением nil не попадает в запрос UPDATE.
type ContactUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Birthday    *time.Time
	OtherInfo   *string
}
