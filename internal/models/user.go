// Package models содержит доменные модели пользователя и контакта,
// а также вспомогательные структуры для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата создания учётной записи
	Avatar       *string   // URL аватара, nil если не загружен
	Confirmed    bool      // Подтверждена ли электронная почта
}

// PublicUser описывает внешнее представление пользователя.
// Хэш пароля наружу не отдаётся никогда.
type PublicUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Avatar    *string   `json:"avatar,omitempty"`
	Confirmed bool      `json:"confirmed"`
}

// Public конвертирует пользователя в его внешнее представление.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
	}
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyLogin используется для приёма учётных данных при входе.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyRequestEmail используется для повторного запроса письма подтверждения.
type DummyRequestEmail struct {
	Email string `json:"email" validate:"required,email"`
}
