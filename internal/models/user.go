// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и служебные отметки времени.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

const (
	// RoleUser роль пользователя по умолчанию.
	RoleUser = "user"
	// RoleAdmin роль администратора.
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string     // Уникальный идентификатор пользователя
	Username     string     // Имя пользователя (уникальное)
	Name         string     // Отображаемое имя
	Email        string     // Электронная почта (уникальная)
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя, admin или user
	IsActive     bool       // Признак активной учётной записи
	CreatedAt    time.Time  // Дата регистрации
	LastLogin    *time.Time // Время последнего входа
}

// IsAdmin сообщает, обладает ли пользователь ролью администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserView публичное представление пользователя в ответах API, без хэша пароля.
type UserView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// View возвращает публичное представление пользователя.
func (u *User) View() UserView {
	return UserView{
		ID:        u.UUID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// UserRegisteredEvent событие о регистрации нового пользователя, публикуется в брокер.
type UserRegisteredEvent struct {
	UserUID      string    `json:"user_uid"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}
