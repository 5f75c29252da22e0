// Package storage содержит общие ошибки хранилища пользователей.
// Конкретная реализация на PostgreSQL находится в пакете repository.
package storage

import "errors"

var (
	// ErrUserExists нарушение уникальности username или email.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)
