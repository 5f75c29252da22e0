package auth

import "errors"

// Ошибки аутентификации. Любая другая ошибка сервиса считается внутренней.
var (
	// ErrDuplicateIdentity username или email уже заняты.
	ErrDuplicateIdentity = errors.New("user already exists")
	// ErrInvalidCredentials неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated токен отсутствует, некорректен, истёк или отозван.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUserDeactivated учётная запись отключена.
	ErrUserDeactivated = errors.New("account has been deactivated")
	// ErrForbidden недостаточно прав.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound пользователь, на которого указывает токен, не найден.
	ErrUserNotFound = errors.New("user not found")
)
