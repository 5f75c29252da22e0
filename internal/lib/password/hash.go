// Package password реализует безопасное хеширование и проверку паролей.
//
// Hasher создает bcrypt-хеш пароля с фиксированной стоимостью и сверяет
// введённый пароль с сохранённым хешем. Сравнение выполняется bcrypt
// за постоянное время.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost стоимость bcrypt по умолчанию.
const DefaultCost = 10

// ErrMalformedHash возвращается, если сохранённый хеш не является корректным bcrypt-хешем.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher хеширует и проверяет пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. Значение cost вне допустимого диапазона bcrypt заменяется на DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func (h *Hasher) Hash(plain string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает введённый пароль с bcrypt‑хэшем.
//
// Несовпадение пароля возвращает false без ошибки.
// Повреждённый хэш возвращает ErrMalformedHash.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	const op = "password.Verify"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %w", op, ErrMalformedHash, err)
	}
}

// Cost возвращает стоимость bcrypt, с которой был создан hash.
func Cost(hash string) (int, error) {
	const op = "password.Cost"
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrMalformedHash, err)
	}
	return cost, nil
}
