// Package jwt реализует выпуск и проверку подписанных JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токенов, привязанных
// к идентификатору пользователя. MakerImpl: реализация на HS256 с
// общим для процесса секретным ключом и фиксированным временем жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с uid и username.
	GenerateToken(userUID, username string) (string, error)
	// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte           // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration    // Время жизни токена.
	now       func() time.Time // Источник текущего времени.
}

// Option настраивает MakerImpl.
type Option func(*MakerImpl)

// WithClock подменяет источник текущего времени, используется в тестах.
func WithClock(now func() time.Time) Option {
	return func(m *MakerImpl) {
		m.now = now
	}
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration, opts ...Option) *MakerImpl {
	m := &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
