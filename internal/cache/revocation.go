package cache

import (
	"context"
	"fmt"
	"time"
)

const revokedPrefix = "revoked:"

// Revoker хранит идентификаторы отозванных токенов до истечения их срока действия.
type Revoker struct {
	cache *Cache
	now   func() time.Time
}

// NewRevoker создаёт список отозванных токенов поверх Redis.
func NewRevoker(c *Cache) *Revoker {
	return &Revoker{cache: c, now: time.Now}
}

// Revoke помечает токен jti отозванным до момента expiresAt.
// Уже истёкший токен не записывается.
func (r *Revoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	const op = "cache.Revoke"
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.cache.Db.Set(ctx, revokedPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRevoked сообщает, был ли токен jti отозван.
func (r *Revoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const op = "cache.IsRevoked"
	n, err := r.cache.Db.Exists(ctx, revokedPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// NoopRevoker используется без Redis: выход из системы выполняется только на клиенте.
type NoopRevoker struct{}

// Revoke ничего не делает.
func (NoopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

// IsRevoked всегда возвращает false.
func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
