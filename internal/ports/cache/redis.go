// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс счетчиков с временем жизни.
type Cache interface {
	// Increment атомарно увеличивает счетчик; ttl задается при создании ключа.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	Delete(ctx context.Context, key string) error

	Close() error
}
