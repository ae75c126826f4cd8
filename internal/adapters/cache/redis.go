// Package cache содержит реализацию кэширования с использованием Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notepad/internal/config"
	"notepad/internal/ports/cache"
	"notepad/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodIncrement = "increment"
	LogMethodDelete    = "delete"

	ErrorFailedToConnect   = "failed to connect to redis"
	ErrorFailedToIncrement = "failed to increment value in redis"
	ErrorFailedToDelete    = "failed to delete value from redis"
	ErrorFailedToClose     = "failed to close redis connection"
)

// incrementScript выполняет INCR и PEXPIRE атомарно, чтобы счетчик не остался без ttl.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 and tonumber(ARGV[1]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisCache реализует интерфейс Cache с использованием Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache создает новый экземпляр RedisCache и проверяет соединение.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddress(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisCache{
		client: client,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Increment увеличивает счетчик и задает ttl при первом увеличении одним скриптом.
func (c *RedisCache) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIncrement))

	count, err := incrementScript.Run(ctx, c.client, []string{c.prefix + key}, ttl.Milliseconds()).Int64()
	if err != nil {
		log.Error(ctx, ErrorFailedToIncrement, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrorFailedToIncrement, err)
	}

	return count, nil
}

// Delete удаляет значение по ключу.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete))

	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
