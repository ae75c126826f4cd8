package config

import (
	"fmt"
	"time"
)

// RateLimitConfig задает ограничение неудачных попыток входа, хранимое в Redis.
type RateLimitConfig struct {
	Enabled     bool          `yaml:"enabled" env:"NOTEPAD_LOGIN_LIMIT_ENABLED" env-default:"false"`
	MaxAttempts int           `yaml:"max_attempts" env:"NOTEPAD_LOGIN_LIMIT_MAX_ATTEMPTS" env-default:"5"`
	Window      time.Duration `yaml:"window" env:"NOTEPAD_LOGIN_LIMIT_WINDOW" env-default:"15m"`
	Redis       RedisConfig   `yaml:"redis"`
	Breaker     BreakerConfig `yaml:"breaker"`
}

// BreakerConfig задает пороги Circuit Breaker перед Redis.
type BreakerConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"NOTEPAD_REDIS_BREAKER_ERRORS" env-default:"5"`
	Cooldown         time.Duration `yaml:"cooldown" env:"NOTEPAD_REDIS_BREAKER_COOLDOWN" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"NOTEPAD_REDIS_BREAKER_SUCCESSES" env-default:"2"`
}

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"NOTEPAD_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"NOTEPAD_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"NOTEPAD_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"NOTEPAD_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"NOTEPAD_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"NOTEPAD_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"NOTEPAD_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"NOTEPAD_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"NOTEPAD_REDIS_MIN_IDLE" env-default:"2"`
	KeyPrefix      string        `yaml:"key_prefix" env:"NOTEPAD_REDIS_KEY_PREFIX" env-default:"notepad:login:"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
