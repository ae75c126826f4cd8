package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTEPAD_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTEPAD_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTEPAD_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTEPAD_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"NOTEPAD_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	BodyLimit    int           `yaml:"body_limit" env:"NOTEPAD_HTTP_BODY_LIMIT" env-default:"65536"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
