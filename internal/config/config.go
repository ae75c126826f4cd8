// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "notepad/pkg/config"
	"notepad/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "notepad"

	// EnvConfigPath указывает на необязательный YAML-файл конфигурации.
	EnvConfigPath  = "NOTEPAD_CONFIG_PATH"
	// EnvFilePath переопределяет путь к .env файлу.
	EnvFilePath    = "NOTEPAD_ENV_FILE"
	DefaultEnvFile = ".env"

	LogConfigLoaded     = "notepad configuration resolved"
	ErrFailedLoadConfig = "failed to load configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Security  SecurityConfig  `yaml:"security"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
}

// Load загружает конфигурацию из .env, переменных окружения и необязательного YAML-файла.
func Load(ctx context.Context) (*Config, error) {
	envFile := os.Getenv(EnvFilePath)
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, pkgconfig.Source{
		EnvFile:    envFile,
		ConfigPath: os.Getenv(EnvConfigPath),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
		zap.Int("bcrypt_cost", cfg.Security.BCryptCost),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
