package config

import (
	"fmt"
	"net/url"
	"time"

	"notepad/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"NOTEPAD_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"NOTEPAD_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"NOTEPAD_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"NOTEPAD_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"NOTEPAD_POSTGRES_DB" env-default:"notepad"`
	SSLMode         string        `yaml:"ssl_mode" env:"NOTEPAD_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn         int           `yaml:"min_conn" env:"NOTEPAD_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"NOTEPAD_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"NOTEPAD_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"NOTEPAD_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrationsPath  string        `yaml:"migrations_path" env:"NOTEPAD_MIGRATIONS_PATH" env-default:"migrations"`
	MigrateOnStart  bool          `yaml:"migrate_on_start" env:"NOTEPAD_MIGRATE_ON_START" env-default:"true"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// PoolOptions переводит настройки в параметры пула.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}
