// Package postgres управляет пулом соединений pgx и миграциями схемы.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notepad/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
	LogMigrationsNoop    = "database schema already up to date"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// PoolOptions задает размеры пула и время жизни соединений.
type PoolOptions struct {
	MinConns        int
	MaxConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Database представляет соединение с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул соединений и проверяет доступность базы.
func New(ctx context.Context, dsn string, opts PoolOptions) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting,
		zap.Int("min_conn", opts.MinConns),
		zap.Int("max_conn", opts.MaxConns))

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	if opts.MinConns > 0 {
		poolCfg.MinConns = int32(opts.MinConns) //nolint:gosec
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = int32(opts.MaxConns) //nolint:gosec
	}
	if opts.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}
