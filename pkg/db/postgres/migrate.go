package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres:// для migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file:// для migrate
	"go.uber.org/zap"

	"notepad/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrResolveMigrationsPath   = "failed to resolve migrations path"
	ErrReadMigrationVersion    = "failed to read migration version"
)

const fileScheme = "file://"

// SourceURL превращает каталог миграций в URL источника file://.
func SourceURL(dir string) (string, error) {
	if strings.HasPrefix(dir, fileScheme) {
		return dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrResolveMigrationsPath, err)
	}
	return fileScheme + abs, nil
}

// MigrateDSN применяет все миграции из migrationsPath и возвращает итоговую версию схемы.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) (uint, error) {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance",
				zap.NamedError("source_error", srcErr), zap.NamedError("db_error", dbErr))
		}
	}()

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(upErr))
		return 0, fmt.Errorf("%s: %w", ErrApplyMigrations, upErr)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("%s: %w", ErrReadMigrationVersion, err)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		log.Info(ctx, LogMigrationsNoop, zap.Uint("version", version))
	} else {
		log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version))
	}
	return version, nil
}
