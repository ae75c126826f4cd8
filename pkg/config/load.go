// Package config предоставляет функциональность для загрузки конфигурации из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"notepad/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileLoaded        = "environment file loaded"
	msgEnvFileSkipped       = "environment file not found, using process environment"

	errFailedLoadEnvFile       = "failed to load environment file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Source описывает, откуда читается конфигурация.
type Source struct {
	// EnvFile подгружается в окружение перед чтением, если существует.
	EnvFile string
	// ConfigPath включает чтение YAML-файла поверх значений окружения.
	ConfigPath string
}

// Load заполняет структуру T из окружения и, опционально, из YAML-файла.
func Load[T any](ctx context.Context, serviceName string, src Source) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	log.Info(ctx, msgLoadingConfiguration,
		zap.String("env_file", src.EnvFile),
		zap.String("config_path", src.ConfigPath))

	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Error(ctx, errFailedLoadEnvFile, zap.String(attrPath, src.EnvFile), zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedLoadEnvFile, err)
			}
			log.Debug(ctx, msgEnvFileSkipped, zap.String(attrPath, src.EnvFile))
		} else {
			log.Debug(ctx, msgEnvFileLoaded, zap.String(attrPath, src.EnvFile))
		}
	}

	var cfg T
	var err error
	if src.ConfigPath != "" {
		if _, statErr := os.Stat(src.ConfigPath); statErr != nil {
			log.Error(ctx, errFailedLoadConfiguration, zap.String(attrPath, src.ConfigPath), zap.Error(statErr))
			return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, statErr)
		}
		err = cleanenv.ReadConfig(src.ConfigPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)

	return &cfg, nil
}
