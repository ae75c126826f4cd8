package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notepad/internal/config"
	"notepad/pkg/logger"
)

// Константы для переменных окружения начального логгера.
const (
	EnvLoggerMode  = "NOTEPAD_LOGGER_MODE"
	EnvLoggerLevel = "NOTEPAD_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:           "notepad",
	Short:         "Note-taking backend with per-account notes stored in PostgreSQL",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath != "" {
			if err := os.Setenv(config.EnvConfigPath, configPath); err != nil {
				return fmt.Errorf("set %s: %w", config.EnvConfigPath, err)
			}
		}
		if envFile != "" {
			if err := os.Setenv(config.EnvFilePath, envFile); err != nil {
				return fmt.Errorf("set %s: %w", config.EnvFilePath, err)
			}
		}

		env := logger.Development
		if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
			env = logger.Production
		}

		log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
		if err != nil {
			return fmt.Errorf("%s: %w", ErrInitLogger, err)
		}
		logger.SetGlobalLogger(log)
		return nil
	},
}

// Execute запускает корневую команду.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	syncLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default .env)")
}

// loadConfig загружает конфигурацию и заменяет глобальный логгер настроенным.
func loadConfig(ctx context.Context) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	return cfg, finalLogger, nil
}

func syncLogger() {
	if err := logger.Log(context.Background()).Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
	}
}
