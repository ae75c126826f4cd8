package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notepad/internal/adapters/cache"
	"notepad/internal/adapters/grpc"
	httpServer "notepad/internal/adapters/http"
	"notepad/internal/adapters/http/middleware"
	pgadapter "notepad/internal/adapters/postgres"
	"notepad/internal/adapters/services"
	"notepad/internal/app"
	"notepad/pkg/db/postgres"
	"notepad/pkg/shutdown"
)

// Константы для сообщений об ошибках.
const (
	ErrInitDB        = "failed to initialize database"
	ErrInitCache     = "failed to initialize login limiter cache"
	ErrStartGRPC     = "failed to start gRPC server"
	ErrCloseCache    = "failed to close login limiter cache"
	ErrStopHTTP      = "failed to stop HTTP server"
	ErrMigrateOnBoot = "failed to apply migrations on start"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notepad service started"
	LogServiceShutdownDone = "notepad service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogStoppingGRPC        = "stopping gRPC server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitLimiter         = "initializing login limiter"
	LogInitHTTPServer      = "initializing HTTP server"
	LogInitGRPCServer      = "initializing gRPC health server"
)

const LimiterBreakerName = "login-limiter"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	if cfg.Postgres.MigrateOnStart {
		source, err := postgres.SourceURL(cfg.Postgres.MigrationsPath)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMigrateOnBoot, err)
		}
		if _, err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), source); err != nil {
			return fmt.Errorf("%s: %w", ErrMigrateOnBoot, err)
		}
	}

	database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.PoolOptions())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitDB, err)
	}

	log.Info(ctx, LogInitRepo)
	repoFactory := pgadapter.NewRepositoryFactory(database.Pool())

	log.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(cfg.Security.BCryptCost)

	log.Info(ctx, LogInitUseCases)
	deps := httpServer.Dependencies{
		Credentials: app.NewCredentialUseCase(
			repoFactory.AccountRepository(),
			repoFactory.Transactor(),
			serviceFactory.PasswordService(),
		),
		Notes: app.NewNoteUseCase(
			repoFactory.NoteRepository(),
			repoFactory.Transactor(),
		),
	}

	hooks := []shutdown.Hook{}

	if cfg.RateLimit.Enabled {
		log.Info(ctx, LogInitLimiter,
			zap.Int("max_attempts", cfg.RateLimit.MaxAttempts),
			zap.Duration("window", cfg.RateLimit.Window))

		limiterCache, err := cache.NewRedisCache(ctx, &cfg.RateLimit.Redis)
		if err != nil {
			database.Close(ctx)
			return fmt.Errorf("%s: %w", ErrInitCache, err)
		}
		breaker := cache.NewCircuitBreaker(LimiterBreakerName, cfg.RateLimit.Breaker)
		deps.LoginLimiter = cache.NewBreakerCache(limiterCache, breaker)
		deps.LoginLimiterRules = middleware.LoginLimiterConfig{
			MaxAttempts: cfg.RateLimit.MaxAttempts,
			Window:      cfg.RateLimit.Window,
		}
		hooks = append(hooks, func(context.Context) error {
			if err := limiterCache.Close(); err != nil {
				return fmt.Errorf("%s: %w", ErrCloseCache, err)
			}
			return nil
		})
	}

	log.Info(ctx, LogInitHTTPServer)
	server := httpServer.NewServer(&cfg.HTTP, deps)
	server.Start(ctx)
	hooks = append(hooks, func(ctx context.Context) error {
		if err := server.Stop(ctx); err != nil {
			return fmt.Errorf("%s: %w", ErrStopHTTP, err)
		}
		return nil
	})

	if cfg.GRPC.Enabled {
		log.Info(ctx, LogInitGRPCServer)
		grpcServer := grpc.New(&cfg.GRPC)
		if err := grpcServer.Start(ctx); err != nil {
			shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...)
			database.Close(ctx)
			return fmt.Errorf("%s: %w", ErrStartGRPC, err)
		}

		monitorCtx, stopMonitor := context.WithCancel(ctx)
		go grpc.NewHealthMonitor(grpcServer.Health(), database, cfg.GRPC.HealthInterval).Run(monitorCtx)

		hooks = append(hooks, func(ctx context.Context) error {
			stopMonitor()
			log.Info(ctx, LogStoppingGRPC)
			grpcServer.Stop(ctx)
			return nil
		})
	}

	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

	log.Info(ctx, LogClosingDB)
	database.Close(ctx)

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}
