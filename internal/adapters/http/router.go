// Package http содержит компоненты для HTTP сервера.
package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notepad/internal/adapters/http/auth"
	"notepad/internal/adapters/http/middleware"
	"notepad/internal/adapters/http/notes"
	"notepad/internal/adapters/http/response"
	"notepad/internal/config"
	"notepad/internal/ports/api"
	"notepad/internal/ports/cache"
	"notepad/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting = "Starting HTTP server"
	LogServerStopping = "Stopping HTTP server"
	ErrServerStart    = "failed to start HTTP server"
	ErrServerStop     = "failed to stop HTTP server"
)

// Dependencies набор сценариев и хранилищ, нужных маршрутам.
type Dependencies struct {
	Credentials api.CredentialUseCase
	Notes       api.NoteUseCase
	// LoginLimiter включается, если не nil.
	LoginLimiter      cache.Cache
	LoginLimiterRules middleware.LoginLimiterConfig
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Credentials)
	notesHandler := notes.NewHandler(deps.Notes)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/ping", func(ctx fiber.Ctx) error {
		return ctx.SendString("pong")
	})

	app.Post("/signup", authHandler.Signup)
	if deps.LoginLimiter != nil {
		app.Post("/login",
			middleware.NewLoginLimiterMiddleware(deps.LoginLimiter, deps.LoginLimiterRules),
			authHandler.Login)
	} else {
		app.Post("/login", authHandler.Login)
	}

	app.Get("/notes/user/:userId", notesHandler.ListNotes)
	app.Post("/notes", notesHandler.CreateNote)
	app.Put("/notes/:id", notesHandler.UpdateNote)
	app.Delete("/notes/:id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return response.Message(ctx, fiber.StatusNotFound, response.ErrMsgRouteNotFound)
	})
}

// Server оборачивает fiber.App с настройками из конфигурации.
type Server struct {
	cfg *config.HTTPConfig
	app *fiber.App
}

// NewServer создает HTTP сервер с зарегистрированными маршрутами.
func NewServer(cfg *config.HTTPConfig, deps Dependencies) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "notepad",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: func(ctx fiber.Ctx, err error) error {
			return response.Error(ctx, err)
		},
	})

	SetupRouter(app, deps)

	return &Server{cfg: cfg, app: app}
}

// App возвращает fiber.App.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start запускает прием соединений в фоне.
func (s *Server) Start(ctx context.Context) {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))
	go func() {
		if err := s.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()
}

// Stop дожидается завершения активных запросов.
func (s *Server) Stop(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogServerStopping)
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrServerStop, err)
	}
	return nil
}
