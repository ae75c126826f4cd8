// Package auth содержит HTTP-обработчики регистрации и входа.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notepad/internal/adapters/http/dto"
	"notepad/internal/adapters/http/middleware"
	"notepad/internal/adapters/http/response"
	"notepad/internal/ports/api"
	"notepad/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerSignup = "handling signup request"
	LogHandlerLogin  = "handling login request"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов учетных данных.
type Handler struct {
	credentials api.CredentialUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(credentials api.CredentialUseCase) *Handler {
	return &Handler{credentials: credentials}
}

// Signup регистрирует учетную запись.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Signup"))
	log.Debug(requestCtx, LogHandlerSignup)

	var req dto.CredentialsRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	userID, err := h.credentials.Register(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Debug(requestCtx, "signup rejected", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.AccountResponse{UserID: userID})
}

// Login проверяет учетные данные.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.CredentialsRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	userID, err := h.credentials.Authenticate(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Debug(requestCtx, "login rejected", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.AccountResponse{UserID: userID})
}
