// Package response отправляет JSON-ответы и переводит доменные ошибки в HTTP статусы.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"notepad/internal/domain"
)

const (
	ErrMsgInternal        = "Internal server error"
	ErrMsgRouteNotFound   = "Route not found"
	ErrMsgTooManyAttempts = "too many login attempts, try again later"
)

// JSON отправляет тело со статусом.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Message отправляет {"error": msg} со статусом.
func Message(ctx fiber.Ctx, status int, msg string) error {
	return JSON(ctx, status, fiber.Map{"error": msg})
}

// Error переводит ошибку сценария в статус и сообщение.
// Детали сбоев хранилища клиенту не отправляются.
func Error(ctx fiber.Ctx, err error) error {
	status, msg := Status(err)
	return Message(ctx, status, msg)
}

// Status возвращает HTTP статус и текст для ошибки.
func Status(err error) (int, string) {
	var inputErr *domain.InputError
	switch {
	case errors.As(err, &inputErr):
		return fiber.StatusBadRequest, inputErr.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, domain.ErrInvalidInput.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, domain.ErrConflict.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		return fiber.StatusNotFound, domain.ErrNotFoundOrForbidden.Error()
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return fiberErr.Code, fiberErr.Message
		}
		return fiber.StatusInternalServerError, ErrMsgInternal
	}
}
