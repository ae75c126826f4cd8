// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notepad/pkg/logger"
)

const (
	// HeaderRequestID заголовок с идентификатором запроса.
	HeaderRequestID      = logger.HeaderRequestID
	// LocalsRequestContext ключ Locals с контекстом запроса.
	LocalsRequestContext = "requestContext"
)

// NewRequestIDMiddleware присваивает запросу идентификатор и кладет контекст с ним в Locals.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		requestID, _ := logger.GetRequestID(requestCtx)
		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(LocalsRequestContext, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса из Locals.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
