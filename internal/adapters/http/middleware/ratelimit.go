package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notepad/internal/adapters/http/response"
	"notepad/internal/ports/cache"
	"notepad/pkg/logger"
)

const (
	msgLoginThrottled     = "login throttled after repeated failures"
	msgLimiterUnavailable = "login limiter unavailable, allowing request"
)

// LoginLimiterConfig задает порог неудачных входов.
type LoginLimiterConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type loginProbe struct {
	Email string `json:"email"`
}

// NewLoginLimiterMiddleware отклоняет вход с 429, когда за Window было больше
// MaxAttempts попыток. Попытка учитывается до проверки пароля, поэтому
// параллельные запросы не обходят порог. Успешный вход сбрасывает счетчик.
// При недоступном Redis запрос пропускается.
func NewLoginLimiterMiddleware(store cache.Cache, cfg LoginLimiterConfig) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "LoginLimiter"))

		var probe loginProbe
		if err := ctx.App().Config().JSONDecoder(ctx.Body(), &probe); err != nil || probe.Email == "" {
			return ctx.Next()
		}
		key := probe.Email

		attempts, err := store.Increment(requestCtx, key, cfg.Window)
		if err != nil {
			log.Warn(requestCtx, msgLimiterUnavailable, zap.Error(err))
			return ctx.Next()
		}
		if attempts > int64(cfg.MaxAttempts) {
			log.Info(requestCtx, msgLoginThrottled, zap.Int64("attempts", attempts))
			ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			return response.Message(ctx, fiber.StatusTooManyRequests, response.ErrMsgTooManyAttempts)
		}

		if err := ctx.Next(); err != nil {
			return err
		}

		if ctx.Response().StatusCode() == fiber.StatusOK {
			if err := store.Delete(requestCtx, key); err != nil {
				log.Warn(requestCtx, msgLimiterUnavailable, zap.Error(err))
			}
		}

		return nil
	}
}
