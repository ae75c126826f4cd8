package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID заголовок, в котором идентификатор приходит от клиента и возвращается ему.
const HeaderRequestID = "X-Request-ID"

// MaxRequestIDLength ограничивает длину идентификатора, присланного клиентом.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет в контекст идентификатор, выбранный ResolveRequestID.
func NewRequestIDContext(ctx context.Context, incoming string) context.Context {
	return context.WithValue(ctx, requestIDKey, ResolveRequestID(incoming))
}

// ResolveRequestID оставляет идентификатор клиента, если он не длиннее
// MaxRequestIDLength и состоит из печатных ASCII символов без пробелов.
// Иначе выдает новый UUID.
func ResolveRequestID(incoming string) string {
	id := strings.TrimSpace(incoming)
	if id == "" || len(id) > MaxRequestIDLength || strings.IndexFunc(id, notPrintableASCII) >= 0 {
		return uuid.NewString()
	}
	return id
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

func notPrintableASCII(r rune) bool {
	return r < 0x21 || r > 0x7e
}
