// Package api описывает входные порты сервиса.
package api

import (
	"context"
)

// CredentialUseCase определяет операции регистрации и проверки учетных данных.
type CredentialUseCase interface {
	Register(ctx context.Context, email, password string) (int64, error)

	Authenticate(ctx context.Context, email, password string) (int64, error)
}
