// Package repositories описывает порты хранилища.
package repositories

import (
	"context"

	"notepad/internal/domain/entities"
)

// AccountRepository определяет операции хранения учетных записей.
type AccountRepository interface {
	// Create вставляет запись и возвращает entities.ErrEmailTaken, если email занят.
	Create(ctx context.Context, email, passwordHash string) (int64, error)

	FindByEmail(ctx context.Context, email string) (*entities.Account, error)
}
