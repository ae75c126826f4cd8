// Package entities содержит сущности домена заметок.
package entities

import "errors"

// Ошибки хранилища учетных записей.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Поля учетной записи ограничены схемой хранилища.
const (
	MaxEmailLength = 255
)

// Account представляет учетную запись пользователя.
// PasswordHash никогда не покидает сервис.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
}
