// Package domain содержит виды ошибок, которые видит клиент сервиса.
package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок основных операций. Проверяются через errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("account with this email already exists")
	ErrUnauthorized        = errors.New("invalid email or password")
	ErrNotFoundOrForbidden = errors.New("note not found or you don't have permission")
	ErrStorageFailure      = errors.New("storage failure")
)

// InputError описывает конкретное нарушенное правило ввода.
type InputError struct {
	Field  string
	Reason string
}

// NewInputError создает ошибку вида ErrInvalidInput для поля.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unwrap позволяет сопоставить ошибку с ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// StorageError оборачивает причину сбоя хранилища в ErrStorageFailure.
func StorageError(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, cause)
}
