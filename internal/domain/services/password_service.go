// Package services содержит доменные ошибки сервисов.
package services

import (
	"errors"
)

// PasswordErrors содержит ошибки, связанные с паролями.
var (
	ErrHashingFailed    = errors.New("failed to hash password")
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
	ErrMalformedHash    = errors.New("stored password hash is malformed")
	ErrVerifyingFailure = errors.New("failed to verify password")
)

// MaxPasswordBytes - предел длины пароля для bcrypt.
const MaxPasswordBytes = 72
