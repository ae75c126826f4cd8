package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"notepad/internal/domain/services"
	svc "notepad/internal/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
)

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash хэширует пароль с помощью bcrypt. Соль новая при каждом вызове.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if len(password) > services.MaxPasswordBytes {
		return "", services.ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", services.ErrPasswordTooLong
		}
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashedBytes), nil
}

// Verify проверяет соответствие пароля хэшу.
// Несовпадение дает (false, nil), нечитаемый хэш - services.ErrMalformedHash.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	var versionErr bcrypt.HashVersionTooNewError
	var prefixErr bcrypt.InvalidHashPrefixError
	var costErr bcrypt.InvalidCostError
	if errors.Is(err, bcrypt.ErrHashTooShort) ||
		errors.As(err, &versionErr) || errors.As(err, &prefixErr) || errors.As(err, &costErr) {
		return false, fmt.Errorf("%s: %w: %w", errMsgErrorComparingHash, services.ErrMalformedHash, err)
	}

	return false, fmt.Errorf("%s: %w: %w", errMsgErrorComparingHash, services.ErrVerifyingFailure, err)
}
