// Package app содержит сценарии использования сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notepad/internal/domain"
	"notepad/internal/domain/entities"
	"notepad/internal/domain/services"
	"notepad/internal/ports/api"
	"notepad/internal/ports/repositories"
	svc "notepad/internal/ports/services"
	"notepad/pkg/logger"
)

const (
	methodRegister     = "Register"
	methodAuthenticate = "Authenticate"

	msgStartRegistration = "starting account registration"
	msgInvalidInput      = "invalid input"
	msgEmailExists       = "account with this email already exists"
	msgAccountRegistered = "account registered successfully"
	msgLoginAttempt      = "login attempt"
	msgLoginNonExistent  = "login attempt with non-existent email"
	msgInvalidPassword   = "invalid password provided"
	msgAccountLoggedIn   = "account authenticated successfully"
	msgErrHashPassword   = "failed to hash password"
	msgErrCreateAccount  = "failed to create account"
	msgErrFindingAccount = "error finding account by email"
	msgErrVerifyPassword = "error verifying password"

	errCtxValidatingInput    = "validating input"
	errCtxHashingPassword    = "hashing password"
	errCtxEmailRegistered    = "email already registered"
	errCtxCreatingAccount    = "creating account"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingAccount     = "finding account"
	errCtxVerifyingPassword  = "verifying password"
)

// CredentialUseCaseImpl реализует интерфейс CredentialUseCase.
type CredentialUseCaseImpl struct {
	accountRepo repositories.AccountRepository
	transactor  repositories.Transactor
	passwordSvc svc.PasswordService
}

// NewCredentialUseCase создает новый экземпляр сервиса учетных данных.
func NewCredentialUseCase(
	accountRepo repositories.AccountRepository,
	transactor repositories.Transactor,
	passwordSvc svc.PasswordService,
) api.CredentialUseCase {
	return &CredentialUseCaseImpl{
		accountRepo: accountRepo,
		transactor:  transactor,
		passwordSvc: passwordSvc,
	}
}

// Register создает учетную запись и возвращает ее идентификатор.
func (c *CredentialUseCaseImpl) Register(ctx context.Context, email, password string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))
	log.Debug(ctx, msgStartRegistration)

	if err := validateInput(credentialsInput{Email: email, Password: password}); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	hashedPassword, err := c.passwordSvc.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooLong) {
			return 0, fmt.Errorf("%s: %w", errCtxValidatingInput,
				domain.NewInputError("password", "must be at most 72 bytes"))
		}
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return 0, domain.StorageError(errCtxHashingPassword, err)
	}

	var accountID int64
	err = c.transactor.WithinTx(ctx, func(ctx context.Context) error {
		id, err := c.accountRepo.Create(ctx, email, hashedPassword)
		if err != nil {
			return err
		}
		accountID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			log.Debug(ctx, msgEmailExists)
			return 0, fmt.Errorf("%s: %w", errCtxEmailRegistered, domain.ErrConflict)
		}
		log.Error(ctx, msgErrCreateAccount, zap.Error(err))
		return 0, domain.StorageError(errCtxCreatingAccount, err)
	}

	log.Info(ctx, msgAccountRegistered, zap.Int64("userID", accountID))
	return accountID, nil
}

// Authenticate проверяет пару email и пароль. Неизвестный email и неверный
// пароль неразличимы для вызывающего.
func (c *CredentialUseCaseImpl) Authenticate(ctx context.Context, email, password string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))
	log.Debug(ctx, msgLoginAttempt)

	if err := validateInput(loginInput{Email: email, Password: password}); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	var account *entities.Account
	err := c.transactor.WithinTx(ctx, func(ctx context.Context) error {
		found, err := c.accountRepo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrAccountNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return 0, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrUnauthorized)
		}
		log.Error(ctx, msgErrFindingAccount, zap.Error(err))
		return 0, domain.StorageError(errCtxFindingAccount, err)
	}

	valid, err := c.passwordSvc.Verify(ctx, password, account.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err), zap.Int64("userID", account.ID))
		return 0, domain.StorageError(errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.Int64("userID", account.ID))
		return 0, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrUnauthorized)
	}

	log.Info(ctx, msgAccountLoggedIn, zap.Int64("userID", account.ID))
	return account.ID, nil
}
