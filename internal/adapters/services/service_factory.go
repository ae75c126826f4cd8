// Package services предоставляет фабрику вспомогательных сервисов, таких как хеширование паролей.
package services

import (
	"notepad/internal/ports/services"
)

// ServiceFactory создает все необходимые сервисы.
type ServiceFactory struct {
	passwordService services.PasswordService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}
