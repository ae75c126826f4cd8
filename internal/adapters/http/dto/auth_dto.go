// Package dto содержит структуры запросов и ответов HTTP API.
package dto

// CredentialsRequest содержит данные для регистрации и входа.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse возвращает идентификатор учетной записи.
type AccountResponse struct {
	UserID int64 `json:"userId"`
}
