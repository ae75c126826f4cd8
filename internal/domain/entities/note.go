package entities

import (
	"errors"
	"time"
)

// Ошибки хранилища заметок.
var (
	ErrNoteNotFoundOrNotOwned = errors.New("note not found or not owned by user")
	ErrOwnerNotFound          = errors.New("owner account does not exist")
)

const (
	MaxTitleLength   = 255
	MaxContentLength = 1024
)

// Note представляет собой заметку пользователя.
type Note struct {
	ID      int64
	UserID  int64
	Title   string
	Content string
	// ModifiedAt хранится в миллисекундах от начала эпохи.
	ModifiedAt int64
}

// NewNote создает заметку владельца с отметкой времени now.
func NewNote(userID int64, title, content string, now time.Time) *Note {
	return &Note{
		UserID:     userID,
		Title:      title,
		Content:    content,
		ModifiedAt: now.UnixMilli(),
	}
}

// Touch переносит новые поля в заметку и обновляет отметку времени.
func (n *Note) Touch(title, content string, now time.Time) {
	n.Title = title
	n.Content = content
	n.ModifiedAt = now.UnixMilli()
}
