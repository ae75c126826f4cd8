package api

import (
	"context"

	"notepad/internal/domain/entities"
)

// NoteUseCase определяет операции над заметками конкретного владельца.
type NoteUseCase interface {
	List(ctx context.Context, ownerID int64) ([]*entities.Note, error)

	Create(ctx context.Context, ownerID int64, title, content string) (*entities.Note, error)

	Update(ctx context.Context, noteID, ownerID int64, title, content string) (*entities.Note, error)

	Delete(ctx context.Context, noteID, ownerID int64) error
}
