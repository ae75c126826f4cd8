package repositories

import (
	"context"

	"notepad/internal/domain/entities"
)

// NoteRepository определяет операции хранения заметок владельца.
type NoteRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Note, error)

	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)

	// Update меняет заметку только при совпадении id и владельца.
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)

	Delete(ctx context.Context, noteID, ownerID int64) error
}
