package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notepad/internal/domain/entities"
	"notepad/internal/ports/repositories"
	"notepad/pkg/logger"
)

const (
	queryListNotes = `
        SELECT id, user_id, title, content, modified_at
        FROM notes
        WHERE user_id = $1
        ORDER BY modified_at DESC, id DESC
    `
	queryCreateNote = `
        INSERT INTO notes (user_id, title, content, modified_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, title, content, modified_at
    `
	queryUpdateNote = `
        UPDATE notes
        SET title = $1, content = $2, modified_at = $3
        WHERE id = $4 AND user_id = $5
        RETURNING id, user_id, title, content, modified_at
    `
	queryDeleteNote = `DELETE FROM notes WHERE id = $1 AND user_id = $2`
)

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// ListByOwner получает все заметки владельца, новые сверху.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByOwner"))
	log.Debug(ctx, "listing notes", zap.Int64("userID", ownerID))

	rows, err := conn(ctx, r.pool).Query(ctx, queryListNotes, ownerID)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.ModifiedAt); err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.Int64("userID", note.UserID))

	var created entities.Note
	err := conn(ctx, r.pool).QueryRow(ctx, queryCreateNote,
		note.UserID, note.Title, note.Content, note.ModifiedAt,
	).Scan(&created.ID, &created.UserID, &created.Title, &created.Content, &created.ModifiedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			log.Debug(ctx, "owner account does not exist", zap.Int64("userID", note.UserID))
			return nil, entities.ErrOwnerNotFound
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", created.ID))
	return &created, nil
}

// Update обновляет заметку, если она принадлежит владельцу.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", note.ID))

	var updated entities.Note
	err := conn(ctx, r.pool).QueryRow(ctx, queryUpdateNote,
		note.Title, note.Content, note.ModifiedAt, note.ID, note.UserID,
	).Scan(&updated.ID, &updated.UserID, &updated.Title, &updated.Content, &updated.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by user")
			return nil, entities.ErrNoteNotFoundOrNotOwned
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &updated, nil
}

// Delete удаляет заметку, если она принадлежит владельцу.
func (r *NoteRepository) Delete(ctx context.Context, noteID, ownerID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", noteID))

	result, err := conn(ctx, r.pool).Exec(ctx, queryDeleteNote, noteID, ownerID)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFoundOrNotOwned
	}

	return nil
}
