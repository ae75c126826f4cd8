package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notepad/internal/domain"
	"notepad/internal/domain/entities"
	"notepad/internal/ports/api"
	"notepad/internal/ports/repositories"
	"notepad/pkg/logger"
)

const (
	methodListNotes  = "ListNotes"
	methodCreateNote = "CreateNote"
	methodUpdateNote = "UpdateNote"
	methodDeleteNote = "DeleteNote"

	msgNotesListed      = "notes listed"
	msgNoteCreated      = "note created"
	msgNoteUpdated      = "note updated"
	msgNoteDeleted      = "note deleted"
	msgNoteNotAvailable = "note not found or not owned by user"
	msgUnknownOwner     = "note owner does not exist"
	msgErrListNotes     = "failed to list notes"
	msgErrCreateNote    = "failed to create note"
	msgErrUpdateNote    = "failed to update note"
	msgErrDeleteNote    = "failed to delete note"

	errCtxListingNotes  = "listing notes"
	errCtxCreatingNote  = "creating note"
	errCtxUpdatingNote  = "updating note"
	errCtxDeletingNote  = "deleting note"
	errCtxNoteNotExists = "note unavailable"
)

// NoteOption настраивает NoteUseCaseImpl.
type NoteOption func(*NoteUseCaseImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) NoteOption {
	return func(n *NoteUseCaseImpl) {
		n.now = now
	}
}

// NoteUseCaseImpl реализует интерфейс NoteUseCase.
type NoteUseCaseImpl struct {
	noteRepo   repositories.NoteRepository
	transactor repositories.Transactor
	now        func() time.Time
}

// NewNoteUseCase создает новый экземпляр сервиса заметок.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	transactor repositories.Transactor,
	opts ...NoteOption,
) api.NoteUseCase {
	n := &NoteUseCaseImpl{
		noteRepo:   noteRepo,
		transactor: transactor,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// List возвращает заметки владельца, новые сверху.
func (n *NoteUseCaseImpl) List(ctx context.Context, ownerID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.Int64("userID", ownerID))

	if err := validateInput(ownerInput{OwnerID: ownerID}); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	var notes []*entities.Note
	err := n.transactor.WithinTx(ctx, func(ctx context.Context) error {
		found, err := n.noteRepo.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		notes = found
		return nil
	})
	if err != nil {
		log.Error(ctx, msgErrListNotes, zap.Error(err))
		return nil, domain.StorageError(errCtxListingNotes, err)
	}

	if notes == nil {
		notes = make([]*entities.Note, 0)
	}

	log.Debug(ctx, msgNotesListed, zap.Int("count", len(notes)))
	return notes, nil
}

// Create сохраняет новую заметку владельца.
func (n *NoteUseCaseImpl) Create(ctx context.Context, ownerID int64, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.Int64("userID", ownerID))

	if err := validateInput(noteInput{OwnerID: ownerID, Title: title, Content: content}); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	note := entities.NewNote(ownerID, title, content, n.now())

	var created *entities.Note
	err := n.transactor.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := n.noteRepo.Create(ctx, note)
		if err != nil {
			return err
		}
		created = stored
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrOwnerNotFound) {
			log.Debug(ctx, msgUnknownOwner)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingInput,
				domain.NewInputError("userId", "does not reference an existing account"))
		}
		log.Error(ctx, msgErrCreateNote, zap.Error(err))
		return nil, domain.StorageError(errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.Int64("noteID", created.ID))
	return created, nil
}

// Update меняет заголовок, текст и отметку времени заметки владельца.
func (n *NoteUseCaseImpl) Update(ctx context.Context, noteID, ownerID int64, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote),
		zap.Int64("noteID", noteID), zap.Int64("userID", ownerID))

	input := noteUpdateInput{NoteID: noteID, OwnerID: ownerID, Title: title, Content: content}
	if err := validateInput(input); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	note := &entities.Note{ID: noteID, UserID: ownerID}
	note.Touch(title, content, n.now())

	var updated *entities.Note
	err := n.transactor.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := n.noteRepo.Update(ctx, note)
		if err != nil {
			return err
		}
		updated = stored
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFoundOrNotOwned) {
			log.Debug(ctx, msgNoteNotAvailable)
			return nil, fmt.Errorf("%s: %w", errCtxNoteNotExists, domain.ErrNotFoundOrForbidden)
		}
		log.Error(ctx, msgErrUpdateNote, zap.Error(err))
		return nil, domain.StorageError(errCtxUpdatingNote, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// Delete удаляет заметку владельца.
func (n *NoteUseCaseImpl) Delete(ctx context.Context, noteID, ownerID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote),
		zap.Int64("noteID", noteID), zap.Int64("userID", ownerID))

	if err := validateInput(noteRefInput{NoteID: noteID, OwnerID: ownerID}); err != nil {
		return fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	err := n.transactor.WithinTx(ctx, func(ctx context.Context) error {
		return n.noteRepo.Delete(ctx, noteID, ownerID)
	})
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFoundOrNotOwned) {
			log.Debug(ctx, msgNoteNotAvailable)
			return fmt.Errorf("%s: %w", errCtxNoteNotExists, domain.ErrNotFoundOrForbidden)
		}
		log.Error(ctx, msgErrDeleteNote, zap.Error(err))
		return domain.StorageError(errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}
