package dto

import (
	"notepad/internal/domain/entities"
)

// NoteRequest содержит данные для создания и обновления заметки.
type NoteRequest struct {
	UserID  int64  `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Note представляет заметку. Timestamp в миллисекундах.
type Note struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// MessageResponse содержит текстовое подтверждение.
type MessageResponse struct {
	Message string `json:"message"`
}

// NoteFromEntity переводит сущность в ответ.
func NoteFromEntity(note *entities.Note) Note {
	return Note{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		Timestamp: note.ModifiedAt,
	}
}

// NotesFromEntities переводит список сущностей, сохраняя порядок.
func NotesFromEntities(notes []*entities.Note) []Note {
	result := make([]Note, 0, len(notes))
	for _, note := range notes {
		result = append(result, NoteFromEntity(note))
	}
	return result
}
