// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notepad/internal/adapters/http/dto"
	"notepad/internal/adapters/http/middleware"
	"notepad/internal/adapters/http/response"
	"notepad/internal/ports/api"
	"notepad/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidRequestBody = "invalid request body"

	MsgNoteDeleted = "Note deleted"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// ListNotes возвращает заметки пользователя.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	userID, err := parseID(ctx.Params("userId"))
	if err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	notes, err := h.notes.List(requestCtx, userID)
	if err != nil {
		log.Debug(requestCtx, "list notes failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NotesFromEntities(notes))
}

// CreateNote создает заметку.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.notes.Create(requestCtx, req.UserID, req.Title, req.Content)
	if err != nil {
		log.Debug(requestCtx, "create note failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.NoteFromEntity(note))
}

// UpdateNote обновляет заметку владельца.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	noteID, err := parseID(ctx.Params("id"))
	if err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.notes.Update(requestCtx, noteID, req.UserID, req.Title, req.Content)
	if err != nil {
		log.Debug(requestCtx, "update note failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NoteFromEntity(note))
}

// DeleteNote удаляет заметку владельца. Владелец передается в ?userId=.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	noteID, err := parseID(ctx.Params("id"))
	if err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	userID, err := parseID(ctx.Query("userId"))
	if err != nil {
		return response.Message(ctx, fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}

	if err := h.notes.Delete(requestCtx, noteID, userID); err != nil {
		log.Debug(requestCtx, "delete note failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.MessageResponse{Message: MsgNoteDeleted})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
