package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/app/dto"
	"libraryhub/internal/library/ports/api"
)

const (
	LogHandlerCreateAuthor  = "author handler: create"
	LogHandlerGetAuthor     = "author handler: get"
	LogHandlerListAuthors   = "author handler: list"
	LogHandlerReplaceAuthor = "author handler: replace"
	LogHandlerPatchAuthor   = "author handler: patch"
	LogHandlerDeleteAuthor  = "author handler: delete"
	LogHandlerAuthorBooks   = "author handler: books"
)

type AuthorHandler struct {
	authors api.AuthorService
}

func NewAuthorHandler(authors api.AuthorService) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

func (h *AuthorHandler) Create(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerCreateAuthor)

	var req dto.AuthorRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}

	author, err := h.authors.CreateAuthor(requestCtx, req.ToAuthor())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.FromAuthor(author))
}

func (h *AuthorHandler) Get(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "author_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerGetAuthor, zap.String("author_id", id))

	author, err := h.authors.GetAuthor(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromAuthor(author))
}

func (h *AuthorHandler) List(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerListAuthors)

	authors, err := h.authors.ListAuthors(requestCtx)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromAuthors(authors))
}

func (h *AuthorHandler) Replace(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "author_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerReplaceAuthor, zap.String("author_id", id))

	var req dto.AuthorRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}

	author, err := h.authors.ReplaceAuthor(requestCtx, id, req.ToAuthor())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromAuthor(author))
}

func (h *AuthorHandler) Patch(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "author_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerPatchAuthor, zap.String("author_id", id))

	var req dto.PatchAuthorRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}

	author, err := h.authors.PatchAuthor(requestCtx, id, req.ToPatch())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromAuthor(author))
}

func (h *AuthorHandler) Delete(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "author_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerDeleteAuthor, zap.String("author_id", id))

	if err := h.authors.DeleteAuthor(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthorHandler) Books(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "author_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerAuthorBooks, zap.String("author_id", id))

	books, err := h.authors.AuthorBooks(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromBooks(books))
}
