package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/app/dto"
	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
)

const (
	LogHandlerCreateBook     = "book handler: create"
	LogHandlerGetBook        = "book handler: get"
	LogHandlerListBooks      = "book handler: list"
	LogHandlerAvailableBooks = "book handler: available"
	LogHandlerReplaceBook    = "book handler: replace"
	LogHandlerPatchBook      = "book handler: patch"
	LogHandlerDeleteBook     = "book handler: delete"

	ErrMsgInvalidOrder    = "order_by must be one of title, published_date, total_copies"
	ErrMsgInvalidAuthorID = "author_id must be a valid identifier"
	ErrMsgInvalidStatus   = "status must be true or false"
)

type BookHandler struct {
	books api.BookService
}

func NewBookHandler(books api.BookService) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) Create(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerCreateBook)

	var req dto.BookRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if !validID(req.AuthorID) {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidAuthorID)
	}

	book, err := h.books.CreateBook(requestCtx, req.ToBook())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.FromBook(book))
}

func (h *BookHandler) Get(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "book_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerGetBook, zap.String("book_id", id))

	book, err := h.books.GetBook(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromBook(book))
}

// List поддерживает skip, limit, title, author_id и order_by.
func (h *BookHandler) List(ctx fiber.Ctx) error {
	filter, msg := bookFilter(ctx)
	if msg != "" {
		return sendError(ctx, fiber.StatusBadRequest, msg)
	}
	requestCtx := logRequest(ctx, LogHandlerListBooks,
		zap.Int("skip", filter.Skip), zap.Int("limit", filter.Limit), zap.String("order_by", string(filter.OrderBy)))

	books, err := h.books.ListBooks(requestCtx, filter)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromBooks(books))
}

// Available отбирает книги по наличию: status=true свободные, status=false разобранные.
func (h *BookHandler) Available(ctx fiber.Ctx) error {
	status, err := strconv.ParseBool(ctx.Query("status"))
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidStatus)
	}
	skip, err := queryInt(ctx, "skip", 0)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}
	limit, err := queryInt(ctx, "limit", entities.DefaultBookLimit)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}
	requestCtx := logRequest(ctx, LogHandlerAvailableBooks, zap.Bool("status", status))

	books, err := h.books.ListBooksByAvailability(requestCtx, status, skip, limit)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromBooks(books))
}

func (h *BookHandler) Replace(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "book_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerReplaceBook, zap.String("book_id", id))

	var req dto.BookRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if !validID(req.AuthorID) {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidAuthorID)
	}

	book, err := h.books.ReplaceBook(requestCtx, id, req.ToBook())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromBook(book))
}

func (h *BookHandler) Patch(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "book_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerPatchBook, zap.String("book_id", id))

	var req dto.PatchBookRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if req.AuthorID != nil && !validID(*req.AuthorID) {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidAuthorID)
	}

	book, err := h.books.PatchBook(requestCtx, id, req.ToPatch())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromBook(book))
}

func (h *BookHandler) Delete(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "book_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerDeleteBook, zap.String("book_id", id))

	if err := h.books.DeleteBook(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func bookFilter(ctx fiber.Ctx) (entities.BookFilter, string) {
	skip, err := queryInt(ctx, "skip", 0)
	if err != nil {
		return entities.BookFilter{}, err.Error()
	}
	limit, err := queryInt(ctx, "limit", entities.DefaultBookLimit)
	if err != nil {
		return entities.BookFilter{}, err.Error()
	}
	order := entities.BookOrder(ctx.Query("order_by"))
	if !order.Valid() {
		return entities.BookFilter{}, ErrMsgInvalidOrder
	}
	authorID := ctx.Query("author_id")
	if authorID != "" && !validID(authorID) {
		return entities.BookFilter{}, ErrMsgInvalidAuthorID
	}
	return entities.BookFilter{
		Skip:     skip,
		Limit:    limit,
		Title:    ctx.Query("title"),
		AuthorID: authorID,
		OrderBy:  order,
	}.Normalize(), ""
}
