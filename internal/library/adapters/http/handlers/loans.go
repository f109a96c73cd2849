package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libraryhub/internal/library/app/dto"
	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
)

const (
	LogHandlerCreateLoan   = "loan handler: create"
	LogHandlerGetLoan      = "loan handler: get"
	LogHandlerListLoans    = "loan handler: list"
	LogHandlerReplaceLoan  = "loan handler: replace"
	LogHandlerPatchLoan    = "loan handler: patch"
	LogHandlerDeleteLoan   = "loan handler: delete"
	LogHandlerActiveLoans  = "loan handler: active"
	LogHandlerOverdueLoans = "loan handler: overdue"
	LogHandlerLoanHistory  = "loan handler: history"

	ErrMsgLoanFieldsRequired = "user_id and book_id must be valid identifiers"
	ErrMsgLoanDateRequired   = "loan_date is required"
)

type userLoansView func(ctx context.Context, userID string) ([]*entities.Loan, error)

// LoanHandler обработчики журнала выдач.
type LoanHandler struct {
	loans api.LoanService
}

func NewLoanHandler(loans api.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

func (h *LoanHandler) Create(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerCreateLoan)

	var req dto.CreateLoanRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if !validID(req.UserID) || !validID(req.BookID) {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgLoanFieldsRequired)
	}

	loan, err := h.loans.CreateLoan(requestCtx, req.ToRequest())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.FromLoan(loan))
}

func (h *LoanHandler) Get(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "loan_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerGetLoan, zap.String("loan_id", id))

	loan, err := h.loans.GetLoan(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromLoan(loan))
}

func (h *LoanHandler) List(ctx fiber.Ctx) error {
	requestCtx := logRequest(ctx, LogHandlerListLoans)

	loans, err := h.loans.ListLoans(requestCtx)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromLoans(loans))
}

// Replace полная замена выдачи. Переданный due_date игнорируется.
func (h *LoanHandler) Replace(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "loan_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerReplaceLoan, zap.String("loan_id", id))

	var req dto.ReplaceLoanRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if !validID(req.UserID) || !validID(req.BookID) {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgLoanFieldsRequired)
	}
	if req.LoanDate == nil {
		return sendError(ctx, fiber.StatusUnprocessableEntity, ErrMsgLoanDateRequired)
	}

	loan, err := h.loans.ReplaceLoan(requestCtx, id, req.ToReplace())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromLoan(loan))
}

// Patch частичное обновление. return_date: null снова открывает выдачу.
func (h *LoanHandler) Patch(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "loan_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerPatchLoan, zap.String("loan_id", id))

	var req dto.PatchLoanRequest
	if err := bindBody(ctx, &req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequest)
	}
	if (req.UserID != nil && !validID(*req.UserID)) || (req.BookID != nil && !validID(*req.BookID)) {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	loan, err := h.loans.PatchLoan(requestCtx, id, req.ToPatch())
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromLoan(loan))
}

func (h *LoanHandler) Delete(ctx fiber.Ctx) error {
	id, ok := pathID(ctx, "loan_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, LogHandlerDeleteLoan, zap.String("loan_id", id))

	if err := h.loans.DeleteLoan(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *LoanHandler) Active(ctx fiber.Ctx) error {
	return h.byUser(ctx, LogHandlerActiveLoans, h.loans.ActiveLoans)
}

func (h *LoanHandler) Overdue(ctx fiber.Ctx) error {
	return h.byUser(ctx, LogHandlerOverdueLoans, h.loans.OverdueLoans)
}

func (h *LoanHandler) History(ctx fiber.Ctx) error {
	return h.byUser(ctx, LogHandlerLoanHistory, h.loans.LoanHistory)
}

func (h *LoanHandler) byUser(ctx fiber.Ctx, msg string, view userLoansView) error {
	userID, ok := pathID(ctx, "user_id")
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	requestCtx := logRequest(ctx, msg, zap.String("user_id", userID))

	loans, err := view(requestCtx, userID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.FromLoans(loans))
}
