package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookmodel "hellobooks-backend/internal/domains/book/model"
	"hellobooks-backend/internal/domains/borrow/model"
	"hellobooks-backend/internal/domains/borrow/service"
	usermodel "hellobooks-backend/internal/domains/user/model"
	"hellobooks-backend/internal/shared/middleware"
	"hellobooks-backend/internal/shared/pagination"
	"hellobooks-backend/internal/shared/response"
)

type BorrowHandler struct {
	borrowService service.ServiceInterface
}

func NewBorrowHandler(borrowService service.ServiceInterface) *BorrowHandler {
	return &BorrowHandler{borrowService: borrowService}
}

// BorrowBook checks a copy of the book out to the caller.
// POST /api/v1/books/:id/borrow
func (h *BorrowHandler) BorrowBook(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conf, err := h.borrowService.BorrowBook(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		mapBorrowError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, conf)
}

// ReturnBook closes the caller's open loan.
// PUT /api/v1/borrows/:id/return
func (h *BorrowHandler) ReturnBook(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	borrowID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, model.ErrBorrowNotFound.Error())
		return
	}

	// The body is optional; with none the return date defaults to today.
	var req model.ReturnRequest
	_ = c.ShouldBindJSON(&req)

	conf, err := h.borrowService.ReturnBook(c.Request.Context(), caller, borrowID, req.ReturnDate)
	if err != nil {
		mapBorrowError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, conf)
}

// BorrowingHistory pages through the caller's full borrowing history.
// GET /api/v1/users/borrows
func (h *BorrowHandler) BorrowingHistory(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	params := pagination.FromQuery(c.Query("page"), c.Query("per_page"))
	if err := params.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	listing, err := h.borrowService.BorrowingHistory(c.Request.Context(), caller.Email, params)
	if err != nil {
		mapBorrowError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, listing, &response.Meta{
		Page:  params.Page,
		Limit: params.PerPage,
		Total: listing.Total,
	})
}

// BooksNotReturned lists the caller's open loans.
// GET /api/v1/users/borrows/open
func (h *BorrowHandler) BooksNotReturned(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	listing, err := h.borrowService.BooksNotReturned(c.Request.Context(), caller.Email)
	if err != nil {
		mapBorrowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, listing)
}

// BooksCurrentlyOut pages through every open loan in the system.
// GET /api/v1/admin/borrows (admin)
func (h *BorrowHandler) BooksCurrentlyOut(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	params := pagination.FromQuery(c.Query("page"), c.Query("per_page"))
	if err := params.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	listing, err := h.borrowService.BooksCurrentlyOut(c.Request.Context(), caller, params)
	if err != nil {
		if errors.Is(err, model.ErrNoRecords) {
			// Empty ledger is its own signal, distinct from an empty page.
			c.Status(http.StatusNoContent)
			return
		}
		mapBorrowError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, listing, &response.Meta{
		Page:  params.Page,
		Limit: params.PerPage,
		Total: listing.Total,
	})
}

// mapBorrowError keeps the original API's status contract: unknown ids are
// 404, policy and business-rule rejections are 401, the admin gate is 403.
func mapBorrowError(c *gin.Context, err error) {
	var noCopies *model.NoCopiesError
	var tooFar *model.DueDateTooFarError
	var limit *model.BorrowLimitError

	switch {
	case errors.Is(err, model.ErrBorrowNotFound),
		errors.Is(err, bookmodel.ErrBookNotFound),
		errors.Is(err, usermodel.ErrUserNotFound),
		errors.Is(err, pagination.ErrPageOutOfRange):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrInvalidDueDate):
		response.ErrorResponse(c, http.StatusUnauthorized, "VALIDATION_ERROR", err.Error())
	case errors.As(err, &tooFar):
		response.ErrorResponse(c, http.StatusUnauthorized, "VALIDATION_ERROR", err.Error())
	case errors.As(err, &noCopies):
		response.ErrorResponse(c, http.StatusUnauthorized, "CONFLICT", err.Error())
	case errors.As(err, &limit):
		response.ErrorResponse(c, http.StatusUnauthorized, "CONFLICT", err.Error())
	case errors.Is(err, model.ErrAlreadyReturned):
		response.ErrorResponse(c, http.StatusUnauthorized, "CONFLICT", err.Error())
	case errors.Is(err, model.ErrNotBorrower):
		response.ErrorResponse(c, http.StatusUnauthorized, "FORBIDDEN", err.Error())
	case errors.Is(err, model.ErrAdminRequired):
		response.Forbidden(c, err.Error())
	default:
		response.InternalServerError(c, "borrow operation failed")
	}
}
