package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"hellobooks-backend/internal/domains/book/model"
	"hellobooks-backend/internal/domains/book/service"
	"hellobooks-backend/internal/shared/pagination"
	"hellobooks-backend/internal/shared/response"
)

type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// CreateBook adds a book to the catalog.
// POST /api/v1/books (admin)
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		mapBookError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

// GetBook returns one catalog entry.
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	b, err := h.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		mapBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ListBooks returns a page of the catalog.
// GET /api/v1/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	params := pagination.FromQuery(c.Query("page"), c.Query("per_page"))
	if err := params.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, total, err := h.bookService.ListBooks(c.Request.Context(), params.Page, params.PerPage)
	if err != nil {
		mapBookError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  params.Page,
		Limit: params.PerPage,
		Total: total,
	})
}

// UpdateBook applies a partial update.
// PUT /api/v1/books/:id (admin)
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.bookService.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		mapBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// DeleteBook removes a catalog entry.
// DELETE /api/v1/books/:id (admin)
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), id); err != nil {
		mapBookError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Book deleted successfully")
}

func mapBookError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrISBNExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrNegativeCopies):
		response.BadRequest(c, err.Error())
	case errors.As(err, &verrs):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "book operation failed")
	}
}
