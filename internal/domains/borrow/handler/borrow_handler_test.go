package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellobooks-backend/internal/domains/borrow/handler"
	"hellobooks-backend/internal/domains/borrow/model"
	"hellobooks-backend/internal/shared"
	"hellobooks-backend/internal/shared/middleware"
	"hellobooks-backend/internal/shared/pagination"
)

// stubBorrowService returns canned results so the tests pin the HTTP
// status contract without a database.
type stubBorrowService struct {
	borrowConf *model.BorrowConfirmation
	borrowErr  error
	returnConf *model.ReturnConfirmation
	returnErr  error
	listing    *model.Listing
	listErr    error
}

func (s *stubBorrowService) BorrowBook(_ context.Context, _ shared.Caller, _ string, _ model.BorrowRequest) (*model.BorrowConfirmation, error) {
	return s.borrowConf, s.borrowErr
}

func (s *stubBorrowService) ReturnBook(_ context.Context, _ shared.Caller, _ int64, _ string) (*model.ReturnConfirmation, error) {
	return s.returnConf, s.returnErr
}

func (s *stubBorrowService) BorrowingHistory(_ context.Context, _ string, _ pagination.Params) (*model.Listing, error) {
	return s.listing, s.listErr
}

func (s *stubBorrowService) BooksNotReturned(_ context.Context, _ string) (*model.Listing, error) {
	return s.listing, s.listErr
}

func (s *stubBorrowService) BooksCurrentlyOut(_ context.Context, _ shared.Caller, _ pagination.Params) (*model.Listing, error) {
	return s.listing, s.listErr
}

func newRouter(svc *stubBorrowService, caller shared.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CallerKey, caller)
		c.Next()
	})

	h := handler.NewBorrowHandler(svc)
	r.POST("/api/v1/books/:id/borrow", h.BorrowBook)
	r.PUT("/api/v1/borrows/:id/return", h.ReturnBook)
	r.GET("/api/v1/users/borrows", h.BorrowingHistory)
	r.GET("/api/v1/users/borrows/open", h.BooksNotReturned)
	r.GET("/api/v1/admin/borrows", h.BooksCurrentlyOut)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func member() shared.Caller {
	return shared.Caller{UserID: "u-1", Email: "alice@example.com", Role: shared.RoleMember}
}

func TestBorrowBook_Created(t *testing.T) {
	svc := &stubBorrowService{borrowConf: &model.BorrowConfirmation{
		BorrowID: 7,
		Message:  "You have borrowed the book Clean Code due on 10/03/2024. Borrow ID: #7",
	}}
	r := newRouter(svc, member())

	w := doJSON(t, r, http.MethodPost, "/api/v1/books/b-1/borrow", `{"due_date":"10/03/2024"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool                     `json:"success"`
		Data    model.BorrowConfirmation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.Data.BorrowID)
}

func TestBorrowBook_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			"invalid due date", model.ErrInvalidDueDate,
			http.StatusUnauthorized, "Please enter a valid date",
		},
		{
			"due date too far", &model.DueDateTooFarError{Days: 40},
			http.StatusUnauthorized, "Please select a return date that is less than or equal to 40 days.",
		},
		{
			"no copies", &model.NoCopiesError{Title: "Clean Code"},
			http.StatusUnauthorized, "All copies of Clean Code have been borrowed.",
		},
		{
			"open-loan cap", &model.BorrowLimitError{Max: 5},
			http.StatusUnauthorized, "you have borrowed 5 books. Please return 1 to be able to borrow another",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&stubBorrowService{borrowErr: tc.err}, member())

			w := doJSON(t, r, http.MethodPost, "/api/v1/books/b-1/borrow", `{"due_date":"x"}`)

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantMsg, resp.Error.Message)
		})
	}
}

func TestReturnBook_Statuses(t *testing.T) {
	t.Run("success without body", func(t *testing.T) {
		svc := &stubBorrowService{returnConf: &model.ReturnConfirmation{
			Message: "The book Clean Code has been returned",
		}}
		r := newRouter(svc, member())

		w := doJSON(t, r, http.MethodPut, "/api/v1/borrows/7/return", "")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		r := newRouter(&stubBorrowService{returnErr: model.ErrBorrowNotFound}, member())

		w := doJSON(t, r, http.MethodPut, "/api/v1/borrows/99/return", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "There is no book borrowed under this id")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r := newRouter(&stubBorrowService{}, member())

		w := doJSON(t, r, http.MethodPut, "/api/v1/borrows/abc/return", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("already returned", func(t *testing.T) {
		r := newRouter(&stubBorrowService{returnErr: model.ErrAlreadyReturned}, member())

		w := doJSON(t, r, http.MethodPut, "/api/v1/borrows/7/return", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "This book has been returned already")
	})

	t.Run("not the borrower", func(t *testing.T) {
		r := newRouter(&stubBorrowService{returnErr: model.ErrNotBorrower}, member())

		w := doJSON(t, r, http.MethodPut, "/api/v1/borrows/7/return", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "You did not borrow this book")
	})
}

func TestBorrowingHistory_Statuses(t *testing.T) {
	t.Run("page out of range", func(t *testing.T) {
		r := newRouter(&stubBorrowService{listErr: pagination.ErrPageOutOfRange}, member())

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/borrows?page=9", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed page", func(t *testing.T) {
		r := newRouter(&stubBorrowService{}, member())

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/borrows?page=zero", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty history carries the note", func(t *testing.T) {
		svc := &stubBorrowService{listing: &model.Listing{
			Items: []model.DisplayRecord{},
			Note:  "This user has not borrowed any books yet",
		}}
		r := newRouter(svc, member())

		w := doJSON(t, r, http.MethodGet, "/api/v1/users/borrows", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "This user has not borrowed any books yet")
	})
}

func TestBooksCurrentlyOut_Statuses(t *testing.T) {
	admin := shared.Caller{UserID: "u-9", Email: "root@example.com", Role: shared.RoleAdmin}

	t.Run("empty ledger is 204", func(t *testing.T) {
		r := newRouter(&stubBorrowService{listErr: model.ErrNoRecords}, admin)

		w := doJSON(t, r, http.MethodGet, "/api/v1/admin/borrows", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("non-admin is 403", func(t *testing.T) {
		r := newRouter(&stubBorrowService{listErr: model.ErrAdminRequired}, member())

		w := doJSON(t, r, http.MethodGet, "/api/v1/admin/borrows", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
