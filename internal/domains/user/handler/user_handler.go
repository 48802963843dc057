package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hellobooks-backend/internal/domains/user/model"
	"hellobooks-backend/internal/domains/user/service"
	"hellobooks-backend/internal/shared/middleware"
	"hellobooks-backend/internal/shared/response"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a new member account.
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailAlreadyExists):
			response.Conflict(c, err.Error())
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login verifies credentials and returns a token pair.
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case isValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile returns the authenticated member's account.
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	u, err := h.userService.GetByEmail(c.Request.Context(), caller.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, u.ToDTO())
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.ErrorObject
	return errors.As(err, &verr)
}
