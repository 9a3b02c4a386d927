package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a user and returns its token.
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	token, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.OK(c, "User created", gin.H{"jwt": token})
}

// Authenticate checks credentials and returns a fresh token.
func (h *UserHandler) Authenticate(c *gin.Context) {
	type AuthenticateRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	token, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.OK(c, "User logged in", gin.H{"jwt": token})
}

// Delete archives a user.
func (h *UserHandler) Delete(c *gin.Context) {
	type DeleteRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request data")
		return
	}

	if err := h.users.Archive(c.Request.Context(), req.ID); err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.OK(c, "User deleted", nil)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidUserData):
		apierrors.BadRequest(c, "Invalid request data")
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Forbidden(c, "Invalid user or password")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		respondUnexpected(c, err)
	}
}
