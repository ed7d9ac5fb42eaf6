package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"churn_backend/internal/api"
	"churn_backend/internal/feature/auth/transport/http/dto"
	"churn_backend/internal/feature/auth/usecase"
)

// AdminUserHandler processes the administrative user-management endpoints.
// Routes using it must sit behind the admin middleware.
type AdminUserHandler struct {
	auth AuthUsecase
}

// NewAdminUserHandler creates a new AdminUserHandler instance.
func NewAdminUserHandler(auth AuthUsecase) *AdminUserHandler {
	return &AdminUserHandler{auth: auth}
}

// AddUser handles the admin add-user endpoint.
// - returns 400 on validation errors
// - returns 409 when the username is taken
// - returns 201 with the created user on success
func (h *AdminUserHandler) AddUser(c *gin.Context) {
	var req dto.AddUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameAlreadyExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "username already exists"})
			return
		}
		slog.Error("admin add user failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create user"})
		return
	}

	slog.Info("admin created user", "username", user.Username, "is_admin", user.IsAdmin)
	c.JSON(http.StatusCreated, api.UserResponse{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin})
}

// RemoveUser handles the admin remove-user endpoint.
// - returns 400 for a malformed id
// - returns 404 when no user has that id; the store is left unchanged
// - returns 200 on success
func (h *AdminUserHandler) RemoveUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.auth.RemoveUser(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("admin remove user failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to remove user"})
		return
	}

	slog.Info("admin removed user", "user_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
