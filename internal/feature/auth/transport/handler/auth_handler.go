// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"churn_backend/internal/api"
	"churn_backend/internal/feature/auth/domain/entity"
	"churn_backend/internal/feature/auth/transport/http/dto"
)

// AuthUsecase defines the credential management operations the handlers
// depend on. Following Go convention, the interface is defined by the
// consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, username, password string, admin bool) (*entity.User, error)
	// Login authenticates a user and returns a JWT token on success.
	Login(ctx context.Context, username, password string) (string, error)
	// RemoveUser deletes the user with the given ID.
	RemoveUser(ctx context.Context, id uint) error
}

// AuthHandler processes HTTP requests for authentication operations.
// It depends on the AuthUsecase interface and handles JSON request/response.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
// Constructor for dependency injection.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles the user registration endpoint.
// - binds the request JSON to SignupReq
// - returns 400 on validation errors
// - returns 409 when user creation fails (duplicate username etc.)
// - returns 201 on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if _, err := h.auth.CreateUser(c.Request.Context(), req.Username, req.Password, false); err != nil {
		// Do not expose the underlying error, to prevent user enumeration.
		slog.Warn("signup failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login handles the user login endpoint.
// - binds the request JSON to LoginReq
// - returns 400 on validation errors
// - returns 401 on authentication failure
// - returns 200 with a JWT token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// One generic message for unknown user and wrong password alike.
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid username or password"})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
