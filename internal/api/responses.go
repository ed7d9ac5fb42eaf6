// Package api defines the response types shared across the HTTP surface.
package api

// ErrorResponse is the generic error body returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the JWT issued on successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse describes a user record in admin responses.
// It never includes the password hash.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
