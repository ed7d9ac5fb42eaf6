package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserID is the Gin context key holding the authenticated user's ID.
	ContextUserID = "userID"
	// ContextUsername is the Gin context key holding the authenticated user's name.
	ContextUsername = "username"
	// ContextIsAdmin is the Gin context key holding the admin flag.
	ContextIsAdmin = "isAdmin"
)

// parseToken verifies the bearer token in the Authorization header and, on
// success, stores the user claims on the context. It aborts the request with
// an appropriate status otherwise and reports whether the token was accepted.
func parseToken(c *gin.Context, secret string) (jwt.MapClaims, bool) {
	// 1. Get Authorization header
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return nil, false
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")

	if secret == "" {
		// Server misconfiguration (no JWT secret configured)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
		return nil, false
	}

	// 2. Parse and verify JWT signature
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}

	// 3. Extract claims (payload)
	if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
		c.Set(ContextUserID, uint(sub))
	}
	if username, ok := claims["username"].(string); ok {
		c.Set(ContextUsername, username)
	}
	if admin, ok := claims["admin"].(bool); ok {
		c.Set(ContextIsAdmin, admin)
	}

	return claims, true
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseToken(c, secret); !ok {
			return
		}
		c.Next()
	}
}

// AdminRequired returns a Gin middleware function that restricts access to
// authenticated users whose token carries the admin claim. Authorization is
// enforced server-side; hiding admin links in a UI is not a substitute.
func AdminRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, secret)
		if !ok {
			return
		}
		if admin, _ := claims["admin"].(bool); !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}
