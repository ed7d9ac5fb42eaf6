package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestMain puts Gin into test mode before running the tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestAuthRequired_MissingBearerToken verifies that 401 is returned when the
// bearer token is absent or the prefix is malformed.
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			handler := AuthRequired("test-secret")
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_MissingSecret verifies that 500 is returned when no JWT
// secret is configured.
func TestAuthRequired_MissingSecret(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer sometoken")

	handler := AuthRequired("")
	handler(c)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

// TestAuthRequired_InvalidToken verifies that 401 is returned for tampered or
// expired tokens.
func TestAuthRequired_InvalidToken(t *testing.T) {
	const secret = "test-secret-key-for-invalid"

	gen := NewGenerator("wrong-secret", time.Hour)
	badSignature, err := gen.GenerateToken(1, "alice", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expiredGen := NewGenerator(secret, -time.Hour)
	expired, err := expiredGen.GenerateToken(1, "alice", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage token", "not.a.jwt"},
		{"wrong signature", badSignature},
		{"expired token", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+tt.token)

			handler := AuthRequired(secret)
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

// TestAuthRequired_ValidToken verifies that a valid token passes and the
// claims are stored on the context.
func TestAuthRequired_ValidToken(t *testing.T) {
	const secret = "test-secret"

	gen := NewGenerator(secret, time.Hour)
	token, err := gen.GenerateToken(7, "alice", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	handler := AuthRequired(secret)
	handler(c)

	if c.IsAborted() {
		t.Fatal("expected request not to be aborted")
	}
	if got := c.GetUint(ContextUserID); got != 7 {
		t.Errorf("expected userID 7, got %d", got)
	}
	if got := c.GetString(ContextUsername); got != "alice" {
		t.Errorf("expected username alice, got %q", got)
	}
	if c.GetBool(ContextIsAdmin) {
		t.Error("expected isAdmin to be false")
	}
}

// TestAdminRequired verifies that the admin middleware rejects non-admin
// tokens with 403 and passes admin tokens through.
func TestAdminRequired(t *testing.T) {
	const secret = "test-secret"
	gen := NewGenerator(secret, time.Hour)

	tests := []struct {
		name         string
		admin        bool
		expectedCode int
		expectAbort  bool
	}{
		{"admin token accepted", true, http.StatusOK, false},
		{"non-admin token rejected", false, http.StatusForbidden, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := gen.GenerateToken(1, "someone", tt.admin)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+token)

			handler := AdminRequired(secret)
			handler(c)

			if c.IsAborted() != tt.expectAbort {
				t.Errorf("expected aborted=%v, got %v", tt.expectAbort, c.IsAborted())
			}
			if tt.expectAbort && w.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}
