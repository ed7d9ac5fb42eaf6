// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name used for authentication.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// PasswordHash is the bcrypt digest of the user's password.
	// This never stores plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	// IsAdmin marks users allowed to call administrative endpoints
	// (user management, model retraining).
	IsAdmin bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
