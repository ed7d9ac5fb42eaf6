// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"fmt"

	"churn_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength defines the minimum number of password characters.
	minPasswordLength = 8
)

// dummyHash is a bcrypt digest of an unguessable throwaway value. It is
// compared against when the user does not exist so that a lookup miss and a
// wrong password take the same time and are indistinguishable to the caller.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrUsernameAlreadyExists if the username is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a user matching the specified username.
	// It returns ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// DeleteByID removes the user with the specified ID.
	// It returns ErrUserNotFound if no such user exists.
	DeleteByID(ctx context.Context, id uint) error
}

// TokenGenerator defines the interface for signed token generation.
type TokenGenerator interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uint, username string, admin bool) (string, error)
}

// authUsecase implements the credential management business logic.
type authUsecase struct {
	users      UserRepository
	tokens     TokenGenerator
	bcryptCost int
}

// NewAuthUsecase creates a new authUsecase instance. cost is the bcrypt cost
// factor; values outside bcrypt's supported range fall back to the default.
func NewAuthUsecase(users UserRepository, tokens TokenGenerator, cost int) *authUsecase {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authUsecase{users: users, tokens: tokens, bcryptCost: cost}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// CreateUser registers a new user with a freshly salted bcrypt hash.
// It returns ErrUsernameAlreadyExists if the username is taken.
func (u *authUsecase) CreateUser(ctx context.Context, username, password string, admin bool) (*entity.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Username: username, PasswordHash: string(hashed), IsAdmin: admin}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by username. Pure lookup, no side effects.
func (u *authUsecase) GetUser(ctx context.Context, username string) (*entity.User, error) {
	return u.users.FindByUsername(ctx, username)
}

// GetUserByID retrieves a user by ID. Pure lookup, no side effects.
func (u *authUsecase) GetUserByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// VerifyCredentials checks a username/password pair against the store.
// It returns the matching user on success and (nil, false) otherwise.
// A bcrypt comparison runs whether or not the user exists, so a missing user
// and a wrong password are observably identical.
func (u *authUsecase) VerifyCredentials(ctx context.Context, username, password string) (*entity.User, bool) {
	user, err := u.users.FindByUsername(ctx, username)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, false
	}
	return user, true
}

// Login authenticates a user and returns a signed token on success.
// Both unknown-user and wrong-password failures surface as ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, ok := u.VerifyCredentials(ctx, username, password)
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// RemoveUser deletes the user with the given ID.
// It returns ErrUserNotFound if no such user exists; the store is unchanged.
func (u *authUsecase) RemoveUser(ctx context.Context, id uint) error {
	return u.users.DeleteByID(ctx, id)
}
