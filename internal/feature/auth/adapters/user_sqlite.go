// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"churn_backend/internal/feature/auth/domain/entity"
	"churn_backend/internal/feature/auth/usecase"
)

// userSQLite is the SQLite implementation of the UserRepository interface.
// It performs database operations through GORM.
type userSQLite struct {
	db *gorm.DB
}

// Compile-time check that userSQLite implements UserRepository.
var _ usecase.UserRepository = (*userSQLite)(nil)

// NewUserSQLite creates a new userSQLite instance over the given gorm.DB
// connection. Constructor for dependency injection.
func NewUserSQLite(db *gorm.DB) *userSQLite {
	return &userSQLite{db: db}
}

// Create inserts a user into the database.
// If a user with the same username already exists, it returns
// usecase.ErrUsernameAlreadyExists. Requires gorm's TranslateError so the
// unique-index violation surfaces as gorm.ErrDuplicatedKey.
func (r *userSQLite) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrUsernameAlreadyExists
		}
		return err
	}
	return nil
}

// FindByUsername retrieves a user by username.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userSQLite) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userSQLite) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// DeleteByID removes the user with the given ID.
// It returns usecase.ErrUserNotFound if no row was deleted.
func (r *userSQLite) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
