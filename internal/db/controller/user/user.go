// Package user provides the queries on local accounts used by login and seeding.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
)

const (
	usernameQueryPattern = "username = ?"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameEmpty is returned when a username is empty.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrPasswordEmpty is returned when a password is empty.
	ErrPasswordEmpty = errors.New("password cannot be empty")
	// ErrUserAlreadyExists is returned when creating a user whose username is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByUsername retrieves a user by username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if username == "" {
		return nil, ErrUsernameEmpty
	}

	var u models.User

	result := db.Where(usernameQueryPattern, username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// Count returns the number of users.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Create creates an active local user with the given plaintext password.
func Create(db *gorm.DB, username, password string, admin bool) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if username == "" {
		return nil, ErrUsernameEmpty
	}

	if password == "" {
		return nil, ErrPasswordEmpty
	}

	_, err := GetByUsername(db, username)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}

	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username: username,
		Password: hash,
		Active:   true,
		Admin:    admin,
	}

	if err = db.Create(u).Error; err != nil {
		return nil, err
	}

	return u, nil
}
