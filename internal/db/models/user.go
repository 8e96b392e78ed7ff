package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is a local account allowed to log in to the admin interface.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the account can log in.
	Active bool
	// Admin grants access to the ScienceMesh settings page.
	Admin bool
	// Username is the unique login name.
	Username string `gorm:"unique;size:100;not null"`
	// Password is the Argon2id hash of the password.
	Password string `gorm:"size:255" json:"-"`
	// CreatedAt is managed by gorm.
	CreatedAt time.Time
	// UpdatedAt is managed by gorm.
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password with the default Argon2id parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword compares a plaintext password against the stored hash in constant time.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}
