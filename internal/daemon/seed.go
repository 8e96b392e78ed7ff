package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/controller/user"
	"github.com/sciencemesh/sciencemesh-admin/internal/uniuri"
)

const defaultAdminUsername = "admin"

// seed creates the first admin when the users table is empty.
func seed(cfg *config.Config, db *gorm.DB) error {
	count, err := user.Count(db)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	username := cfg.Admin.Username
	if username == "" {
		username = defaultAdminUsername
	}

	password := cfg.Admin.Password
	generated := password == ""

	if generated {
		if password, err = uniuri.New(); err != nil {
			return err
		}
	}

	if _, err = user.Create(db, username, password, true); err != nil {
		return err
	}

	event := log.Warn().Str("username", username)
	if generated {
		// only chance to see it
		event.Str("password", password)
	}

	event.Msg("created initial admin user")

	return nil
}
