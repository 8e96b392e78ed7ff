// Package auth guards routes behind the session cookie.
//
// RequireLogin answers API style (401 json) because it protects the settings
// form submission. RequireAdmin protects pages and redirects anonymous
// visitors to the login page.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/session"
)

const (
	// LoginPath is where anonymous page requests are sent.
	LoginPath = "/login"

	// CurrentUserKey is the fiber.Locals key of the logged in user.
	CurrentUserKey = "CurrentUser"
)

// loadUser resolves the session cookie into an active user.
func loadUser(c *fiber.Ctx) (models.User, bool) {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return models.User{}, false
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		log.Debug().Err(err).Msg("invalid session")
		return models.User{}, false
	}

	if sessData.User.ID == 0 || !sessData.User.Active {
		return models.User{}, false
	}

	c.Locals(CurrentUserKey, sessData.User)

	return sessData.User, true
}

// RequireLogin lets any logged in user pass.
func RequireLogin(c *fiber.Ctx) error {
	if _, ok := loadUser(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	return c.Next()
}

// RequireAdmin lets only administrators pass.
func RequireAdmin(c *fiber.Ctx) error {
	u, ok := loadUser(c)
	if !ok {
		return c.Redirect(LoginPath)
	}

	if !u.Admin {
		log.Warn().Uint64("user_id", u.ID).Str("path", c.Path()).Msg("user lacks admin rights")

		return c.Status(fiber.StatusForbidden).SendString("Forbidden: administrator rights required")
	}

	return c.Next()
}

// CurrentUser returns the user stored by one of the guards.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	u, ok := c.Locals(CurrentUserKey).(models.User)
	return u, ok
}
