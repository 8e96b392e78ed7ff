// Package sciencemesh serves the ScienceMesh settings page, the settings
// form submission and the public feature settings.
//
// Routes:
//
//	GET  /settings         admin only, renders the settings page
//	POST /settings         any logged in user, replaces the stored settings
//	GET  /settings/public  no authentication, feature settings as json
//
// POST deliberately requires a login and not administrator rights. Tighten
// it in Init if non admin users must not change the site registration.
package sciencemesh

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	controller "github.com/sciencemesh/sciencemesh-admin/internal/db/controller/sciencemesh"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/handler"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/middleware/auth"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/navigation"
)

const (
	// Path is the path to the settings page and the form submission.
	Path = handler.RootPath + "settings"

	// PublicPath is the path of the public feature settings.
	PublicPath = Path + "/public"

	// TemplateName is the name of the settings template.
	TemplateName = "settings"

	// ScriptPath is the settings page script the layout injects.
	ScriptPath = "/static/js/settings.js"

	// StylePath is the stylesheet the layout injects.
	StylePath = "/static/css/style.css"

	// MsgStoreFailed is the payload of a failed save.
	MsgStoreFailed = "error storing settings, check server logs"

	// MsgInvalidPayload is the payload of an undecodable save request.
	MsgInvalidPayload = "invalid settings payload"
)

// ErrStoreNil is returned by Init without a settings store.
var ErrStoreNil = errors.New("settings store is nil")

// Store is what the handler needs from the settings persistence.
type Store interface {
	Get(ctx context.Context) models.SettingsRecord
	Replace(ctx context.Context, rec models.SettingsRecord) (models.SettingsRecord, error)
	PublicSettings() controller.PublicSettings
}

// Service is the settings handler service.
type Service struct {
	cfg   *config.Config
	store Store
}

// Handler is the settings handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the settings routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store Store) error {
	if app == nil || cfg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if store == nil {
		return ErrStoreNil
	}

	s.cfg = cfg
	s.store = store

	app.Get(PublicPath, s.GetPublic)
	app.Get(Path, auth.RequireAdmin, s.Get)
	app.Post(Path, auth.RequireLogin, s.Post)

	return nil
}

func newNavigation() *navigation.Context {
	return navigation.NewContext("ScienceMesh Settings", "settings").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("ScienceMesh", Path, true).
		AddScript(ScriptPath).
		AddStyle(StylePath)
}

// Get renders the settings page with the stored or the default settings.
func (s *Service) Get(c *fiber.Ctx) error {
	settings := s.store.Get(c.UserContext())

	bind := fiber.Map{
		"Title":      s.cfg.Title,
		"Settings":   settings,
		"Navigation": newNavigation(),
	}

	if u, ok := auth.CurrentUser(c); ok {
		bind["CurrentUser"] = u
	}

	return c.Render(TemplateName, bind, handler.BaseLayout)
}

// Post replaces the stored settings with the submitted ones and echoes them.
func (s *Service) Post(c *fiber.Ctx) error {
	var settings models.SettingsRecord

	if err := c.BodyParser(&settings); err != nil {
		log.Debug().Err(err).Msg("failed to parse sciencemesh settings")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidPayload})
	}

	if err := settings.CheckCounters(); err != nil {
		log.Debug().Err(err).Msg("sciencemesh settings out of range")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidPayload})
	}

	stored, err := s.store.Replace(c.UserContext(), settings)
	if err != nil {
		// the store already logged the cause
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": MsgStoreFailed})
	}

	event := log.Info().
		Str("sitename", stored.SiteName).
		Str("siteurl", stored.SiteURL).
		Str("iopurl", stored.IOPURL)
	if u, ok := auth.CurrentUser(c); ok {
		event.Str("user", u.Username)
	}

	event.Msg("sciencemesh settings saved")

	return c.JSON(stored)
}

// GetPublic returns the public feature settings.
func (s *Service) GetPublic(c *fiber.Ctx) error {
	return c.JSON(s.store.PublicSettings())
}
