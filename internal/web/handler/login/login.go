// Package login authenticates local users and opens their session.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/controller/user"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/handler"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/middleware/auth"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/navigation"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = auth.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"

	// AfterLoginPath is where a successful login lands.
	AfterLoginPath = "/settings"

	// StylePath is the stylesheet of the login page.
	StylePath = "/static/css/style.css"
)

// form is the submitted login form.
type form struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

func (s *Service) render(c *fiber.Ctx, status int, errMsg string) error {
	bind := fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext("Login", "login").AddStyle(StylePath),
	}
	if errMsg != "" {
		bind["error"] = errMsg
	}

	return c.Status(status).Render(TemplateName, bind, handler.BaseLayout)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(form)

	if err := c.BodyParser(in); err != nil {
		return s.render(c, fiber.StatusBadRequest, ErrInvalidFormData.Error())
	}

	if err := s.validator.Struct(in); err != nil {
		return s.render(c, fiber.StatusBadRequest, ErrInvalidFormData.Error())
	}

	u, err := s.authenticate(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn().Str("username", in.Username).Msg("failed login")
			return s.render(c, fiber.StatusUnauthorized, err.Error())
		}

		log.Error().Err(err).Msg("login failed")

		return s.render(c, fiber.StatusInternalServerError, ErrInternalServerError.Error())
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.render(c, fiber.StatusInternalServerError, ErrInternalServerError.Error())
	}

	if err = (&session.Data{User: *u}).Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.render(c, fiber.StatusInternalServerError, ErrInternalServerError.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("username", u.Username).Bool("admin", u.Admin).Msg("user logged in")

	return c.Redirect(AfterLoginPath)
}

// authenticate returns the active user matching username and password.
func (s *Service) authenticate(username, password string) (*models.User, error) {
	u, err := user.GetByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !u.Active || !u.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
