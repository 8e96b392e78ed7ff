package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	accesslog "github.com/sciencemesh/sciencemesh-admin/internal/logger/adapter/fiber"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/handler/login"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/handler/logout"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/handler/sciencemesh"
)

const (
	// CheckAlivePath answers 200 while serving and 503 while draining.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"

	// StaticPath serves the embedded assets.
	StaticPath = "/static"
)

var (
	// ErrConfigNil is returned by New without a config.
	ErrConfigNil = errors.New("config cannot be nil")

	// ErrDBNil is returned by New without a database handle.
	ErrDBNil = errors.New("db cannot be nil")
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown blocks until SIGINT or SIGTERM and then drains the server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown flips checkalive to 503, waits ShutDownTime seconds so load
// balancers drop this instance, and stops fiber.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func newTemplateEngine(cfg *config.Config) (*html.Engine, error) {
	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		engine := html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")

		return engine, nil
	}

	templates, err := templateFS()
	if err != nil {
		return nil, err
	}

	return html.NewFileSystem(templates, ".gohtml"), nil
}

// New creates the web service and registers every handler.
func New(cfg *config.Config, db *gorm.DB, store sciencemesh.Store) (*Service, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if db == nil {
		return nil, ErrDBNil
	}

	templateEngine, err := newTemplateEngine(cfg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        8192,
			AppName:               cfg.Title,
			CaseSensitive:         true,
			Immutable:             true,
			DisableStartupMessage: !cfg.DevMode,
			JSONEncoder:           sonic.Marshal,
			JSONDecoder:           sonic.Unmarshal,
			Views:                 templateEngine,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.DevMode,
			},
		),
	)

	service := &Service{
		cfg: cfg,
		App: app,
		// skip the drain delay when there is nothing to drain for
		fastShutDown: cfg.Webserver.ShutDownTime == 0,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)

	if cfg.Webserver.Metrics {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	if err = login.Handler.Init(app, cfg, db); err != nil {
		return nil, err
	}

	if err = logout.Handler.Init(app, cfg); err != nil {
		return nil, err
	}

	if err = sciencemesh.Handler.Init(app, cfg, store); err != nil {
		return nil, err
	}

	// redirect root to the settings page
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(sciencemesh.Path)
	})

	return service, nil
}
