package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sciencemesh/sciencemesh-admin/internal/appconfig"
	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/controller/sciencemesh"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/dsn"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
	"github.com/sciencemesh/sciencemesh-admin/internal/logger"
	"github.com/sciencemesh/sciencemesh-admin/internal/web"
	"github.com/sciencemesh/sciencemesh-admin/internal/web/session"
)

// ErrConfigNil is returned by New without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	provider   *appconfig.Provider
	store      *sciencemesh.Store
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM and returns after the graceful shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	done := make(chan error, 1)

	go func() {
		done <- d.webService.Start(addr)
	}()

	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("web service started")

	go d.webService.WaitShutdown()

	return <-done
}

// New opens the database, prepares the schema and builds the web service.
// configPath is watched so the public settings follow edits of the file.
func New(cfg *config.Config, configPath string) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.SettingsRecord{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seed(cfg, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	session.Init(session.NewStorage(cfg))

	provider := appconfig.New(cfg.App)
	if err = provider.Watch(configPath); err != nil {
		// the env override may be the only config source
		log.Warn().Err(err).Msg("config watcher not started, public settings are fixed until restart")
	}

	store, err := sciencemesh.New(db, provider, logger.Component("sciencemesh"))
	if err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, db, store)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         db,
		provider:   provider,
		store:      store,
		webService: webService,
	}, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	default:
		if dir := filepath.Dir(cfg.DB.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
				return nil, err
			}
		}

		dialector = sqlite.Open(dsn.Create(cfg))
	}

	return gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(cfg.DB.Debug, logger.Component("gorm"))})
}

// newGormLogger sends gorm output through zerolog. A missing record is a
// normal outcome for lookups and is not reported.
func newGormLogger(debug bool, zl zerolog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	return gormlogger.New(&zl, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond, //nolint:mnd
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
