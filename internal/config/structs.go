package config

import (
	"time"

	"github.com/sciencemesh/sciencemesh-admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	Table      string // table used by the sql session storages
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Admin     Admin
	App       App
}

// Admin holds the account created on first start when no user exists yet.
type Admin struct {
	Username string
	Password string // empty means a random password is generated and logged once
}

// App holds the feature settings published on /settings/public.
type App struct {
	Formats                []string // file extensions the editor integration handles
	SameTab                bool     // open documents in the same browser tab
	ShareAttributesVersion string
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Metrics        bool    // expose prometheus metrics on /metrics
	Port           int     // listening port for the webserver
	ShutDownTime   int     // seconds to answer 503 on checkalive before shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}
