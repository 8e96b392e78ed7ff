// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// mysql gets a go-sql-driver DSN, postgres a connection URI and sqlite the file path.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.Engine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
			db.User,
			db.Password,
			net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
			db.Name,
			db.Extras,
		)
	case config.EnginePostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(db.User, db.Password),
			Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
			Path:     "/" + db.Name,
			RawQuery: db.Extras,
		}

		return u.String()
	default:
		return db.Path
	}
}
