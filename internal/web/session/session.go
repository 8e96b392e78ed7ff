// Package session stores the logged in user behind the session cookie.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/dsn"
	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
	"github.com/sciencemesh/sciencemesh-admin/internal/uniuri"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const defaultTable = "sessions"

// ErrNotInitialized is returned when the store is used before Init.
var ErrNotInitialized = errors.New("session store is not initialized")

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// Data represents the session data structure.
type Data struct {
	User models.User
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	if Store == nil {
		return ErrNotInitialized
	}

	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
// An unknown session ID is an error.
func (s *Data) Read(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session data of the given session ID.
func Delete(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	return Store.Storage.Delete(sessionID)
}

// NewStorage returns the sql session storage for the configured engine.
// SQLite installations get nil, which makes Init fall back to in-memory sessions.
func NewStorage(cfg *config.Config) fiber.Storage {
	table := cfg.Webserver.Session.Table
	if table == "" {
		table = defaultTable
	}

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return mysql.New(mysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		})
	case config.EnginePostgres:
		return postgres.New(postgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		})
	default:
		return nil
	}
}

// Init initializes the session store with the provided storage backend.
// A nil storage keeps sessions in memory.
func Init(storage fiber.Storage) {
	Store = session.New(session.Config{
		Storage: storage,
	})
}

// sessionIDLen characters of 62 give ~380 bits.
const sessionIDLen = 64

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	return uniuri.NewLen(sessionIDLen)
}
