package config

// Supported values for DB.Engine.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string `validate:"required,oneof=sqlite mysql postgres"`
	Path     string // sqlite database file
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Debug    bool // log every sql statement
}
