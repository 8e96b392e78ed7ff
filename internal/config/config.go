// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is used when no config directory is given.
	DefaultPath = "./etc/"

	// FileName is the name of the main config file inside the config directory.
	FileName = "main.toml"

	// EnvConfigJSON holds a JSON document overriding the file based config.
	EnvConfigJSON = "SCIENCEMESH_ADMIN_CONFIG_JSON"

	defaultShutDownTime  = 5
	defaultSessionExpiry = time.Hour
	defaultEngine        = EngineSQLite
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return decode(v)
}

// Watch re-reads the config file on every change and passes the result to onChange.
// Invalid intermediate states of the file are logged and skipped.
func Watch(path string, onChange func(Config)) error {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read main config file")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		c, err := decode(v)
		if err != nil {
			log.Error().Err(err).Str("file", e.Name).Msg("ignoring invalid config change")
			return
		}

		log.Info().Str("file", e.Name).Msg("config reloaded")
		onChange(c)
	})
	v.WatchConfig()

	return nil
}

func newViper(path string) *viper.Viper {
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, FileName))
	v.SetConfigType("toml")
	v.SetDefault("Webserver.ShutDownTime", defaultShutDownTime)

	return v
}

func decode(v *viper.Viper) (Config, error) {
	var (
		c   Config
		err error
	)

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	if configJSON := os.Getenv(EnvConfigJSON); configJSON != "" {
		c, err = decodeAndMergeConfig(c, configJSON)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from env "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the minimal settings needed to start and fills defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	// an explicit 0 skips the drain, the default comes from newViper
	if c.Webserver.ShutDownTime < 0 {
		c.Webserver.ShutDownTime = 0
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.DB.Engine == "" {
		c.DB.Engine = defaultEngine
	}

	if err := validator.New().Struct(c.DB); err != nil {
		return errors.Wrap(ErrUnsupportedDBEngine, err.Error())
	}

	return nil
}
