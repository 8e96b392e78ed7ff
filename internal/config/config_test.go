package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// the project root is two levels above internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc")
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.NotEmpty(t, cfg.DB.Path)

	assert.NotEmpty(t, cfg.App.Formats)
	assert.Contains(t, cfg.App.Formats, "docx")
	assert.NotEmpty(t, cfg.App.ShareAttributesVersion)

	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.Equal(t, "error.log", cfg.Log.File.ErrorLog)
	assert.NotEmpty(t, cfg.Log.AppName)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090},"App":{"SameTab":false}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	assert.False(t, cfg.App.SameTab)
	// untouched keys keep the file values
	assert.NotEmpty(t, cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestReadConfigShutDownTime(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{name: "unset uses default", line: "", want: defaultShutDownTime},
		{name: "explicit zero is kept", line: "ShutDownTime = 0", want: 0},
		{name: "explicit value", line: "ShutDownTime = 12", want: 12},
		{name: "negative is zero", line: "ShutDownTime = -3", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			content := "[Webserver]\nPort = 8080\nURL = \"http://localhost:8080\"\n" + tt.line + "\n"
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

			cfg, err := ReadConfig(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Webserver.ShutDownTime)
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{Port: 0, URL: "http://localhost:8080"},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: ""},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown engine",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				DB:        DB{Engine: "oracle"},
			},
			wantErr: ErrUnsupportedDBEngine,
		},
		{
			name: "postgres engine",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				DB:        DB{Engine: EnginePostgres},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, tt.config.Webserver.Session.ExpiryTime)
			assert.NotEmpty(t, tt.config.DB.Engine)
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		App: App{Formats: []string{"docx"}},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)

	assert.Contains(t, tomlStr, "Test")
	assert.Contains(t, tomlStr, "docx")
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title: "Test",
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(jsonStr, "{"))
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tomlStr), 0o600))

	reread, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, cfg.App, reread.App)
	assert.Equal(t, cfg.Webserver.Port, reread.Webserver.Port)
	assert.Equal(t, cfg.DB, reread.DB)
}
