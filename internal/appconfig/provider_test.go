package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
)

func TestProvider(t *testing.T) {
	p := New(config.App{
		Formats:                []string{"docx", "xlsx"},
		SameTab:                true,
		ShareAttributesVersion: "v1",
	})

	assert.Equal(t, []string{"docx", "xlsx"}, p.Formats())
	assert.True(t, p.SameTab())
	assert.Equal(t, "v1", p.ShareAttributesVersion())

	p.Update(config.App{Formats: []string{"odt"}, ShareAttributesVersion: "v2"})

	assert.Equal(t, []string{"odt"}, p.Formats())
	assert.False(t, p.SameTab())
	assert.Equal(t, "v2", p.ShareAttributesVersion())
}

func TestProvider_FormatsAreCopies(t *testing.T) {
	formats := []string{"docx"}
	p := New(config.App{Formats: formats})

	formats[0] = "changed"
	assert.Equal(t, []string{"docx"}, p.Formats())

	got := p.Formats()
	got[0] = "changed"
	assert.Equal(t, []string{"docx"}, p.Formats())
}

func TestProvider_NilFormats(t *testing.T) {
	p := New(config.App{})

	assert.NotNil(t, p.Formats())
	assert.Empty(t, p.Formats())
}

const watchedConfig = `
[Webserver]
Port = 8080
URL = "http://localhost:8080"

[App]
Formats = [%s]
SameTab = %s
ShareAttributesVersion = "%s"
`

func writeConfig(t *testing.T, dir, formats, sameTab, version string) {
	t.Helper()

	content := []byte(fmt.Sprintf(watchedConfig, formats, sameTab, version))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), content, 0o600))
}

func TestProvider_Watch(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `"docx"`, "false", "v1")

	cfg, err := config.ReadConfig(dir)
	require.NoError(t, err)

	p := New(cfg.App)
	require.NoError(t, p.Watch(dir))

	assert.Equal(t, []string{"docx"}, p.Formats())

	writeConfig(t, dir, `"odt", "md"`, "true", "v2")

	assert.Eventually(t, func() bool {
		return p.ShareAttributesVersion() == "v2"
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, []string{"odt", "md"}, p.Formats())
	assert.True(t, p.SameTab())
}
