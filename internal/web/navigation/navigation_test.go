package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Test Page", "page1")

	assert.Equal(t, "Test Page", ctx.PageTitle)
	assert.Equal(t, "page1", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Scripts)
	assert.Empty(t, ctx.Styles)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Test Page", "page1").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Settings", "/settings", true)

	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/", ctx.Breadcrumbs[0].URL)
	assert.False(t, ctx.Breadcrumbs[0].Active)
	assert.Equal(t, "Settings", ctx.Breadcrumbs[1].Title)
	assert.True(t, ctx.Breadcrumbs[1].Active)
}

func TestContext_Assets(t *testing.T) {
	ctx := NewContext("Settings", "settings").
		AddScript("/static/js/settings.js").
		AddStyle("/static/css/style.css").
		AddScript("/static/js/settings.js").
		AddStyle("/static/css/style.css")

	assert.Equal(t, []string{"/static/js/settings.js"}, ctx.Scripts)
	assert.Equal(t, []string{"/static/css/style.css"}, ctx.Styles)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Settings", "settings")

	assert.True(t, ctx.IsActive("settings"))
	assert.False(t, ctx.IsActive("login"))
}
