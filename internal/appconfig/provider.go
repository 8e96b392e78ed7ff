// Package appconfig serves the [App] section of the configuration to the
// public settings endpoint and keeps it current while the file changes.
package appconfig

import (
	"slices"
	"sync/atomic"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
)

// Provider holds the current feature settings.
// All methods are safe for concurrent use.
type Provider struct {
	current atomic.Pointer[config.App]
}

// New returns a Provider serving app.
func New(app config.App) *Provider {
	p := &Provider{}
	p.Update(app)

	return p
}

// Update replaces the served settings.
func (p *Provider) Update(app config.App) {
	app.Formats = slices.Clone(app.Formats)
	p.current.Store(&app)
}

// Watch keeps the provider in sync with the config file in path.
func (p *Provider) Watch(path string) error {
	return config.Watch(path, func(c config.Config) {
		p.Update(c.App)
	})
}

// Formats returns the document formats, never nil.
func (p *Provider) Formats() []string {
	formats := p.current.Load().Formats
	if formats == nil {
		return []string{}
	}

	return slices.Clone(formats)
}

// SameTab reports whether documents open in the same browser tab.
func (p *Provider) SameTab() bool {
	return p.current.Load().SameTab
}

// ShareAttributesVersion returns the share attributes version.
func (p *Provider) ShareAttributesVersion() string {
	return p.current.Load().ShareAttributesVersion
}
