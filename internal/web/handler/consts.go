// Package handler holds what all web handlers share.
package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root of a fiber.Router group.
	RouterRootPath = ""

	// ErrNilACDFatalLogMsg is used if app or cfg or a dependency is nil.
	ErrNilACDFatalLogMsg = "app, cfg or a handler dependency is nil"
)
