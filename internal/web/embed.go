package web

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed static
	embeddedStaticFiles embed.FS

	//go:embed templates
	embeddedTemplates embed.FS
)

// templateFS roots the embedded templates at "templates" so view names
// are "settings" and "layouts/base".
func templateFS() (http.FileSystem, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, err
	}

	return http.FS(sub), nil
}
