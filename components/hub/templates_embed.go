package hub

import (
	"embed"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed runtime/core.js
var coreSource string

//go:embed runtime/mount.js
var mountSource string

// NewTemplateRenderer creates a go-template renderer backed by the embedded templates.
func NewTemplateRenderer() (Renderer, error) {
	return template.NewRenderer(
		template.WithFS(embeddedTemplates),
		template.WithBaseDir("templates"),
		template.WithExtension(".tpl"),
	)
}

// CoreSource returns the pure panel runtime shipped inside emitted scripts.
// It defines createHubCore(tables).
func CoreSource() string {
	return coreSource
}

// MountSource returns the DOM layer shipped inside emitted scripts. It
// defines mountHub(env).
func MountSource() string {
	return mountSource
}
