package views

import (
	"embed"
	"html/template"
)

//go:embed panel.html
var files embed.FS

// PanelTemplate is the name the panel page is registered under.
const PanelTemplate = "panel.html"

// Load parses the embedded page templates.
func Load() (*template.Template, error) {
	return template.New(PanelTemplate).ParseFS(files, PanelTemplate)
}
