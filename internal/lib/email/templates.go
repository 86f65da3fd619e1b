package email

import (
	"embed"
	"html/template"
)

// Template names an HTML template under templates/.
type Template string

const (
	// TemplateWelcome is sent after a user registers.
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (t Template) file() string {
	return string(t) + ".html"
}
