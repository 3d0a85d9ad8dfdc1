// Package printview renders the print-only HTML documents consumed by the
// PDF rendering service. The pages carry no site chrome, only the card
// markup and its stylesheets.
package printview

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
