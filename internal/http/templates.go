package http

import (
	"html"
	"html/template"
	"path/filepath"

	"github.com/mrlokans/locallibrary/web"
)

// templateFuncs are available to every catalog template. Stored text is
// escaped on input, so templates unescape it and let html/template escape
// it again on output.
var templateFuncs = template.FuncMap{
	"unescape": html.UnescapeString,
}

// loadTemplates parses the templates under dir, or the embedded ones when
// dir is empty.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs)
	if dir != "" {
		return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
	}
	return tmpl.ParseFS(web.Templates(), "*.html")
}
