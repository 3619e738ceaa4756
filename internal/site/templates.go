package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"home.html",
	"about.html",
	"services.html",
	"contact.html",
	"not_found.html",
}

// TemplateEngine renders the embedded page templates inside the shared layout.
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewTemplateEngine parses every page together with layout.html.
func NewTemplateEngine() (*TemplateEngine, error) {
	engine := &TemplateEngine{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}
	return engine, nil
}

// Render writes the page with status code. The page is rendered into a
// buffer first so a template failure can still become a 500. Once the
// header is out a failed write means the client went away, so only
// template errors are returned.
func (e *TemplateEngine) Render(w http.ResponseWriter, code int, name string, data any) error {
	var buf bytes.Buffer
	if err := e.RenderTo(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
	return nil
}

// RenderTo executes the named page into w.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
