package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// standalone pages are complete documents rendered without the layout.
var standalone = map[string]bool{"report": true}

// Renderer executes the dashboard's html/template pages.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
}

func New() (*Renderer, error) {
	entries, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range entries {
		if file == layoutFile || file == partialsFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")

		var tmpl *template.Template
		if standalone[name] {
			tmpl, err = template.New(name).Funcs(funcs).ParseFS(files, file)
		} else {
			tmpl, err = template.New(name).Funcs(funcs).ParseFS(files, layoutFile, partialsFile, file)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page wrapped in the layout, or on its own for standalone pages.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	entry := "layout"
	if standalone[page] {
		entry = page + ".html"
	}
	return tmpl.ExecuteTemplate(w, entry, data)
}
