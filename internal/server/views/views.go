// Package views renders the HTML pages from html/template files, either the
// built-in set or a directory supplied at startup.
package views

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"time"
)

// View names every template set must define.
const (
	Index    = "index"
	Entry    = "entry"
	NewEntry = "new_entry"
)

// ErrUnknownView is returned by Render for a name the set does not define.
var ErrUnknownView = errors.New("unknown view")

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer writes the named view for data to w.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// TemplateRenderer is a Renderer backed by a parsed html/template set.
type TemplateRenderer struct {
	t *template.Template
}

var funcs = template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
}

// NewTemplateRenderer parses the embedded templates when dir is empty, or
// every *.html file in dir otherwise. All of Index, Entry and NewEntry must
// be defined.
func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	var (
		fsys    fs.FS = templatesFS
		pattern       = "templates/*.html"
	)
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("template dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template dir %s: not a directory", dir)
		}
		fsys, pattern = os.DirFS(dir), "*.html"
	}
	return parse(fsys, pattern)
}

func parse(fsys fs.FS, pattern string) (*TemplateRenderer, error) {
	t, err := template.New("views").Funcs(funcs).ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{Index, Entry, NewEntry} {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("parse templates: view %q not defined", name)
		}
	}
	return &TemplateRenderer{t: t}, nil
}

// Render executes the view into a buffer and copies it to w only on
// success, so a failing template writes nothing.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	if r.t.Lookup(name) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownView, name)
	}

	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
