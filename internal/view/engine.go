package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"portfolio-web/pkg/store"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutFile = "templates/layouts/base.html"
	rootTmpl   = "base"
)

// Context is the per-render data every page gets next to its own fields.
type Context struct {
	CurrentUser string
	IsLoggedIn  bool
	Flashes     []store.Flash
}

// Page is the binding passed to Render.
type Page struct {
	Context
	Data map[string]interface{}
}

// Engine implements fiber.Views on top of html/template. Every page is
// parsed into its own clone of the base layout so pages can redefine the
// "title" and "content" blocks independently.
type Engine struct {
	mu        sync.RWMutex
	fsys      fs.FS
	templates map[string]*template.Template
}

func New() *Engine {
	return &Engine{fsys: templateFS}
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

func (e *Engine) Load() error {
	base, err := template.New(rootTmpl).Funcs(funcs).ParseFS(e.fsys, layoutFile)
	if err != nil {
		return fmt.Errorf("view: parse layout: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, pattern := range []string{"templates/pages/*.html", "templates/errors/*.html"} {
		files, err := fs.Glob(e.fsys, pattern)
		if err != nil {
			return err
		}
		for _, file := range files {
			t, err := base.Clone()
			if err != nil {
				return err
			}
			if _, err := t.ParseFS(e.fsys, file); err != nil {
				return fmt.Errorf("view: parse %s: %w", file, err)
			}
			templates[viewName(file)] = t
		}
	}

	e.mu.Lock()
	e.templates = templates
	e.mu.Unlock()
	return nil
}

// viewName maps templates/pages/index.html to "index" and
// templates/errors/404.html to "errors/404".
func viewName(file string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), path.Ext(file))
	return strings.TrimPrefix(name, "pages/")
}

func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	t, ok := e.templates[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view: template %q not found", name)
	}
	return t.ExecuteTemplate(w, rootTmpl, binding)
}
