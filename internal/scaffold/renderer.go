package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates
var templatesFS embed.FS

// Context is the data every template renders against. One value covers
// all templates; templates pick the fields they need.
type Context struct {
	// ProjectName is the Django project package name (e.g. "config").
	ProjectName string

	// AppName is the custom application name, empty when none.
	AppName string

	// ComposeProject names the Docker Compose project; services, networks
	// and volumes are prefixed with it.
	ComposeProject string

	// Docker marks runs with the Docker integration enabled, which adds
	// the container-oriented pins to requirements.txt.
	Docker bool
}

// Renderer renders the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses all embedded templates once. A parse failure means
// a broken template shipped inside the binary; callers treat it as a
// startup error.
func NewRenderer() (*Renderer, error) {
	// [[ ]] delimiters keep the Prometheus/Grafana {{ $labels.* }}
	// syntax inert during rendering.
	tmpl, err := template.New("scaffold").
		Delims("[[", "]]").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templatesFS, "templates/*.tmpl", "templates/*/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template and returns its output.
func (r *Renderer) Render(name string, ctx Context) (string, error) {
	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, name, ctx); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return out.String(), nil
}

// RenderToFile renders the named template and writes the result to path,
// creating parent directories as needed.
func (r *Renderer) RenderToFile(name, path string, ctx Context, mode os.FileMode) error {
	content, err := r.Render(name, ctx)
	if err != nil {
		return err
	}
	return WriteFile(path, []byte(content), mode)
}

// WriteFile writes data to path, creating the parent directory tree.
// This is the single write path for every generated file.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readEmbedded returns a non-template embedded file verbatim.
func readEmbedded(name string) ([]byte, error) {
	data, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded file %s: %w", name, err)
	}
	return data, nil
}
