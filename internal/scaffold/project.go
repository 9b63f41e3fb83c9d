package scaffold

import (
	"path/filepath"

	"djangokit/internal/settings"
)

// CreateRequirements writes requirements.txt into dir. The Docker flag
// adds the pins the Compose stack needs (Celery, Redis, Prometheus
// exporter, Postgres driver, gunicorn).
func CreateRequirements(r *Renderer, dir string, ctx Context) error {
	return r.RenderToFile("requirements.txt.tmpl", filepath.Join(dir, "requirements.txt"), ctx, 0o644)
}

// CreateHelpersModule writes the shared helpers package: an importable
// module with the abstract timestamped base model the generated apps
// inherit from.
func CreateHelpersModule(r *Renderer, dir string, ctx Context) error {
	if err := WriteFile(filepath.Join(dir, "helpers", "__init__.py"), []byte{}, 0o644); err != nil {
		return err
	}
	return r.RenderToFile("helpers_models.py.tmpl", filepath.Join(dir, "helpers", "models.py"), ctx, 0o644)
}

// CreateAuthAppFiles overwrites the generated accounts app's models.py
// with the custom User model, fills in its admin registration, and adds
// the DRF serializer. `manage.py startapp` must have created the app
// directory first.
func CreateAuthAppFiles(r *Renderer, dir string, ctx Context) error {
	appDir := filepath.Join(dir, settings.AccountsApp)
	files := []struct {
		template string
		name     string
	}{
		{"accounts_models.py.tmpl", "models.py"},
		{"accounts_admin.py.tmpl", "admin.py"},
		{"accounts_serializers.py.tmpl", "serializers.py"},
	}
	for _, f := range files {
		if err := r.RenderToFile(f.template, filepath.Join(appDir, f.name), ctx, 0o644); err != nil {
			return err
		}
	}
	return nil
}
