package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dockerContext() Context {
	return Context{
		ProjectName:    "myproject",
		ComposeProject: "myproject",
		Docker:         true,
	}
}

// TestCreateDockerSetup_FileTree verifies that the full infrastructure tree
// is written: compose manifest and env files at the project root, and the
// Dockerfile, scripts, nginx, monitoring, and Grafana provisioning files
// under infrastructure/docker.
func TestCreateDockerSetup_FileTree(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	dir := t.TempDir()

	err = CreateDockerSetup(r, dir, dockerContext())
	require.NoError(t, err)

	expected := []string{
		"docker-compose.yml",
		".dockerignore",
		".env.example",
		filepath.Join("infrastructure", "docker", "Dockerfile"),
		filepath.Join("infrastructure", "docker", "scripts", "dev.sh"),
		filepath.Join("infrastructure", "docker", "scripts", "celery_worker.sh"),
		filepath.Join("infrastructure", "docker", "scripts", "celery_beat.sh"),
		filepath.Join("infrastructure", "docker", "scripts", "flower.sh"),
		filepath.Join("infrastructure", "docker", "nginx", "nginx.conf"),
		filepath.Join("infrastructure", "docker", "prometheus", "prometheus.yml"),
		filepath.Join("infrastructure", "docker", "prometheus", "alert_rules.yml"),
		filepath.Join("infrastructure", "docker", "alertmanager", "alertmanager.yml"),
		filepath.Join("infrastructure", "docker", "grafana", "provisioning", "datasources", "datasource.yml"),
		filepath.Join("infrastructure", "docker", "grafana", "provisioning", "dashboards", "dashboard.yml"),
		filepath.Join("infrastructure", "docker", "grafana", "provisioning", "dashboards", "json", "django-app.json"),
		filepath.Join("infrastructure", "docker", "grafana", "provisioning", "dashboards", "json", "infrastructure.json"),
		filepath.Join("infrastructure", "docker", "grafana", "provisioning", "dashboards", "json", "celery.json"),
	}
	for _, f := range expected {
		info, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "file %s should exist", f)
		assert.False(t, info.IsDir())
	}
}

// TestCreateDockerSetup_ProjectNameSubstitution verifies that the rendered
// files carry the project and compose names in the places that matter: the
// compose project and network, the database env vars, the gunicorn module
// path, and the alertmanager mail addresses.
func TestCreateDockerSetup_ProjectNameSubstitution(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	dir := t.TempDir()

	err = CreateDockerSetup(r, dir, dockerContext())
	require.NoError(t, err)

	compose, err := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(compose), "name: myproject")
	assert.Contains(t, string(compose), "myproject-network")

	env, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "POSTGRES_DB=myproject")
	assert.Contains(t, string(env), "noreply@myproject.local")

	dockerfile, err := os.ReadFile(filepath.Join(dir, "infrastructure", "docker", "Dockerfile"))
	require.NoError(t, err)
	assert.Contains(t, string(dockerfile), "myproject.wsgi:application")

	alertmanager, err := os.ReadFile(filepath.Join(dir, "infrastructure", "docker", "alertmanager", "alertmanager.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(alertmanager), "alertmanager@myproject.local")
	assert.Contains(t, string(alertmanager), "alerts@myproject.local")
}

// TestCreateDockerSetup_PreservesPrometheusSyntax verifies that the written
// alert rules still contain the Prometheus template expressions.
func TestCreateDockerSetup_PreservesPrometheusSyntax(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	dir := t.TempDir()

	err = CreateDockerSetup(r, dir, dockerContext())
	require.NoError(t, err)

	rules, err := os.ReadFile(filepath.Join(dir, "infrastructure", "docker", "prometheus", "alert_rules.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(rules), "{{ $labels.job }}")
}

// TestCreateDockerSetup_DashboardsAreJSON verifies that the JSONC comments
// in the bundled dashboards are stripped on the way out. Grafana's file
// provisioner only accepts plain JSON.
func TestCreateDockerSetup_DashboardsAreJSON(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	dir := t.TempDir()

	err = CreateDockerSetup(r, dir, dockerContext())
	require.NoError(t, err)

	jsonDir := filepath.Join(dir, "infrastructure", "docker", "grafana", "provisioning", "dashboards", "json")
	for _, name := range []string{"django-app.json", "infrastructure.json", "celery.json"} {
		data, err := os.ReadFile(filepath.Join(jsonDir, name))
		require.NoError(t, err)

		var dashboard map[string]interface{}
		err = json.Unmarshal(data, &dashboard)
		require.NoError(t, err, "dashboard %s should be valid JSON after comment stripping", name)
		assert.NotEmpty(t, dashboard["title"], "dashboard %s should keep its title", name)
	}
}

// --- ValidateCompose tests ---

// TestValidateCompose verifies the manifest validator against the rendered
// template, a manifest with a missing service, and a YAML syntax error.
func TestValidateCompose(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rendered, err := r.Render("docker-compose.yml.tmpl", dockerContext())
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "rendered manifest passes",
			data: rendered,
		},
		{
			name:    "missing service is reported",
			data:    "name: demo\nservices:\n  web: {}\n",
			wantErr: "missing service",
		},
		{
			name:    "invalid yaml is reported",
			data:    "services: [unbalanced",
			wantErr: "not valid YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompose([]byte(tt.data))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
