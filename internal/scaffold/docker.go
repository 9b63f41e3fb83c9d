package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// dockerDir is the root of the generated infrastructure tree, relative to
// the project directory.
var dockerDir = filepath.Join("infrastructure", "docker")

// RequiredServices is the fixed service topology of the generated Compose
// manifest. The manifest comes from template substitution with no dynamic
// service logic, so the rendered output must declare exactly these.
var RequiredServices = []string{
	"web",          // the Django application behind gunicorn
	"worker",       // Celery worker
	"scheduler",    // Celery beat
	"flower",       // Celery monitoring dashboard
	"nginx",        // reverse proxy
	"db",           // PostgreSQL
	"redis",        // cache + broker
	"mailpit",      // SMTP capture for outgoing mail
	"prometheus",   // metrics collection
	"alertmanager", // alert routing
	"grafana",      // metrics dashboards
}

// CreateDockerSetup generates the complete Docker integration: the Compose
// manifest, Dockerfile, env example, nginx and monitoring configuration,
// the Celery entry scripts, and the Grafana provisioning tree.
//
// ctx.ProjectName feeds module paths (wsgi, settings); ctx.ComposeProject
// feeds service, network, and volume naming.
func CreateDockerSetup(r *Renderer, dir string, ctx Context) error {
	compose, err := r.Render("docker-compose.yml.tmpl", ctx)
	if err != nil {
		return err
	}
	// Catch template drift before the manifest lands on disk: the output
	// must parse as YAML and declare the fixed topology.
	if err := ValidateCompose([]byte(compose)); err != nil {
		return err
	}
	if err := WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte(compose), 0o644); err != nil {
		return err
	}

	files := []struct {
		template string
		path     string
		mode     os.FileMode
	}{
		{"dockerignore.tmpl", ".dockerignore", 0o644},
		{"env.example.tmpl", ".env.example", 0o644},
		{"Dockerfile.tmpl", filepath.Join(dockerDir, "Dockerfile"), 0o644},
		{"dev.sh.tmpl", filepath.Join(dockerDir, "scripts", "dev.sh"), 0o755},
		{"celery_worker.sh.tmpl", filepath.Join(dockerDir, "scripts", "celery_worker.sh"), 0o755},
		{"celery_beat.sh.tmpl", filepath.Join(dockerDir, "scripts", "celery_beat.sh"), 0o755},
		{"flower.sh.tmpl", filepath.Join(dockerDir, "scripts", "flower.sh"), 0o755},
		{"nginx.conf.tmpl", filepath.Join(dockerDir, "nginx", "nginx.conf"), 0o644},
		{"prometheus.yml.tmpl", filepath.Join(dockerDir, "prometheus", "prometheus.yml"), 0o644},
		{"alert_rules.yml.tmpl", filepath.Join(dockerDir, "prometheus", "alert_rules.yml"), 0o644},
		{"alertmanager.yml.tmpl", filepath.Join(dockerDir, "alertmanager", "alertmanager.yml"), 0o644},
	}
	for _, f := range files {
		if err := r.RenderToFile(f.template, filepath.Join(dir, f.path), ctx, f.mode); err != nil {
			return err
		}
	}

	if err := writeGrafanaProvisioning(dir); err != nil {
		return err
	}
	return writeGrafanaDashboards(dir)
}

// composeManifest is the subset of the Compose schema the validator cares
// about.
type composeManifest struct {
	Name     string                 `yaml:"name"`
	Services map[string]interface{} `yaml:"services"`
}

// ValidateCompose checks that a rendered Compose manifest parses as YAML
// and declares every service in the fixed topology. Template edits that
// drop a service fail here instead of at `docker compose up`.
func ValidateCompose(data []byte) error {
	var manifest composeManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("generated docker-compose.yml is not valid YAML: %w", err)
	}

	for _, svc := range RequiredServices {
		if _, ok := manifest.Services[svc]; !ok {
			return fmt.Errorf("generated docker-compose.yml is missing service %q", svc)
		}
	}
	return nil
}

// grafanaDatasources is the Grafana datasource provisioning document.
type grafanaDatasources struct {
	APIVersion  int                 `yaml:"apiVersion"`
	Datasources []grafanaDatasource `yaml:"datasources"`
}

type grafanaDatasource struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Access    string `yaml:"access"`
	URL       string `yaml:"url"`
	IsDefault bool   `yaml:"isDefault"`
}

// grafanaDashboardConfig is the Grafana dashboard provider provisioning
// document.
type grafanaDashboardConfig struct {
	APIVersion int               `yaml:"apiVersion"`
	Providers  []grafanaProvider `yaml:"providers"`
}

type grafanaProvider struct {
	Name            string                 `yaml:"name"`
	OrgID           int                    `yaml:"orgId"`
	Folder          string                 `yaml:"folder"`
	Type            string                 `yaml:"type"`
	DisableDeletion bool                   `yaml:"disableDeletion"`
	UpdateInterval  int                    `yaml:"updateIntervalSeconds"`
	Options         grafanaProviderOptions `yaml:"options"`
}

type grafanaProviderOptions struct {
	Path string `yaml:"path"`
}

// writeGrafanaProvisioning generates the datasource and dashboard provider
// configuration. These files carry no project-specific substitution, so
// they are marshaled from structs rather than templated.
func writeGrafanaProvisioning(dir string) error {
	provisioningDir := filepath.Join(dir, dockerDir, "grafana", "provisioning")

	datasources := grafanaDatasources{
		APIVersion: 1,
		Datasources: []grafanaDatasource{
			{
				Name:      "Prometheus",
				Type:      "prometheus",
				Access:    "proxy",
				URL:       "http://prometheus:9090",
				IsDefault: true,
			},
		},
	}
	data, err := yaml.Marshal(&datasources)
	if err != nil {
		return fmt.Errorf("marshal Grafana datasources: %w", err)
	}
	if err := WriteFile(filepath.Join(provisioningDir, "datasources", "datasource.yml"), data, 0o644); err != nil {
		return err
	}

	dashboards := grafanaDashboardConfig{
		APIVersion: 1,
		Providers: []grafanaProvider{
			{
				Name:           "default",
				OrgID:          1,
				Folder:         "",
				Type:           "file",
				UpdateInterval: 30,
				Options: grafanaProviderOptions{
					Path: "/etc/grafana/provisioning/dashboards/json",
				},
			},
		},
	}
	data, err = yaml.Marshal(&dashboards)
	if err != nil {
		return fmt.Errorf("marshal Grafana dashboard providers: %w", err)
	}
	return WriteFile(filepath.Join(provisioningDir, "dashboards", "dashboard.yml"), data, 0o644)
}

// dashboardFiles maps embedded dashboard sources to their output names.
// The sources are JSONC so the panels can carry maintenance comments;
// Grafana wants plain JSON, so comments are stripped at generation time.
var dashboardFiles = map[string]string{
	"django-app.jsonc":     "django-app.json",
	"infrastructure.jsonc": "infrastructure.json",
	"celery.jsonc":         "celery.json",
}

// writeGrafanaDashboards writes the bundled dashboards as plain JSON.
func writeGrafanaDashboards(dir string) error {
	jsonDir := filepath.Join(dir, dockerDir, "grafana", "provisioning", "dashboards", "json")

	for src, dst := range dashboardFiles {
		raw, err := readEmbedded("dashboards/" + src)
		if err != nil {
			return err
		}
		if err := WriteFile(filepath.Join(jsonDir, dst), jsonc.ToJSON(raw), 0o644); err != nil {
			return err
		}
	}
	return nil
}
