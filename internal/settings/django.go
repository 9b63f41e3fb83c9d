package settings

// Names of the generated apps and list literals this package patches.
// The accounts app carries the custom User model and is created on every
// run, so its label and the AUTH_USER_MODEL pointer always go in together.
const (
	installedAppsList = "INSTALLED_APPS"
	middlewareList    = "MIDDLEWARE"

	// AccountsApp is the name of the authentication app every scaffolded
	// project receives.
	AccountsApp = "accounts"
)

// AddAppsAndAuth wires the REST framework and the generated apps into
// INSTALLED_APPS and points AUTH_USER_MODEL at the accounts app's custom
// User model. appName may be empty when the run has no custom app.
//
// Running this twice produces the same document as running it once:
// list inserts skip entries already present and the AUTH_USER_MODEL
// assignment is replaced, not duplicated.
func AddAppsAndAuth(doc Document, appName string) (Document, error) {
	entries := []string{"'rest_framework'", "'" + AccountsApp + "'"}
	if appName != "" {
		entries = append(entries, "'"+appName+"'")
	}

	var err error
	for _, entry := range entries {
		doc, err = InsertIntoList(doc, installedAppsList, entry)
		if err != nil {
			return nil, err
		}
	}

	doc = SetAssignment(doc, "AUTH_USER_MODEL", "'"+AccountsApp+".User'")
	return doc, nil
}

// AddDockerSettings applies the settings patches that back the generated
// Docker Compose stack: the Prometheus monitoring app and middleware pair,
// the Redis cache backend, the Celery broker, and the mail-capture SMTP
// backend. projectName feeds the default sender address.
//
// Each edit is independently idempotent, so a re-run after a partial
// failure converges instead of stacking duplicates.
func AddDockerSettings(doc Document, projectName string) (Document, error) {
	doc, err := InsertIntoList(doc, installedAppsList, "'django_prometheus'")
	if err != nil {
		return nil, err
	}

	for _, mw := range []string{
		"'django_prometheus.middleware.PrometheusBeforeMiddleware'",
		"'django_prometheus.middleware.PrometheusAfterMiddleware'",
	} {
		doc, err = InsertIntoList(doc, middlewareList, mw)
		if err != nil {
			return nil, err
		}
	}

	// The appended assignments read connection URLs from the environment,
	// which needs os in scope. Generated settings import pathlib only.
	doc = EnsureImport(doc, "import os")

	doc = SetAssignment(doc, "CACHES",
		"{",
		"    'default': {",
		"        'BACKEND': 'django.core.cache.backends.redis.RedisCache',",
		"        'LOCATION': os.environ.get('REDIS_URL', 'redis://redis:6379/1'),",
		"    },",
		"}",
	)

	doc = SetAssignment(doc, "CELERY_BROKER_URL",
		"os.environ.get('CELERY_BROKER_URL', 'redis://redis:6379/0')")
	doc = SetAssignment(doc, "CELERY_RESULT_BACKEND",
		"os.environ.get('CELERY_RESULT_BACKEND', 'redis://redis:6379/0')")

	doc = SetAssignment(doc, "EMAIL_BACKEND",
		"'django.core.mail.backends.smtp.EmailBackend'")
	doc = SetAssignment(doc, "EMAIL_HOST", "os.environ.get('EMAIL_HOST', 'mailpit')")
	doc = SetAssignment(doc, "EMAIL_PORT", "int(os.environ.get('EMAIL_PORT', '1025'))")
	doc = SetAssignment(doc, "DEFAULT_FROM_EMAIL", "'noreply@"+projectName+".local'")

	return doc, nil
}
