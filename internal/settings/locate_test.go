package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocate covers the shapes django-admin actually generates plus the
// failure modes the patcher must refuse to guess about.
func TestLocate(t *testing.T) {
	t.Run("multi-line list", func(t *testing.T) {
		doc := Parse(`DEBUG = True

INSTALLED_APPS = [
    'django.contrib.admin',
    'django.contrib.auth',
]

MIDDLEWARE = [
    'django.middleware.security.SecurityMiddleware',
]
`)

		region, err := Locate(doc, "INSTALLED_APPS")
		require.NoError(t, err)

		assert.Equal(t, 2, region.Start)
		assert.Equal(t, 5, region.End)
		assert.Contains(t, doc[region.End], "]")

		// The lines between start and end are exactly the entries.
		assert.Equal(t, Document{
			"    'django.contrib.admin',",
			"    'django.contrib.auth',",
		}, doc[region.Start+1:region.End])
	})

	t.Run("does not bleed into a sibling list", func(t *testing.T) {
		doc := Parse(`INSTALLED_APPS = [
    'django.contrib.admin',
]
MIDDLEWARE = [
    'django.middleware.common.CommonMiddleware',
]`)

		region, err := Locate(doc, "INSTALLED_APPS")
		require.NoError(t, err)
		assert.Equal(t, 2, region.End, "region must stop at its own closing bracket")

		region, err = Locate(doc, "MIDDLEWARE")
		require.NoError(t, err)
		assert.Equal(t, 3, region.Start)
		assert.Equal(t, 5, region.End)
	})

	t.Run("single-line list", func(t *testing.T) {
		doc := Parse(`ALLOWED_HOSTS = []
INSTALLED_APPS = ["a", "b"]`)

		region, err := Locate(doc, "INSTALLED_APPS")
		require.NoError(t, err)
		assert.Equal(t, 1, region.Start)
		assert.Equal(t, 1, region.End)
	})

	t.Run("nested brackets are counted not parsed", func(t *testing.T) {
		doc := Parse(`TEMPLATES = [
    {
        'DIRS': [BASE_DIR / 'templates'],
    },
]`)

		region, err := Locate(doc, "TEMPLATES")
		require.NoError(t, err)
		assert.Equal(t, 0, region.Start)
		assert.Equal(t, 4, region.End)
	})

	t.Run("missing list", func(t *testing.T) {
		doc := Parse("DEBUG = True")

		_, err := Locate(doc, "INSTALLED_APPS")
		var notFound *RegionNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "INSTALLED_APPS", notFound.List)
	})

	t.Run("unterminated list", func(t *testing.T) {
		doc := Parse(`INSTALLED_APPS = [
    'django.contrib.admin',
DEBUG = True`)

		_, err := Locate(doc, "INSTALLED_APPS")
		var malformed *MalformedRegionError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "INSTALLED_APPS", malformed.List)
		assert.Equal(t, 0, malformed.Start)
	})

	t.Run("name must match at statement start", func(t *testing.T) {
		doc := Parse(`# INSTALLED_APPS = [ is discussed in the docs
EXTRA_INSTALLED_APPS = [
]`)

		_, err := Locate(doc, "INSTALLED_APPS")
		var notFound *RegionNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
