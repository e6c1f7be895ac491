package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

func loadWith(t *testing.T, content string) (Config, error) {
	t.Helper()
	fsys := fs.NewMemFS()
	if content != "" {
		fsys.Files[filepath.Join("/proj", "config.txt")] = []byte(content)
	}
	return Load(fsys, "/proj")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadWith(t, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/proj", "export/savedsearches"), cfg.ExportBase)
	assert.Equal(t, filepath.Join("/proj", "templates"), cfg.TemplateDir)
	assert.Equal(t, "example.md.tmpl", cfg.TemplateName)
	assert.Equal(t, "/opt/splunk/bin", cfg.SplunkBin)
	assert.Equal(t, 5*time.Minute, cfg.BtoolTimeout)
	assert.Equal(t, "https://wikijs.local:3000/graphql", cfg.WikiURL)
	assert.Equal(t, "/a/b/c", cfg.BasePath)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 5, cfg.MaxParallelUploads)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Empty(t, cfg.FilterKey)
	assert.Empty(t, cfg.APIToken)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := loadWith(t, `
EXPORT_BASE=out/md
SPLUNK_BIN=/usr/local/splunk/bin
WIKIJS_URL=https://wiki.corp/graphql
WIKIJS_BASE_PATH=/security/detections
WIKIJS_MAX_PARALLEL_UPLOADS=2
WIKIJS_MAX_RETRIES=5
WIKIJS_RETRY_DELAY=1.5
NOTABLE_FILTER_KEY=action.notable
NOTABLE_FILTER_VALUE=1
`)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/proj", "out/md"), cfg.ExportBase)
	assert.Equal(t, "/usr/local/splunk/bin", cfg.SplunkBin)
	assert.Equal(t, "https://wiki.corp/graphql", cfg.WikiURL)
	assert.Equal(t, "/security/detections", cfg.BasePath)
	assert.Equal(t, 2, cfg.MaxParallelUploads)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, "action.notable", cfg.FilterKey)
	assert.Equal(t, "1", cfg.FilterValue)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CONF2MD_WIKIJS_URL", "https://override/graphql")
	t.Setenv("CONF2MD_WIKIJS_MAX_RETRIES", "9")

	cfg, err := loadWith(t, "WIKIJS_URL=https://file/graphql\nWIKIJS_MAX_RETRIES=2\n")
	require.NoError(t, err)

	assert.Equal(t, "https://override/graphql", cfg.WikiURL)
	assert.Equal(t, 9, cfg.MaxRetries)
}

func TestLoadTokenFallbackEnvVars(t *testing.T) {
	t.Run("prefixed env wins", func(t *testing.T) {
		t.Setenv("CONF2MD_WIKIJS_API_TOKEN", "prefixed")
		t.Setenv("WIKIJS_TOKEN", "fallback")
		cfg, err := loadWith(t, "")
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.APIToken)
	})

	t.Run("WIKIJS_API_TOKEN fallback", func(t *testing.T) {
		t.Setenv("WIKIJS_API_TOKEN", "direct")
		cfg, err := loadWith(t, "")
		require.NoError(t, err)
		assert.Equal(t, "direct", cfg.APIToken)
	})

	t.Run("WIKIJS_TOKEN fallback", func(t *testing.T) {
		t.Setenv("WIKIJS_TOKEN", "legacy")
		cfg, err := loadWith(t, "")
		require.NoError(t, err)
		assert.Equal(t, "legacy", cfg.APIToken)
	})

	t.Run("API_TOKEN fallback", func(t *testing.T) {
		t.Setenv("API_TOKEN", "generic")
		cfg, err := loadWith(t, "")
		require.NoError(t, err)
		assert.Equal(t, "generic", cfg.APIToken)
	})

	t.Run("config file token wins over fallback", func(t *testing.T) {
		t.Setenv("WIKIJS_TOKEN", "fallback")
		cfg, err := loadWith(t, "WIKIJS_API_TOKEN=from-file\n")
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.APIToken)
	})
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non-integer parallel uploads", "WIKIJS_MAX_PARALLEL_UPLOADS=many\n"},
		{"non-numeric retry delay", "WIKIJS_RETRY_DELAY=soon\n"},
		{"negative retry delay", "WIKIJS_RETRY_DELAY=-1\n"},
		{"zero parallel uploads", "WIKIJS_MAX_PARALLEL_UPLOADS=0\n"},
		{"zero retries", "WIKIJS_MAX_RETRIES=0\n"},
		{"non-numeric btool timeout", "BTOOL_TIMEOUT=forever\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadWith(t, tt.content)
			assert.Equal(t, errors.EInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.SplunkBin = "/opt/splunk/bin"
	cfg.TemplateDir = "/proj/templates"

	assert.Equal(t, "/opt/splunk/bin/splunk", cfg.SplunkExe())
	assert.Equal(t, "/proj/templates/example.md.tmpl", cfg.TemplatePath())
	assert.Equal(t, "/proj/config.txt", Path("/proj"))
}
