package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfig(t, "waf.toml", `
environment = "prod"
region = "us-east-1"
graphql_api_arn = "arn:aws:appsync:us-east-1:123456789012:apis/abcdef123456"
geo_block = ["CN", "RU"]
rate_limit = 5000
retention_days = 90
`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", config.Environment)
	assert.Equal(t, "us-east-1", config.Region)
	assert.Equal(t, []string{"CN", "RU"}, config.GeoBlock)
	assert.Equal(t, int64(5000), config.RateLimit)
	assert.Equal(t, 90, config.RetentionDays)
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfig(t, "waf.yaml", `
environment: staging
rate_limit: 3000
report_type:
  - markdown
  - json
`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", config.Environment)
	assert.Equal(t, int64(3000), config.RateLimit)
	assert.Equal(t, []string{"markdown", "json"}, config.ReportType)
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeConfig(t, "waf.json", `{
  "environment": "test",
  "transition_days": 60,
  "expiration_days": 400
}`)

	config, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", config.Environment)
	assert.Equal(t, 60, config.TransitionDays)
	assert.Equal(t, 400, config.ExpirationDays)
}

func TestLoadConfigFileUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "waf.ini", "environment=test")

	_, err := NewConfigRepository().LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := NewConfigRepository().LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing config file")
}

func TestLoadConfigFileDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := NewConfigRepository().LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
