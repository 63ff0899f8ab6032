package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFrom(t *testing.T) {
	path := writeConfig(t, `
DB_HOST: "db.internal"
DB_NAME: "recipes"
JWT_EXPIRE_MINUTES: "45"
SEARCH_BACKEND: "index"
`)
	t.Setenv("DB_NAME", "recipes_override")

	require.NoError(t, LoadConfigFrom(path))

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "recipes_override", GetConfig("DB_NAME"))
	assert.Equal(t, "index", GetConfig("SEARCH_BACKEND"))
	assert.Equal(t, 45*time.Minute, GetConfigMinutes("JWT_EXPIRE_MINUTES", time.Minute))
	// untouched keys fall back to defaults
	assert.Equal(t, "5432", GetConfig("DB_PORT"))
	assert.Equal(t, 1000, GetConfigInt("INDEX_BATCH_SIZE", 0))
	assert.False(t, GetConfigBool("INDEX_ON_STARTUP", true))
}

func TestLoadConfigFrom_MissingFile(t *testing.T) {
	t.Setenv("APP_PORT", "9090")

	require.NoError(t, LoadConfigFrom(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, "9090", GetConfig("APP_PORT"))
	assert.Equal(t, "database", GetConfig("SEARCH_BACKEND"))
}

func TestLoadConfigFrom_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "DB_HOST: [unterminated")
	assert.Error(t, LoadConfigFrom(path))
}

func TestConfigHelpers(t *testing.T) {
	require.NoError(t, LoadConfigFrom(filepath.Join(t.TempDir(), "absent.yaml")))

	SetConfig("RATE_LIMIT_MAX", "not-a-number")
	assert.Equal(t, 7, GetConfigInt("RATE_LIMIT_MAX", 7))

	SetConfig("INDEX_ON_STARTUP", "true")
	assert.True(t, GetConfigBool("INDEX_ON_STARTUP", false))

	SetConfig("JWT_EXPIRE_MINUTES", "0")
	assert.Equal(t, 30*time.Minute, GetConfigMinutes("JWT_EXPIRE_MINUTES", 30*time.Minute))

	assert.Empty(t, GetConfig("NOT_A_KEY"))
}
