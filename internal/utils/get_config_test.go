package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"DB_HOST: db.internal\nDB_PORT: \"5432\"\nJWT_SECRET: from-file\nRECIPE_SEARCH_CASE_SENSITIVE: true\n",
	), 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	LoadConfigFile(path)

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "5432", GetConfig("DB_PORT"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, "true", GetConfig("RECIPE_SEARCH_CASE_SENSITIVE"))
	assert.Equal(t, "8000", GetConfig("APP_PORT"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	t.Setenv("DB_NAME", "recipes")
	LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, "recipes", GetConfig("DB_NAME"))
	assert.Equal(t, "false", GetConfig("RECIPE_SEARCH_CASE_SENSITIVE"))
}
