package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := def()
	assert.Equal(t, "8080", c.Port)
	assert.Empty(t, c.DBURL)
	assert.False(t, c.AutoMigrate)
	assert.Equal(t, "reference", c.ReferenceDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.Seed)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partsdb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": "9090",
		"dbUrl": "postgres://localhost/partsdb",
		"autoMigrate": true
	}`), 0o644))

	c, err := loadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "postgres://localhost/partsdb", c.DBURL)
	assert.True(t, c.AutoMigrate)
	// untouched keys keep their defaults
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadJSONMissingFile(t *testing.T) {
	_, err := loadJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARTSDB_PORT", "7070")
	t.Setenv("PARTSDB_DB_URL", "postgres://db/parts")
	t.Setenv("PARTSDB_AUTO_MIGRATE", "yes")
	t.Setenv("PARTSDB_LOG_LEVEL", "debug")
	t.Setenv("PARTSDB_SEED", "1")

	c := applyEnv(def())
	assert.Equal(t, "7070", c.Port)
	assert.Equal(t, "postgres://db/parts", c.DBURL)
	assert.True(t, c.AutoMigrate)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.Seed)
}

func TestApplyEnvBlankValueKeepsDefault(t *testing.T) {
	t.Setenv("PARTSDB_PORT", "   ")
	c := applyEnv(def())
	assert.Equal(t, "8080", c.Port)
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("PARTSDB_X", "false")
	assert.False(t, getenvBool("PARTSDB_X", true))

	t.Setenv("PARTSDB_X", "garbage")
	assert.True(t, getenvBool("PARTSDB_X", true))
}

func TestBoolFlag(t *testing.T) {
	assert.True(t, boolFlag("true"))
	assert.True(t, boolFlag(" TRUE "))
	assert.True(t, boolFlag("1"))
	assert.False(t, boolFlag("0"))
	assert.False(t, boolFlag(""))
}
