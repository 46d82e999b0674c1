package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukp-platform/ukp-api/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFrom_NoFiles(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadFrom(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, config.EnvDevelopment, cfg.App().Environment)
}

func TestLoadFrom_FilePriority(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvNodeEnv, "testing")
	t.Setenv(config.EnvDBName, "from_process")

	dir := t.TempDir()
	writeFile(t, dir, ".env", "DB_HOST=from-env\nDB_NAME=from_env\nREDIS_HOST=from-env\nAPI_PREFIX=/base/\n")
	writeFile(t, dir, ".env.testing", "DB_HOST=from-testing\nREDIS_HOST=from-testing\n")
	writeFile(t, dir, ".env.testing.local", "DB_HOST=from-testing-local\n")

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-testing-local", cfg.Database().Host)
	assert.Equal(t, "from-testing", cfg.Cache().Host)
	assert.Equal(t, "from_process", cfg.Database().Name)
	assert.Equal(t, "base", cfg.App().APIPrefix)
}

func TestLoadFrom_ValidationFailure(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeFile(t, dir, ".env", "JWT_SECRET=short\nPORT=0\n")

	cfg, err := config.LoadFrom(dir)

	assert.Nil(t, cfg)
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"JWT_SECRET", "PORT"}, fieldNames(verr.Fields))
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeFile(t, dir, ".env", "BAD-KEY=1\n")

	_, err := config.LoadFrom(dir)
	assert.Error(t, err)
}

func TestEnviron(t *testing.T) {
	t.Setenv("UKP_TEST_VALUE", "a=b")
	assert.Equal(t, "a=b", config.Environ()["UKP_TEST_VALUE"])
}
