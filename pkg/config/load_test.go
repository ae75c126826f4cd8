package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad/pkg/config"
)

type sampleConfig struct {
	Name  string `yaml:"name" env:"PKGCFG_TEST_NAME" env-default:"default-name"`
	Count int    `yaml:"count" env:"PKGCFG_TEST_COUNT" env-default:"3"`
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PKGCFG_TEST_NAME", "from-env")

	cfg, err := config.Load[sampleConfig](context.Background(), "test", config.Source{})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 3, cfg.Count)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	src := config.Source{EnvFile: filepath.Join(t.TempDir(), "missing.env")}

	cfg, err := config.Load[sampleConfig](context.Background(), "test", src)
	require.NoError(t, err)
	assert.Equal(t, "default-name", cfg.Name)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PKGCFG_TEST_COUNT=42\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PKGCFG_TEST_COUNT") })

	cfg, err := config.Load[sampleConfig](context.Background(), "test", config.Source{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Count)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-yaml\ncount: 7\n"), 0o600))

	cfg, err := config.Load[sampleConfig](context.Background(), "test", config.Source{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Name)
	assert.Equal(t, 7, cfg.Count)
}

func TestLoadMissingYAMLFile(t *testing.T) {
	_, err := config.Load[sampleConfig](context.Background(), "test",
		config.Source{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
