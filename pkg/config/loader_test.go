package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhubhq/workhub/pkg/config"
)

type serverConfig struct {
	Host string `env:"TEST_SERVER_HOST" envDefault:"localhost"`
	Port int    `env:"TEST_SERVER_PORT" envDefault:"8080"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("TEST_SERVER_HOST")
	os.Unsetenv("TEST_SERVER_PORT")
	config.ResetCache()

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadCachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_SERVER_HOST", "first")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Host)

	// Environment changes after the first load are not observed.
	t.Setenv("TEST_SERVER_HOST", "second")
	var cfg2 serverConfig
	require.NoError(t, config.Load(&cfg2))
	assert.Equal(t, "first", cfg2.Host)

	var cfg3 serverConfig
	require.NoError(t, config.ForceReloadConfig(&cfg3))
	assert.Equal(t, "second", cfg3.Host)
}

func TestLoadRequiredMissing(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_SECRET")
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadEnvFile(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("TEST_ENVFILE_VALUE")
	t.Cleanup(func() { os.Unsetenv("TEST_ENVFILE_VALUE") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_ENVFILE_VALUE=from_file\n"), 0o644))

	require.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "from_file", os.Getenv("TEST_ENVFILE_VALUE"))

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestMustLoadEnvPanics(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	})
}
