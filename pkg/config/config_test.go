package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gridbox/pkg/config"
	"github.com/arthur-debert/gridbox/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "binary", cfg.Serialization.DefaultArchive)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[serialization]
default_archive = "compressed"

[logging]
verbosity = 2
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "compressed", cfg.Serialization.DefaultArchive)
	assert.Equal(t, 2, cfg.Logging.Verbosity)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[logging]
verbosity = 1
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "binary", cfg.Serialization.DefaultArchive,
		"unset keys keep their defaults")
	assert.Equal(t, 1, cfg.Logging.Verbosity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, `this is not toml [`)

	_, err := config.Load(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidate(t *testing.T) {
	t.Run("empty default archive", func(t *testing.T) {
		cfg := config.Default()
		cfg.Serialization.DefaultArchive = ""
		assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigValid))
	})

	t.Run("negative verbosity", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Verbosity = -1
		assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigValid))
	})
}

func TestDefaultPathHonorsOverride(t *testing.T) {
	t.Setenv(config.EnvConfigDir, "/tmp/gridbox-conf")

	assert.Equal(t, filepath.Join("/tmp/gridbox-conf", config.ConfigFile), config.DefaultPath())
}

func TestInitializeIsIdempotent(t *testing.T) {
	first := config.Default()
	first.Serialization.DefaultArchive = "compressed"
	config.Initialize(&first)

	second := config.Default()
	second.Serialization.DefaultArchive = "mock"
	config.Initialize(&second)

	assert.Equal(t, "compressed", config.Get().Serialization.DefaultArchive,
		"repeated Initialize must not replace the configuration")
}
