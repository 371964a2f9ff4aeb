package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cbxmatch/pkg/errors"
)

// isolate runs the test in an empty home and working directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	s := config.Settings
	assert.Equal(t, 70, s.CompanyThreshold)
	assert.Equal(t, 80, s.AddressThreshold)
	assert.Equal(t, ";", s.ListSeparator)
	assert.Equal(t, 1, s.Workers)
	assert.False(t, s.IgnoreWarnings)
	assert.Empty(t, s.GenericDomains)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("CBXMATCH_MIN_COMPANY_MATCH_RATIO", "85")
	t.Setenv("CBXMATCH_IGNORE_WARNINGS", "true")
	t.Setenv("CBXMATCH_ADDITIONAL_GENERIC_DOMAINS", "acme-mail.com;corp.ca")
	t.Setenv("CBXMATCH_FORMAT", "json")
	t.Setenv("CBXMATCH_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 85, config.Settings.CompanyThreshold)
	assert.True(t, config.Settings.IgnoreWarnings)
	assert.Equal(t, []string{"acme-mail.com", "corp.ca"}, config.Settings.GenericDomains)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := []byte("min_address_match_ratio: 90\nworkers: 4\nadditional_generic_name_words:\n  - services\n  - group\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cbxmatch.yaml"), yaml, 0o600))

	t.Run("default location", func(t *testing.T) {
		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 90, config.Settings.AddressThreshold)
		assert.Equal(t, 4, config.Settings.Workers)
		assert.Equal(t, []string{"services", "group"}, config.Settings.GenericNameWords)
		assert.NotEmpty(t, config.ConfigFile)
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("CBXMATCH_WORKERS", "2")
		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 2, config.Settings.Workers)
	})

	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(dir, "other.yaml")
		require.NoError(t, os.WriteFile(path, []byte("list_separator: \"|\"\n"), 0o600))
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "|", config.Settings.ListSeparator)
		assert.Equal(t, path, config.ConfigFile)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		var configErr *errors.ConfigError
		assert.True(t, errors.As(err, &configErr))
	})
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CBXMATCH_CBX_ENCODING=latin1\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CBXMATCH_CBX_ENCODING") })

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "latin1", config.Settings.RegistryEncoding)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml"}
	config.UpdateFromFlags(true, false, true, "", "warn")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "warn", config.LogLevel)
}
