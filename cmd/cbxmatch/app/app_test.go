package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/internal/cmd/cmdtest"
	"github.com/agentstation/cbxmatch/pkg/errors"
)

func newApp(t *testing.T) *App {
	t.Helper()
	a, err := New("1.0.0", "abc123", "2026-01-01", "test")
	require.NoError(t, err)
	return a
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	isolate(t)
	a := newApp(t)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
	assert.Equal(t, 70, a.Settings().CompanyThreshold)
}

func TestApp_Options(t *testing.T) {
	isolate(t)
	logger := zerolog.Nop()
	config := &Config{Format: "yaml"}

	a, err := New("dev", "", "", "", WithConfig(config), WithLogger(&logger))
	require.NoError(t, err)
	assert.Same(t, config, a.Config())
	assert.Same(t, &logger, a.Logger())
	assert.Equal(t, "yaml", a.OutputFormat())
}

func TestApp_Matcher(t *testing.T) {
	isolate(t)
	a := newApp(t)
	a.config.Settings.CompanyThreshold = 85
	a.config.Settings.GenericDomains = []string{"acme-mail.com"}

	m, err := a.Matcher(cbxmatch.WithWorkers(3))
	require.NoError(t, err)
	cfg := m.Config()
	assert.Equal(t, 85, cfg.CompanyThreshold)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.IsGenericDomain("bob@acme-mail.com"))

	a.config.Settings.Workers = 0
	_, err = a.Matcher()
	assert.True(t, errors.IsValidationError(err))
}

func TestApp_Execute(t *testing.T) {
	dir := isolate(t)
	registry := cmdtest.WriteRegistry(t, dir, cmdtest.Row{
		"id": "2", "name_en": "Gamma Roofing", "address": "12 Notre-Dame Street", "city": "Montréal",
		"country": "CA", "postal_code": "H2Y1C6", "registration_code": "Active",
	})
	hcs := cmdtest.WriteHiringClients(t, dir, nil, cmdtest.Contractor("Gamma Roofing"))

	run := func(t *testing.T, args ...string) (string, string, error) {
		t.Helper()
		var stdout, stderr bytes.Buffer
		err := newApp(t).execute(context.Background(), args, &stdout, &stderr)
		return stdout.String(), stderr.String(), err
	}

	t.Run("version", func(t *testing.T) {
		out, _, err := run(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "cbxmatch version 1.0.0")
	})

	t.Run("match", func(t *testing.T) {
		out, _, err := run(t, "match", registry, hcs, filepath.Join(dir, "out.xlsx"), "-o", "json", "--log-level", "error")
		require.NoError(t, err)
		var summary map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &summary))
		assert.Equal(t, filepath.Join(dir, "out.xlsx"), summary["output"])
	})

	t.Run("config file sets flag defaults", func(t *testing.T) {
		path := filepath.Join(dir, "strict.yaml")
		require.NoError(t, os.WriteFile(path, []byte("min_company_match_ratio: 101\n"), 0o600))
		_, _, err := run(t, "--config", path, "match", registry, hcs, filepath.Join(dir, "strict.xlsx"), "-q")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("validate", func(t *testing.T) {
		out, _, err := run(t, "validate", registry, hcs, "--no-color", "-o", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "No data issues found")
	})

	t.Run("unknown command", func(t *testing.T) {
		_, _, err := run(t, "fetch")
		assert.Error(t, err)
	})
}

func TestConfigFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"match", "a", "b", "c"}, ""},
		{[]string{"--config", "x.yaml", "match"}, "x.yaml"},
		{[]string{"match", "--config=y.yaml", "-w", "4", "--ignore-warnings"}, "y.yaml"},
		{[]string{"--help"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, configFlag(tt.args))
		})
	}
}
