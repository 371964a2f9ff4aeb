package match

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/cbxmatch/internal/cmd/application"
	"github.com/agentstation/cbxmatch/internal/cmd/cmdtest"
	"github.com/agentstation/cbxmatch/internal/workbook"
	"github.com/agentstation/cbxmatch/pkg/errors"
)

func gamma() cmdtest.Row {
	return cmdtest.Row{
		"id": "2", "name_en": "Gamma Roofing", "address": "12 Notre-Dame Street", "city": "Montréal",
		"country": "CA", "postal_code": "H2Y1C6", "registration_code": "Active",
		"hiring_client_names": "Hydro", "hiring_client_ids": "7", "hiring_client_qstatus": "validated",
	}
}

func execute(t *testing.T, mock *application.Mock, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	dir := t.TempDir()
	registry := cmdtest.WriteRegistry(t, dir, gamma())
	omega := cmdtest.Contractor("Omega Drilling")
	omega["address"] = "900 Industrial Park"
	omega["postal_code"] = "J7H1A1"
	omega["metadata_owner"] = "sales"
	hcs := cmdtest.WriteHiringClients(t, dir, []string{"metadata_owner"}, cmdtest.Contractor("Gamma Roofing"), omega)
	outPath := filepath.Join(dir, "out.xlsx")

	mock := &application.Mock{OutputFormatFunc: func() string { return "json" }}
	out, err := execute(t, mock, registry, hcs, outPath)
	require.NoError(t, err)

	var summary struct {
		Output string `json:"output"`
		Stats  struct {
			Records int `json:"records"`
			Matched int `json:"matched"`
			NoMatch int `json:"no_match"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, outPath, summary.Output)
	assert.Equal(t, 2, summary.Stats.Records)
	assert.Equal(t, 1, summary.Stats.Matched)
	assert.Equal(t, 1, summary.Stats.NoMatch)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, workbook.SheetAll, f.GetSheetName(0))

	rows, err := f.GetRows(workbook.SheetAll)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	header := rows[0]
	assert.Equal(t, "metadata_owner", header[len(header)-1])
	assert.Equal(t, "Gamma Roofing", rows[1][0])
	assert.Equal(t, "sales", rows[2][len(rows[2])-1])
}

func TestMatchCommandTable(t *testing.T) {
	dir := t.TempDir()
	registry := cmdtest.WriteRegistry(t, dir, gamma())
	hcs := cmdtest.WriteHiringClients(t, dir, nil, cmdtest.Contractor("Gamma Roofing"))

	out, err := execute(t, &application.Mock{}, registry, hcs, filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, out, "completed in")
	assert.Contains(t, out, "Results written to")
}

func TestMatchCommandErrors(t *testing.T) {
	dir := t.TempDir()
	registry := cmdtest.WriteRegistry(t, dir, gamma())
	mismatch := cmdtest.Contractor("Gamma Roofing")
	mismatch["contact_currency"] = "USD"
	hcs := cmdtest.WriteHiringClients(t, dir, nil, mismatch)
	outPath := filepath.Join(dir, "out.xlsx")

	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{
			name:  "missing registry",
			args:  []string{filepath.Join(dir, "missing.csv"), hcs, outPath},
			check: func(err error) bool { return err != nil },
		},
		{
			name:  "bad offset",
			args:  []string{registry, hcs, outPath, "--hc-offset", "zero"},
			check: errors.IsValidationError,
		},
		{
			name:  "bad ratio",
			args:  []string{registry, hcs, outPath, "--min-company-match-ratio", "101"},
			check: errors.IsValidationError,
		},
		{
			name:  "currency mismatch",
			args:  []string{registry, hcs, outPath},
			check: errors.IsWarning,
		},
		{
			name:  "wrong argument count",
			args:  []string{registry},
			check: func(err error) bool { return err != nil },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, &application.Mock{}, tt.args...)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	t.Run("ignored warnings are reported", func(t *testing.T) {
		mock := &application.Mock{OutputFormatFunc: func() string { return "json" }}
		out, err := execute(t, mock, registry, hcs, outPath, "--ignore-warnings")
		require.NoError(t, err)
		assert.Contains(t, out, "currency and country mismatch")
	})
}
