// Package cmdtest writes input files for command tests.
package cmdtest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/cbxmatch/pkg/records"
)

// Row maps column names to cell values.
type Row map[string]string

func cells(headers []string, r Row) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = r[h]
	}
	return out
}

// WriteRegistry saves a registry export with headers and returns its path.
func WriteRegistry(t *testing.T, dir string, rows ...Row) string {
	t.Helper()
	path := filepath.Join(dir, "cbx.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(records.RegistryHeaders))
	for _, r := range rows {
		require.NoError(t, w.Write(cells(records.RegistryHeaders, r)))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

// WriteHiringClients saves a hiring client workbook with headers, followed
// by extra columns, and returns its path.
func WriteHiringClients(t *testing.T, dir string, extra []string, rows ...Row) string {
	t.Helper()
	headers := append(append([]string{}, records.HiringClientHeaders...), extra...)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	write := func(n int, values []string) {
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, n)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	write(1, headers)
	for i, r := range rows {
		write(i+2, cells(headers, r))
	}

	path := filepath.Join(dir, "hc.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// Contractor returns a complete hiring client row for company.
func Contractor(company string) Row {
	return Row{
		"contractor_name":     company,
		"contact_first_name":  "Lise",
		"contact_last_name":   "Roy",
		"contact_email":       "lise@example.ca",
		"contact_phone":       "5145550101",
		"address":             "12 Notre-Dame Street",
		"city":                "Montréal",
		"province_state_iso2": "QC",
		"country_iso2":        "CA",
		"postal_code":         "H2Y1C6",
		"contact_currency":    "CAD",
		"hiring_client_name":  "Hydro",
	}
}
