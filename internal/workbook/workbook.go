// Package workbook writes the analysis workbook of a matching run: every
// hiring-client row followed by its analysis columns, one sheet per action
// and the import, existing-contractor and CRM views.
package workbook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/outcome"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Column widths.
const (
	minWidth  = 12
	maxWidth  = 50
	wideWidth = 80
)

// wrapped columns hold long free text.
var wrapped = []string{"hc_contractor_summary", "analysis", "previous", "hiring_client_names"}

// Row is a hiring-client record with its outcome.
type Row struct {
	Record  records.HiringClientRecord
	Outcome outcome.MatchOutcome
}

// Headers returns the columns of the full sheets: hiring-client columns,
// analysis columns, then metadata columns.
func Headers(metadata []string) []string {
	return slices.Concat(records.HiringClientHeaders, outcome.AnalysisHeaders, metadata)
}

// values returns the full row of r. Missing metadata cells are blank.
func (r Row) values(metadata int) []any {
	out := make([]any, 0, len(records.HiringClientHeaders)+len(outcome.AnalysisHeaders)+metadata)
	for _, v := range r.Record.Values() {
		out = append(out, v)
	}
	out = append(out, r.Outcome.Values()...)
	for i := range metadata {
		if i < len(r.Record.Metadata) {
			out = append(out, r.Record.Metadata[i])
		} else {
			out = append(out, "")
		}
	}
	return out
}

// Build lays out the workbook in memory.
func Build(ctx context.Context, metadata []string, rows []Row) (*excelize.File, error) {
	log := logging.FromContext(ctx)
	f := excelize.NewFile()
	full := Headers(metadata)

	data := make([][]any, len(rows))
	for i, r := range rows {
		data[i] = r.values(len(metadata))
	}

	s, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, v := range views(full, metadata) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), v.name); err != nil {
				_ = f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(v.name); err != nil {
			_ = f.Close()
			return nil, err
		}

		var selected [][]any
		for j, r := range rows {
			if v.include(r.Outcome.Action) {
				selected = append(selected, pick(data[j], v.columns))
			}
		}
		if err := writeSheet(f, s, v, selected); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("writing sheet %q: %w", v.name, err)
		}
		log.Debug().Str("sheet", v.name).Int("rows", len(selected)).Msg("Wrote sheet")
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write saves the workbook to path.
func Write(ctx context.Context, path string, metadata []string, rows []Row) error {
	ctx = logging.WithFile(ctx, path)
	f, err := Build(ctx, metadata, rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	logging.FromContext(ctx).Info().Int("rows", len(rows)).Msg("Wrote analysis workbook")
	return nil
}

// pick projects a full row onto cols.
func pick(row []any, cols []column) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = row[c.source]
	}
	return out
}

// writeSheet writes the header and rows of v, then formats the sheet as a
// table.
func writeSheet(f *excelize.File, s styles, v view, rows [][]any) error {
	headers := make([]any, len(v.columns))
	widths := make([]int, len(v.columns))
	for i, c := range v.columns {
		headers[i] = c.header
		widths[i] = utf8.RuneCountInString(c.header)
	}
	if err := f.SetSheetRow(v.name, "A1", &headers); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(v.name, cell, &row); err != nil {
			return err
		}
		for j, val := range row {
			widths[j] = max(widths[j], utf8.RuneCountInString(fmt.Sprint(val)))
		}
	}
	if len(v.columns) == 0 {
		return nil
	}
	return s.format(f, v, widths, len(rows))
}

// tableName turns a sheet name into a valid table name.
func tableName(sheet string) string {
	return "Table_" + strings.NewReplacer(" ", "_", "-", "_").Replace(sheet)
}
