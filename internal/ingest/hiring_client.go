package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// metadataPrefix marks opaque hiring-client columns carried to the output.
const metadataPrefix = "metadata"

// HiringClients is a parsed hiring-client sheet.
type HiringClients struct {
	// Sheet is the name of the sheet that was read.
	Sheet string

	// MetadataHeaders name the metadata columns, in input order. They are
	// empty when the sheet has no header row.
	MetadataHeaders []string

	// Records are normalized, in sheet order.
	Records []records.HiringClientRecord

	// Warnings are the ignored data warnings found while reading.
	Warnings errors.Warnings
}

// LoadHiringClients reads the hiring-client workbook at path.
func LoadHiringClients(ctx context.Context, path string, opts Options) (*HiringClients, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer func() { _ = f.Close() }()
	return readWorkbook(logging.WithFile(ctx, path), f, opts)
}

// ReadHiringClients reads a hiring-client workbook from r.
func ReadHiringClients(ctx context.Context, r io.Reader, opts Options) (*HiringClients, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapParse("xlsx", "hiring client list", err)
	}
	defer func() { _ = f.Close() }()
	return readWorkbook(ctx, f, opts)
}

// readWorkbook extracts the records of the selected sheet.
func readWorkbook(ctx context.Context, f *excelize.File, opts Options) (*HiringClients, error) {
	log := logging.FromContext(ctx)

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NewNotFoundError("sheet", sheet)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", sheet, err)
	}

	c := newCollector(ctx, opts)
	if height, width := len(raw), widest(raw); height > constants.MaxHiringClientRows || width > constants.MaxHiringClientColumns {
		w := errors.NewDataWarning(-1, "size", fmt.Sprintf("%dx%d", height, width),
			fmt.Sprintf("file is large: %d rows and %d columns, must be less than %d and %d",
				height, width, constants.MaxHiringClientRows, constants.MaxHiringClientColumns))
		if err := c.add(w); err != nil {
			return nil, err
		}
	}

	rows := crop(raw, opts.RowOffset, opts.ColOffset)
	width := widest(rows)
	out := &HiringClients{Sheet: sheet}

	if len(rows) > 0 && width < constants.HiringClientColumns {
		w := errors.NewDataWarning(-1, "columns", fmt.Sprint(width),
			fmt.Sprintf("got %d columns when at least %d is expected", width, constants.HiringClientColumns))
		if err := c.add(w); err != nil {
			return nil, err
		}
	}

	var metadata []int
	switch {
	case len(rows) == 0:
	case opts.NoHeaders:
		if width != constants.HiringClientColumns {
			w := errors.NewDataWarning(-1, "columns", fmt.Sprint(width),
				fmt.Sprintf("got %d columns when %d is exactly expected", width, constants.HiringClientColumns))
			if err := c.add(w); err != nil {
				return nil, err
			}
		}
	default:
		headers := cleanHeaders(pad(rows[0], width))
		if err := c.checkHeaders(headers, records.HiringClientHeaders); err != nil {
			return nil, err
		}
		for i, h := range headers {
			if strings.HasPrefix(h, metadataPrefix) {
				metadata = append(metadata, i)
				out.MetadataHeaders = append(out.MetadataHeaders, h)
			}
		}
		rows = rows[1:]
	}

	out.Records = make([]records.HiringClientRecord, 0, len(rows))
	for i, cells := range rows {
		cells = pad(cells, width)
		rec := records.NewHiringClientRecord(i, cells)
		if len(metadata) > 0 {
			rec.Metadata = make([]string, len(metadata))
			for j, col := range metadata {
				rec.Metadata[j] = cells[col]
			}
		}
		rec.Normalize()
		out.Records = append(out.Records, rec)
	}
	out.Warnings = c.warnings

	log.Info().
		Str("sheet", sheet).
		Int("contractors", len(out.Records)).
		Int("metadata_columns", len(out.MetadataHeaders)).
		Msg("Read hiring client list")
	return out, nil
}

// crop skips the leading rows and columns, then drops rows whose first
// cell is blank.
func crop(rows [][]string, rowOffset, colOffset int) [][]string {
	if rowOffset >= len(rows) {
		return nil
	}
	var out [][]string
	for _, row := range rows[rowOffset:] {
		if colOffset >= len(row) {
			continue
		}
		row = row[colOffset:]
		if strings.TrimSpace(row[0]) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

// widest returns the length of the longest row.
func widest(rows [][]string) int {
	n := 0
	for _, r := range rows {
		n = max(n, len(r))
	}
	return n
}

// pad extends cells with empty strings up to n.
func pad(cells []string, n int) []string {
	if len(cells) >= n {
		return cells
	}
	out := make([]string, n)
	copy(out, cells)
	return out
}
