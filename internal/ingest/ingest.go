// Package ingest reads the two inputs of a matching run: the CBX registry
// export (CSV) and the hiring-client contractor list (XLSX).
//
// Readers check the shape of each file before parsing it. Shape and header
// problems are data warnings: they abort the read unless Options.IgnoreWarnings
// is set, in which case they are logged and returned with the data.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
)

// Options control how input files are read.
type Options struct {
	// Sheet is the hiring-client sheet name. Empty means the active sheet.
	Sheet string

	// RowOffset and ColOffset are the number of leading rows and columns
	// to skip before the hiring-client data (headers included) starts.
	RowOffset int
	ColOffset int

	// NoHeaders indicates that neither input starts with a header row.
	NoHeaders bool

	// Encoding is the character encoding of the registry export.
	// Empty means UTF-8 with an optional byte order mark.
	Encoding string

	// ListSeparator splits list cells of the registry export.
	ListSeparator string

	// IgnoreWarnings keeps reading past data warnings.
	IgnoreWarnings bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{ListSeparator: constants.DefaultListSeparator}
}

// ParseOffset parses a "row,column" offset where the data starts, both
// 1-based, into the number of rows and columns to skip. An empty string
// means no offset.
func ParseOffset(s string) (rows, cols int, err error) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, errors.NewValidationError("offset", s, "expected <row>,<column>")
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || row < 1 {
		return 0, 0, errors.NewValidationError("offset", s, "row must be a positive integer")
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || col < 1 {
		return 0, 0, errors.NewValidationError("offset", s, "column must be a positive integer")
	}
	return row - 1, col - 1, nil
}

// collector applies the warning policy while a file is read.
type collector struct {
	ctx      context.Context
	ignore   bool
	warnings errors.Warnings
}

func newCollector(ctx context.Context, opts Options) *collector {
	return &collector{ctx: ctx, ignore: opts.IgnoreWarnings}
}

// add logs w and returns it as an error unless warnings are ignored.
func (c *collector) add(w *errors.DataWarning) error {
	logging.FromContext(c.ctx).Warn().
		Int("row", w.Row).
		Str("field", w.Field).
		Bool("ignored", c.ignore).
		Msg(w.Message)
	if !c.ignore {
		return w
	}
	c.warnings.Add(w)
	return nil
}

// addAll applies add to every warning of ws.
func (c *collector) addAll(ws errors.Warnings) error {
	for _, w := range ws {
		if err := c.add(w); err != nil {
			return err
		}
	}
	return nil
}

// checkHeaders compares headers with want position by position, after
// lower-casing and trimming. Extra trailing headers are not checked.
func (c *collector) checkHeaders(headers, want []string) error {
	for i, name := range want {
		got := ""
		if i < len(headers) {
			got = headers[i]
		}
		if got != name {
			w := errors.NewDataWarning(-1, fmt.Sprintf("column %d", i+1), got, fmt.Sprintf("expected header %q", name))
			if err := c.add(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanHeaders lower-cases and trims header cells.
func cleanHeaders(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return out
}
