package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Registry is a parsed registry export.
type Registry struct {
	Entities []records.RegistryEntity

	// Warnings are the ignored data warnings found while reading.
	Warnings errors.Warnings
}

// LoadRegistry reads the registry export at path.
func LoadRegistry(ctx context.Context, path string, opts Options) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	ctx = logging.WithFile(ctx, path)
	return ReadRegistry(ctx, f, opts)
}

// ReadRegistry reads a registry export from r. The first row must have
// exactly the registry columns and, unless opts.NoHeaders is set, the
// expected header names.
func ReadRegistry(ctx context.Context, r io.Reader, opts Options) (*Registry, error) {
	log := logging.FromContext(ctx)
	sep := opts.ListSeparator
	if sep == "" {
		sep = constants.DefaultListSeparator
	}

	dec, err := decoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", "registry", err)
	}

	c := newCollector(ctx, opts)
	if len(rows) > 0 && len(rows[0]) != constants.RegistryColumns {
		w := errors.NewDataWarning(-1, "columns", fmt.Sprint(len(rows[0])),
			fmt.Sprintf("got %d columns when expecting %d", len(rows[0]), constants.RegistryColumns))
		if err := c.add(w); err != nil {
			return nil, err
		}
	}
	if !opts.NoHeaders && len(rows) > 0 {
		if err := c.checkHeaders(cleanHeaders(rows[0]), records.RegistryHeaders); err != nil {
			return nil, err
		}
		rows = rows[1:]
	}

	reg := &Registry{Entities: make([]records.RegistryEntity, 0, len(rows))}
	for i, cells := range rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}
		e, ws, err := records.ParseRegistryEntity(i, cells, sep)
		if err != nil {
			return nil, err
		}
		if err := c.addAll(ws); err != nil {
			return nil, err
		}
		reg.Entities = append(reg.Entities, e)
	}
	reg.Warnings = c.warnings

	log.Info().Int("entities", len(reg.Entities)).Msg("Read registry")
	return reg, nil
}

// decoder wraps r so it yields UTF-8. A leading byte order mark is dropped.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8", "utf-8-sig", "utf_8_sig":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, errors.NewValidationError("encoding", encoding, "unsupported encoding")
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
