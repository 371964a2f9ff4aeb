// Package cmdutil provides shared flags for cbxmatch commands.
package cmdutil

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/cmd/application"
	"github.com/agentstation/cbxmatch/internal/ingest"
)

// InputFlags describe how the input files are read.
type InputFlags struct {
	Sheet          string
	Offset         string
	NoHeaders      bool
	Encoding       string
	ListSeparator  string
	IgnoreWarnings bool
}

// AddInputFlags adds input flags to a command, defaulting to s.
func AddInputFlags(cmd *cobra.Command, s application.Settings) *InputFlags {
	flags := &InputFlags{}

	cmd.Flags().StringVar(&flags.Sheet, "hc-sheet", "",
		"Sheet of the hiring client workbook holding the data (default is the active sheet)")
	cmd.Flags().StringVar(&flags.Offset, "hc-offset", "",
		"Cell where the hiring client data starts, headers included, as <row>,<column> (default 1,1)")
	cmd.Flags().BoolVar(&flags.NoHeaders, "no-headers", false,
		"Input files have no header row")
	cmd.Flags().StringVar(&flags.Encoding, "cbx-encoding", s.RegistryEncoding,
		"Encoding of the registry export (default utf-8 with optional BOM)")
	cmd.Flags().StringVar(&flags.ListSeparator, "list-separator", s.ListSeparator,
		"Separator used inside list cells")
	cmd.Flags().BoolVar(&flags.IgnoreWarnings, "ignore-warnings", s.IgnoreWarnings,
		"Keep going when data consistency checks fail")

	return flags
}

// Options converts the flags to reader options.
func (f *InputFlags) Options() (ingest.Options, error) {
	rows, cols, err := ingest.ParseOffset(f.Offset)
	if err != nil {
		return ingest.Options{}, err
	}
	return ingest.Options{
		Sheet:          f.Sheet,
		RowOffset:      rows,
		ColOffset:      cols,
		NoHeaders:      f.NoHeaders,
		Encoding:       f.Encoding,
		ListSeparator:  f.ListSeparator,
		IgnoreWarnings: f.IgnoreWarnings,
	}, nil
}

// MatchFlags tune the matching engine.
type MatchFlags struct {
	CompanyThreshold int
	AddressThreshold int
	GenericDomains   string
	GenericNameWords string
	Workers          int
}

// AddMatchFlags adds matching flags to a command, defaulting to s.
func AddMatchFlags(cmd *cobra.Command, s application.Settings) *MatchFlags {
	flags := &MatchFlags{}

	cmd.Flags().IntVar(&flags.CompanyThreshold, "min-company-match-ratio", s.CompanyThreshold,
		"Minimum match ratio for contractors, between 0 and 100")
	cmd.Flags().IntVar(&flags.AddressThreshold, "min-address-match-ratio", s.AddressThreshold,
		"Minimum match ratio for addresses (street + zip), between 0 and 100")
	cmd.Flags().StringVar(&flags.GenericDomains, "additional-generic-domain", strings.Join(s.GenericDomains, s.ListSeparator),
		"Email domains to ignore, separated by the list separator")
	cmd.Flags().StringVar(&flags.GenericNameWords, "additional-generic-name-word", strings.Join(s.GenericNameWords, s.ListSeparator),
		"Generic words in company names to ignore, separated by the list separator")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", s.Workers,
		"Number of contractors matched concurrently")

	return flags
}

// Options converts the flags to matcher options.
func (f *MatchFlags) Options(in *InputFlags) []cbxmatch.Option {
	return []cbxmatch.Option{
		cbxmatch.WithCompanyThreshold(f.CompanyThreshold),
		cbxmatch.WithAddressThreshold(f.AddressThreshold),
		cbxmatch.WithListSeparator(in.ListSeparator),
		cbxmatch.WithGenericDomains(split(f.GenericDomains, in.ListSeparator)...),
		cbxmatch.WithGenericNameWords(split(f.GenericNameWords, in.ListSeparator)...),
		cbxmatch.WithIgnoreWarnings(in.IgnoreWarnings),
		cbxmatch.WithWorkers(f.Workers),
	}
}

func split(s, sep string) []string {
	if s == "" || sep == "" {
		return nil
	}
	return strings.Split(s, sep)
}
