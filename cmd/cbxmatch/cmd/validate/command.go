// Package validate implements the validate command.
package validate

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/cbxmatch/cmd/application"
	"github.com/agentstation/cbxmatch/internal/cmd/cmdutil"
	"github.com/agentstation/cbxmatch/internal/cmd/output"
	"github.com/agentstation/cbxmatch/internal/ingest"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
)

// Finding sources.
const (
	sourceRegistry      = "registry"
	sourceHiringClients = "hiring clients"
)

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var in *cmdutil.InputFlags
	cmd := &cobra.Command{
		Use:     "validate <cbx-list.csv> <hc-list.xlsx>",
		GroupID: "core",
		Short:   "Check the input files without matching",
		Long: `Validate reads both input files and reports every data issue a match
run would stop on: wrong headers or column counts, relationship lists of
different lengths, amounts that are not numbers and invalid or mismatched
contact currencies.

The command fails when an issue is fatal, or when warnings were found and
--ignore-warnings is not set.`,
		Example: `  cbxmatch validate cbx.csv contractors.xlsx
  cbxmatch validate cbx.csv contractors.xlsx --hc-sheet Contractors -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app, in, args, cmd.OutOrStdout())
		},
	}
	in = cmdutil.AddInputFlags(cmd, app.Settings())
	return cmd
}

func run(ctx context.Context, app application.Application, in *cmdutil.InputFlags, args []string, w io.Writer) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}
	opts, err := in.Options()
	if err != nil {
		return err
	}
	// Every warning is collected so it can be reported.
	opts.IgnoreWarnings = true
	ctx = logging.WithLogger(ctx, app.Logger())

	var report output.Report
	reg, err := ingest.LoadRegistry(ctx, args[0], opts)
	if err := collect(&report, sourceRegistry, err); err != nil {
		return err
	}
	if reg != nil {
		report.Entities = len(reg.Entities)
		for _, warning := range reg.Warnings {
			report.Add(sourceRegistry, warning)
		}
	}

	hcs, err := ingest.LoadHiringClients(ctx, args[1], opts)
	if err := collect(&report, sourceHiringClients, err); err != nil {
		return err
	}
	if hcs != nil {
		report.Contractors = len(hcs.Records)
		for _, warning := range hcs.Warnings {
			report.Add(sourceHiringClients, warning)
		}
		for _, rec := range hcs.Records {
			if err := collect(&report, sourceHiringClients, rec.CheckCurrency()); err != nil {
				return err
			}
		}
	}

	if err := output.WriteReport(w, format, report); err != nil {
		return err
	}
	switch {
	case report.Fatal():
		return fmt.Errorf("%d data issues found, some of them fatal", len(report.Findings))
	case len(report.Findings) > 0 && !in.IgnoreWarnings:
		return fmt.Errorf("%d data warnings found", len(report.Findings))
	}
	return nil
}

// collect adds data errors and warnings to report. Any other error is
// returned.
func collect(report *output.Report, source string, err error) error {
	var (
		dataErr *errors.DataError
		warning *errors.DataWarning
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &dataErr):
		report.AddFatal(source, dataErr)
		return nil
	case errors.As(err, &warning):
		report.Add(source, warning)
		return nil
	}
	return err
}
