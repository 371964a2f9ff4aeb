// Package match implements the match command.
package match

import (
	"context"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/cmd/application"
	"github.com/agentstation/cbxmatch/internal/cmd/cmdutil"
	"github.com/agentstation/cbxmatch/internal/cmd/output"
	"github.com/agentstation/cbxmatch/internal/ingest"
	"github.com/agentstation/cbxmatch/internal/workbook"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/outcome"
)

// NewCommand creates the match command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		in    *cmdutil.InputFlags
		flags *cmdutil.MatchFlags
	)
	cmd := &cobra.Command{
		Use:     "match <cbx-list.csv> <hc-list.xlsx> <output.xlsx>",
		GroupID: "core",
		Short:   "Match a hiring client contractor list against the CBX registry",
		Long: `Match reads the CBX registry export (CSV) and a hiring client contractor
list (XLSX), finds the registry entity of every contractor and writes the
analysis workbook.

The output workbook holds every contractor followed by the analysis columns,
one sheet per recommended action, and the "Data to import", "Existing
Contractors" and "Data for HS" views. Metadata columns of the hiring client
list are moved after the analysis columns.`,
		Example: `  cbxmatch match cbx.csv contractors.xlsx analysis.xlsx
  cbxmatch match cbx.csv contractors.xlsx analysis.xlsx --hc-sheet Contractors --hc-offset 3,1
  cbxmatch match cbx.csv contractors.xlsx analysis.xlsx --min-company-match-ratio 80 --ignore-warnings`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app, in, flags, args, cmd.OutOrStdout())
		},
	}

	s := app.Settings()
	in = cmdutil.AddInputFlags(cmd, s)
	flags = cmdutil.AddMatchFlags(cmd, s)
	return cmd
}

func run(ctx context.Context, app application.Application, in *cmdutil.InputFlags,
	flags *cmdutil.MatchFlags, args []string, w io.Writer) error {
	registryPath, hcPath, outPath := args[0], args[1], args[2]

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
	m, err := app.Matcher(flags.Options(in)...)
	if err != nil {
		return err
	}

	ctx = logging.WithLogger(ctx, app.Logger())
	log := logging.FromContext(ctx)
	cfg := m.Config()
	log.Info().
		Str("registry", registryPath).
		Str("contractors", hcPath).
		Str("output", outPath).
		Int("company_ratio", cfg.CompanyThreshold).
		Int("address_ratio", cfg.AddressThreshold).
		Msg("Starting")

	reg, err := ingest.LoadRegistry(ctx, registryPath, opts)
	if err != nil {
		return err
	}
	hcs, err := ingest.LoadHiringClients(ctx, hcPath, opts)
	if err != nil {
		return err
	}

	m.OnOutcome(func(o outcome.MatchOutcome) {
		log.Debug().Int("row", o.Index).Str("action", o.Action.String()).Msg("Contractor classified")
	})
	result, err := m.Match(ctx, reg.Entities, hcs.Records)
	if err != nil {
		return err
	}
	merge(result, reg, hcs)

	rows := make([]workbook.Row, len(hcs.Records))
	for i, rec := range hcs.Records {
		rows[i] = workbook.Row{Record: rec, Outcome: result.Outcomes[i]}
	}
	if err := workbook.Write(ctx, outPath, hcs.MetadataHeaders, rows); err != nil {
		return err
	}

	log.Info().Msg(result.Summary())
	return output.WriteSummary(w, format, output.NewSummary(result, outPath))
}

// merge adds the ignored warnings of the input files to result, before
// those found while matching.
func merge(result *cbxmatch.Result, reg *ingest.Registry, hcs *ingest.HiringClients) {
	result.Warnings = slices.Concat(reg.Warnings, hcs.Warnings, result.Warnings)
}
