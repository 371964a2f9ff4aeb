package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/pkg/action"
	"github.com/agentstation/cbxmatch/pkg/errors"
)

// ActionCount is the number of contractors routed to one action.
type ActionCount struct {
	Action string `json:"action" yaml:"action"`
	Count  int    `json:"count" yaml:"count"`
}

// Summary is the report of a matching run.
type Summary struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	Output   string         `json:"output,omitempty" yaml:"output,omitempty"`
	Stats    cbxmatch.Stats `json:"stats" yaml:"stats"`
	Actions  []ActionCount  `json:"actions" yaml:"actions"`
	Warnings []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration string         `json:"duration" yaml:"duration"`
}

// NewSummary reports r. Actions are listed in sheet order, including
// those no contractor was routed to.
func NewSummary(r *cbxmatch.Result, output string) Summary {
	s := Summary{
		RunID:    r.RunID,
		Output:   output,
		Stats:    r.Stats,
		Duration: r.Metadata.Duration.String(),
	}
	for _, a := range action.All() {
		s.Actions = append(s.Actions, ActionCount{Action: a.String(), Count: r.Count(a)})
	}
	for _, w := range r.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	return s
}

// Table lays out the per-action counts followed by the totals.
func (s Summary) Table() Data {
	rows := make([][]string, 0, len(s.Actions)+6)
	for _, a := range s.Actions {
		rows = append(rows, []string{a.Action, strconv.Itoa(a.Count)})
	}
	rows = append(rows,
		[]string{"matched", strconv.Itoa(s.Stats.Matched)},
		[]string{"forced", strconv.Itoa(s.Stats.Forced)},
		[]string{"ambiguous", strconv.Itoa(s.Stats.Ambiguous)},
		[]string{"no match", strconv.Itoa(s.Stats.NoMatch)},
		[]string{"to create", strconv.Itoa(s.Stats.Created)},
		[]string{"total", strconv.Itoa(s.Stats.Records)},
	)
	return Data{
		Headers:         []string{"Action", "Contractors"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// WriteSummary renders s in format. Tables get a colored headline and the
// list of ignored warnings.
func WriteSummary(w io.Writer, format Format, s Summary) error {
	if format != FormatTable {
		return NewFormatter(format).Format(w, s)
	}

	headline := color.New(color.FgGreen, color.Bold)
	_, _ = headline.Fprintf(w, "Run %s completed in %s\n", s.RunID, s.Duration)
	if s.Output != "" {
		fmt.Fprintf(w, "Results written to %s\n", s.Output)
	}
	if err := NewFormatter(format).Format(w, s); err != nil {
		return err
	}
	if len(s.Warnings) > 0 {
		warn := color.New(color.FgYellow)
		_, _ = warn.Fprintf(w, "%d warnings were ignored:\n", len(s.Warnings))
		for _, msg := range s.Warnings {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	return nil
}

// Finding is one data problem reported by validation.
type Finding struct {
	Source  string `json:"source" yaml:"source"`
	Row     int    `json:"row" yaml:"row"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Message string `json:"message" yaml:"message"`
	Fatal   bool   `json:"fatal" yaml:"fatal"`
}

// Report is the result of validating the inputs of a run.
type Report struct {
	Entities    int       `json:"entities" yaml:"entities"`
	Contractors int       `json:"contractors" yaml:"contractors"`
	Findings    []Finding `json:"findings" yaml:"findings"`
}

// Add records a data warning found in source.
func (r *Report) Add(source string, w *errors.DataWarning) {
	r.Findings = append(r.Findings, Finding{Source: source, Row: w.Row, Field: w.Field, Value: w.Value, Message: w.Message})
}

// AddFatal records a fatal data error found in source.
func (r *Report) AddFatal(source string, e *errors.DataError) {
	r.Findings = append(r.Findings, Finding{Source: source, Row: e.Row, Field: e.Field, Value: e.Value, Message: e.Message, Fatal: true})
}

// Fatal reports whether any finding is fatal.
func (r Report) Fatal() bool {
	for _, f := range r.Findings {
		if f.Fatal {
			return true
		}
	}
	return false
}

// Table lists the findings, one per row.
func (r Report) Table() Data {
	rows := make([][]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		row := "-"
		if f.Row >= 0 {
			row = strconv.Itoa(f.Row + 1)
		}
		severity := "warning"
		if f.Fatal {
			severity = "error"
		}
		rows = append(rows, []string{f.Source, row, severity, f.Field, f.Value, f.Message})
	}
	return Data{
		Headers:         []string{"Source", "Row", "Severity", "Field", "Value", "Message"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// WriteReport renders r in format.
func WriteReport(w io.Writer, format Format, r Report) error {
	if format != FormatTable {
		return NewFormatter(format).Format(w, r)
	}
	fmt.Fprintf(w, "%d registry entities, %d contractors\n", r.Entities, r.Contractors)
	if len(r.Findings) == 0 {
		_, _ = color.New(color.FgGreen).Fprintln(w, "No data issues found")
		return nil
	}
	return NewFormatter(format).Format(w, r)
}
