package cbxmatch

import (
	"fmt"
	"time"

	"github.com/agentstation/cbxmatch/pkg/action"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/matching"
	"github.com/agentstation/cbxmatch/pkg/outcome"
)

// Result is the outcome of a matching run.
type Result struct {
	// RunID identifies the run in logs and output file names.
	RunID string

	// Outcomes holds one outcome per input record, in input order.
	Outcomes []outcome.MatchOutcome

	Metadata ResultMetadata
	Stats    Stats

	// Warnings are the data warnings that did not abort the run.
	Warnings errors.Warnings
}

// ResultMetadata contains timing information about the run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Stats counts outcomes by kind.
type Stats struct {
	Records   int `json:"records" yaml:"records"`
	Matched   int `json:"matched" yaml:"matched"`
	Forced    int `json:"forced" yaml:"forced"`
	Ambiguous int `json:"ambiguous" yaml:"ambiguous"`
	NoMatch   int `json:"no_match" yaml:"no_match"`
	Created   int `json:"created" yaml:"created"`

	// Actions counts outcomes per recommended action.
	Actions map[action.Action]int `json:"actions" yaml:"actions"`
}

// NewResult creates an empty result for run id.
func NewResult(runID string) *Result {
	return &Result{
		RunID: runID,
		Stats: Stats{Actions: make(map[action.Action]int)},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// add appends o and counts it.
func (r *Result) add(o outcome.MatchOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Stats.Records++
	switch {
	case o.Decision.Kind == matching.ForcedMatch:
		r.Stats.Forced++
	case o.Decision.Matched():
		r.Stats.Matched++
	default:
		r.Stats.NoMatch++
	}
	if o.Decision.Matched() && o.Ambiguous {
		r.Stats.Ambiguous++
	}
	if o.Create {
		r.Stats.Created++
	}
	r.Stats.Actions[o.Action]++
}

// Finalize records the end of the run.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// Count returns how many outcomes recommend a.
func (r *Result) Count(a action.Action) int {
	return r.Stats.Actions[a]
}

// Summary returns a one-line description of the run.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d contractors: %d matched, %d forced, %d ambiguous, %d without match",
		r.Stats.Records, r.Stats.Matched, r.Stats.Forced, r.Stats.Ambiguous, r.Stats.NoMatch)
	if n := len(r.Warnings); n > 0 {
		s += fmt.Sprintf(" (%d warnings ignored)", n)
	}
	return s
}
