// Package cbxmatch reconciles hiring-client contractor lists with the CBX
// business-unit registry.
//
// A Matcher scores every hiring-client record against the registry, picks at
// most one registry entity for it, resolves the hiring-client relationship
// and recommends the workflow action that should follow:
//
//	m, err := cbxmatch.New(cbxmatch.WithCompanyThreshold(75), cbxmatch.WithWorkers(4))
//	if err != nil {
//		return err
//	}
//	result, err := m.Match(ctx, registry, contractors)
//
// Records are independent, so they are matched in parallel; outcomes are
// always returned in input order.
package cbxmatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"

	"github.com/agentstation/cbxmatch/pkg/config"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/matching"
	"github.com/agentstation/cbxmatch/pkg/outcome"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Matcher matches hiring-client records against a registry.
type Matcher interface {
	// Config returns the matching configuration.
	Config() config.Config

	// Match computes the outcome of every record. It fails on the first
	// fatal data error, or on the first data warning unless warnings are
	// ignored.
	Match(ctx context.Context, registry []records.RegistryEntity, contractors []records.HiringClientRecord) (*Result, error)

	// OnOutcome registers a callback run for every outcome, in input order.
	OnOutcome(OutcomeHook)

	// OnWarning registers a callback run for every ignored data warning.
	OnWarning(WarningHook)
}

// matcher is the Matcher implementation.
type matcher struct {
	cfg   config.Config
	hooks *hooks
}

// New creates a Matcher from config.Default adjusted by opts.
func New(opts ...Option) (Matcher, error) {
	m := &matcher{
		cfg:   config.Default(),
		hooks: newHooks(),
	}
	for _, opt := range opts {
		if err := opt(&m.cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Config returns the matching configuration.
func (m *matcher) Config() config.Config { return m.cfg }

// OnOutcome registers a callback run for every outcome.
func (m *matcher) OnOutcome(fn OutcomeHook) { m.hooks.OnOutcome(fn) }

// OnWarning registers a callback run for every ignored data warning.
func (m *matcher) OnWarning(fn WarningHook) { m.hooks.OnWarning(fn) }

// row is what matching one record produces.
type row struct {
	outcome  outcome.MatchOutcome
	warnings errors.Warnings
}

// Match computes the outcome of every record.
func (m *matcher) Match(ctx context.Context, registry []records.RegistryEntity, contractors []records.HiringClientRecord) (*Result, error) {
	result := NewResult(uuid.NewString())
	ctx = logging.WithRunID(ctx, result.RunID)
	log := logging.FromContext(ctx)
	log.Info().
		Int("registry", len(registry)).
		Int("contractors", len(contractors)).
		Int("workers", m.cfg.Workers).
		Msg("Matching contractors")

	g := matching.NewGenerator(m.cfg, registry)
	mapper := iter.Mapper[records.HiringClientRecord, row]{MaxGoroutines: m.cfg.Workers}
	rows, err := mapper.MapErr(contractors, func(hc *records.HiringClientRecord) (row, error) {
		return m.matchOne(ctx, g, *hc)
	})
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		result.add(r.outcome)
		for _, w := range r.warnings {
			result.Warnings.Add(w)
			m.hooks.triggerWarning(w)
		}
		m.hooks.triggerOutcome(r.outcome)
	}
	result.Finalize()

	log.Info().
		Int("matched", result.Stats.Matched).
		Int("ambiguous", result.Stats.Ambiguous).
		Int("no_match", result.Stats.NoMatch).
		Int("warnings", len(result.Warnings)).
		Dur("duration", result.Metadata.Duration).
		Msg("Matching completed")
	return result, nil
}

// matchOne computes the outcome of a single record.
func (m *matcher) matchOne(ctx context.Context, g *matching.Generator, hc records.HiringClientRecord) (row, error) {
	if err := ctx.Err(); err != nil {
		return row{}, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	ctx = logging.WithCompany(logging.WithRow(ctx, hc.Index), hc.Company)

	var r row
	if err := m.check(ctx, &r, hc.CheckCurrency()); err != nil {
		return row{}, err
	}

	var err error
	if hc.SkipMatching() {
		logging.FromContext(ctx).Debug().Msg("Matching disabled for record")
		r.outcome, err = outcome.Skipped(ctx, m.cfg, hc)
	} else {
		r.outcome, err = outcome.Build(ctx, m.cfg, hc, g.Match(ctx, hc))
	}
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Cannot classify contractor")
		return row{}, err
	}
	return r, nil
}

// check applies the warning policy to a record-level finding: it is logged,
// then either aborts the run or is kept as a warning of the result.
func (m *matcher) check(ctx context.Context, r *row, err error) error {
	if err == nil {
		return nil
	}
	logging.FromContext(ctx).Warn().Err(err).Bool("ignored", m.cfg.IgnoreWarnings).Msg("Data issue")
	if !m.cfg.IgnoreWarnings {
		return err
	}
	switch e := err.(type) {
	case *errors.DataWarning:
		r.warnings.Add(e)
	case *errors.DataError:
		r.warnings.Add(errors.NewDataWarning(e.Row, e.Field, e.Value, e.Message))
	}
	return nil
}
