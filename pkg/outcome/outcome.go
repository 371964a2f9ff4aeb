// Package outcome turns the matching result of one hiring-client record into
// its MatchOutcome: the resolved relationship, the recommended action and
// the analysis columns written next to the record.
package outcome

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/agentstation/cbxmatch/pkg/action"
	"github.com/agentstation/cbxmatch/pkg/config"
	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/matching"
	"github.com/agentstation/cbxmatch/pkg/records"
	"github.com/agentstation/cbxmatch/pkg/relationship"
)

// Upgrade describes a subscription upgrade owed by an existing contractor.
type Upgrade struct {
	Needed   bool
	Price    float64
	Prorated float64
}

// MatchOutcome is everything computed for one hiring-client record.
type MatchOutcome struct {
	// Index is the zero-based position of the record in its input sheet.
	Index int

	Decision     matching.Decision
	Relationship relationship.Result
	Action       action.Action

	// Create is set when the contractor must be created in the registry.
	Create bool

	// Ambiguous is the record's own flag, raised when the match is ambiguous.
	Ambiguous bool

	// ShowEntity is set when the matched entity's columns are filled.
	ShowEntity bool

	Expiration       *time.Time
	Upgrade          Upgrade
	GenericDomain    bool
	MatchCount       int
	MatchCountWithHC int
	Analysis         string
	Summary          string
	Currency         string
	ListSeparator    string
}

// Build resolves the relationship and action of hc from its matching
// result. Confident matches are existing contractors; ambiguous matches are
// existing only when they already work for the hiring client; everything
// else is created. The only error is a fatal classification error.
func Build(ctx context.Context, cfg config.Config, hc records.HiringClientRecord, res matching.Result) (MatchOutcome, error) {
	log := logging.FromContext(ctx)
	out := MatchOutcome{
		Index:         hc.Index,
		Decision:      res.Decision,
		Ambiguous:     hc.MarkedAmbiguous(),
		GenericDomain: cfg.IsGenericDomain(hc.Email),
		Summary:       hc.Summary(),
		Currency:      hc.Currency,
		ListSeparator: cfg.ListSeparator,
	}
	out.MatchCount, out.MatchCountWithHC = matchCounts(cfg, hc, res.Candidates)
	out.Analysis = RenderAnalysis(res.Decision, res.Audit, cfg.ListSeparator)

	in := action.Input{
		Record:         hc,
		Now:            cfg.Clock(),
		IgnoreWarnings: cfg.IgnoreWarnings,
	}

	e := res.Decision.Entity()
	switch {
	case e == nil:
		out.Create = true

	case !res.Decision.Ambiguous:
		out.Relationship = relationship.Resolve(hc.HiringClientName, *e, cfg.GenericNameWords)
		out.ShowEntity = true
		out.Expiration = expiration(ctx, hc, *e)
		out.Upgrade = subscriptionUpgrade(ctx, hc, *e, out.Relationship, out.Expiration, in.Now)
		in.Expiration = out.Expiration
		in.SubscriptionUpgrade = out.Upgrade.Needed

	default:
		out.Relationship = relationship.Resolve(hc.HiringClientName, *e, cfg.GenericNameWords)
		out.Ambiguous = true
		out.Create = !out.Relationship.InRelationship
		out.ShowEntity = out.Relationship.InRelationship
	}

	in.Create = out.Create
	in.Ambiguous = out.Ambiguous
	if e != nil {
		in.Match = &action.Match{
			RegistrationStatus: e.RegistrationStatus,
			InRelationship:     out.Relationship.InRelationship,
			Qualified:          out.Relationship.Qualified(),
		}
	}

	a, err := action.Classify(in)
	if err != nil {
		return out, err
	}
	out.Action = a

	log.Debug().
		Stringer("decision", res.Decision.Kind).
		Bool("create", out.Create).
		Bool("in_relationship", out.Relationship.InRelationship).
		Str("action", a.String()).
		Msg("Classified contractor")
	return out, nil
}

// Skipped builds the outcome of a record that must not be matched: it is
// always created.
func Skipped(ctx context.Context, cfg config.Config, hc records.HiringClientRecord) (MatchOutcome, error) {
	return Build(ctx, cfg, hc, matching.Result{Decision: matching.Decision{Reason: "matching disabled for record"}})
}

// matchCounts counts the candidates above the company threshold, and those
// of them already working for the record's hiring client.
func matchCounts(cfg config.Config, hc records.HiringClientRecord, candidates []matching.Candidate) (total, withClient int) {
	for _, c := range matching.Eligible(cfg.CompanyThreshold, candidates) {
		total++
		if _, ok := relationship.MatchClient(hc.HiringClientName, c.Entity.RelationshipNames(), cfg.GenericNameWords); ok {
			withClient++
		}
	}
	return total, withClient
}

// expiration parses the entity's qualification expiration. An unparsable
// date is logged and treated as absent.
func expiration(ctx context.Context, hc records.HiringClientRecord, e records.RegistryEntity) *time.Time {
	t, ok, err := records.ParseExpirationDate(e.ExpirationDate)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Int64("cbx_id", e.ID).
			Int("row", hc.Index).
			Msg("Ignoring expiration date")
		return nil
	}
	if !ok {
		return nil
	}
	return &t
}

// subscriptionUpgrade applies when an Active contractor new to the hiring
// client pays less than the client's base subscription fee. The difference
// is prorated over the time left until the qualification expires; without an
// expiration the full difference is owed.
func subscriptionUpgrade(ctx context.Context, hc records.HiringClientRecord, e records.RegistryEntity,
	rel relationship.Result, exp *time.Time, now time.Time) Upgrade {
	if rel.InRelationship || !strings.EqualFold(strings.TrimSpace(e.RegistrationStatus), records.StatusActive) {
		return Upgrade{}
	}
	fee, err := hc.BaseFee()
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Int("row", hc.Index).Msg("Ignoring base subscription fee")
		return Upgrade{}
	}
	current := e.SubscriptionPrice(hc.Currency)
	if fee <= 0 || current >= fee {
		return Upgrade{}
	}

	u := Upgrade{Needed: true, Price: round2(fee - current), Prorated: round2(fee - current)}
	if exp != nil {
		remaining := max(exp.Sub(now), 0)
		u.Prorated = round2((fee - current) * remaining.Hours() / constants.ProrationPeriod.Hours())
	}
	return u
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
