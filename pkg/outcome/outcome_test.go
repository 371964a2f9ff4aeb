package outcome_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cbxmatch/pkg/action"
	"github.com/agentstation/cbxmatch/pkg/config"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/matching"
	"github.com/agentstation/cbxmatch/pkg/outcome"
	"github.com/agentstation/cbxmatch/pkg/records"
)

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	return config.Default().WithClock(func() time.Time { return now })
}

func contractor() records.HiringClientRecord {
	return records.HiringClientRecord{
		Index:            2,
		Company:          "Gamma Roofing",
		FirstName:        "Lise",
		LastName:         "Roy",
		Email:            "lise@gamma.ca",
		ContactPhone:     "5145550101",
		Street:           "12 rue Notre-Dame",
		City:             "Montréal",
		State:            "QC",
		Country:          "CA",
		PostalCode:       "H2Y1C6",
		Currency:         "CAD",
		HiringClientName: "Hydro",
	}
}

func build(t *testing.T, cfg config.Config, hc records.HiringClientRecord, registry []records.RegistryEntity) outcome.MatchOutcome {
	t.Helper()
	ctx := context.Background()
	res := matching.NewGenerator(cfg, registry).Match(ctx, hc)
	out, err := outcome.Build(ctx, cfg, hc, res)
	require.NoError(t, err)
	return out
}

func TestBuildNameOnlyMatch(t *testing.T) {
	registry := []records.RegistryEntity{{ID: 2, NameEN: "ACME Inc.", RegistrationStatus: records.StatusActive}}
	out := build(t, testConfig(), records.HiringClientRecord{Company: "ACME Construction Inc."}, registry)

	assert.Equal(t, matching.SingleMatch, out.Decision.Kind)
	assert.False(t, out.Ambiguous)
	assert.False(t, out.Create)
	assert.Equal(t, action.AddQuestionnaire, out.Action)
	assert.Equal(t, int64(2), out.Value("cbx_id"))
}

func TestBuildMissingInfo(t *testing.T) {
	registry := []records.RegistryEntity{{ID: 1, NameEN: "Anything", RegistrationStatus: records.StatusActive}}
	out := build(t, testConfig(), records.HiringClientRecord{}, registry)
	assert.True(t, out.Create)
	assert.Equal(t, action.MissingInfo, out.Action)
}

func TestBuildPaths(t *testing.T) {
	related := records.RegistryEntity{
		ID: 10, NameEN: "Gamma Roofing", Address: "900 Industrial Park", City: "Laval",
		RegistrationStatus: records.StatusActive,
		Relationships:      []records.Relationship{{Name: "Hydro", Status: "validated"}},
	}
	unrelated := related
	unrelated.Relationships = nil
	samePlace := unrelated
	samePlace.Address = "12 Notre-Dame Street"

	tests := []struct {
		name       string
		entity     records.RegistryEntity
		hc         func(records.HiringClientRecord) records.HiringClientRecord
		ambiguous  bool
		create     bool
		showEntity bool
		want       action.Action
	}{
		{name: "confident match", entity: samePlace, want: action.AddQuestionnaire, showEntity: true},
		{name: "ambiguous without relationship", entity: unrelated, ambiguous: true, create: true, want: action.AmbiguousOnboarding},
		{name: "ambiguous with relationship", entity: related, ambiguous: true, showEntity: true, want: action.AlreadyQualified},
		{
			name:   "no match",
			entity: records.RegistryEntity{ID: 11, NameEN: "Zeta Paving"},
			create: true, want: action.Onboarding,
		},
		{
			name:   "forced and flagged ambiguous",
			entity: samePlace,
			hc: func(hc records.HiringClientRecord) records.HiringClientRecord {
				hc.ForceCBXID = "10"
				hc.Ambiguous = "yes"
				return hc
			},
			ambiguous: true, create: true, want: action.AmbiguousOnboarding,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := contractor()
			if tt.hc != nil {
				hc = tt.hc(hc)
			}
			out := build(t, testConfig(), hc, []records.RegistryEntity{tt.entity})
			assert.Equal(t, tt.ambiguous, out.Ambiguous)
			assert.Equal(t, tt.create, out.Create)
			assert.Equal(t, tt.showEntity, out.ShowEntity)
			assert.Equal(t, tt.want, out.Action)
		})
	}
}

func TestBuildUnknownStatusIsFatal(t *testing.T) {
	registry := []records.RegistryEntity{{ID: 1, NameEN: "Gamma Roofing", Address: "12 Notre-Dame Street", RegistrationStatus: "Archived"}}
	hc := contractor()
	cfg := testConfig()
	res := matching.NewGenerator(cfg, registry).Match(context.Background(), hc)
	_, err := outcome.Build(context.Background(), cfg, hc, res)
	assert.True(t, errors.IsFatal(err))
}

func TestSkipped(t *testing.T) {
	out, err := outcome.Skipped(context.Background(), testConfig(), contractor())
	require.NoError(t, err)
	assert.True(t, out.Create)
	assert.Equal(t, action.Onboarding, out.Action)
	assert.Equal(t, "", out.Value("cbx_id"))
	assert.Equal(t, 3, out.Value("index"))
}

func TestSubscriptionUpgrade(t *testing.T) {
	entity := records.RegistryEntity{
		ID: 3, NameEN: "Gamma Roofing", Address: "12 Notre-Dame Street",
		RegistrationStatus:   records.StatusActive,
		SubscriptionPriceCAD: 400,
		SubscriptionPriceUSD: 300,
	}
	tests := []struct {
		name       string
		fee        string
		currency   string
		expiration string
		want       outcome.Upgrade
		action     action.Action
	}{
		{name: "no base fee", fee: "", currency: "CAD", action: action.AddQuestionnaire},
		{name: "already paying more", fee: "350", currency: "CAD", action: action.AddQuestionnaire},
		{name: "full difference without expiration", fee: "1000", currency: "CAD", want: outcome.Upgrade{Needed: true, Price: 600, Prorated: 600}, action: action.SubscriptionUpgrade},
		{name: "usd price", fee: "500", currency: "USD", want: outcome.Upgrade{Needed: true, Price: 200, Prorated: 200}, action: action.SubscriptionUpgrade},
		{name: "prorated", fee: "765", currency: "CAD", expiration: "31/08/26", want: outcome.Upgrade{Needed: true, Price: 365, Prorated: 183}, action: action.SubscriptionUpgrade},
		{name: "expired", fee: "765", currency: "CAD", expiration: "01/01/2026", want: outcome.Upgrade{Needed: true, Price: 365, Prorated: 0}, action: action.SubscriptionUpgrade},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entity
			e.ExpirationDate = tt.expiration
			hc := contractor()
			hc.BaseSubscriptionFee = tt.fee
			hc.Currency = tt.currency
			out := build(t, testConfig(), hc, []records.RegistryEntity{e})
			assert.Equal(t, tt.want, out.Upgrade)
			assert.Equal(t, tt.action, out.Action)
		})
	}
}

func TestBuildBadExpiration(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	cfg := testConfig()
	registry := []records.RegistryEntity{{
		ID: 4, NameEN: "Gamma Roofing", Address: "12 Notre-Dame Street",
		RegistrationStatus: records.StatusActive, ExpirationDate: "someday",
	}}
	hc := contractor()
	hc.IsAssociationFee = "yes"

	out, err := outcome.Build(ctx, cfg, hc, matching.NewGenerator(cfg, registry).Match(ctx, hc))
	require.NoError(t, err)
	assert.Nil(t, out.Expiration)
	assert.Equal(t, action.AssociationFee, out.Action)
	tl.AssertContains(t, "Ignoring expiration date")
	tl.AssertContains(t, "someday")
}

func TestMatchCounts(t *testing.T) {
	registry := []records.RegistryEntity{
		{ID: 1, NameEN: "Gamma Roofing", Relationships: []records.Relationship{{Name: "HYDRO"}}},
		{ID: 2, NameEN: "Gamma Roofing Ltd"},
		{ID: 3, NameEN: "Zeta Paving", Relationships: []records.Relationship{{Name: "Hydro"}}},
	}
	out := build(t, testConfig(), contractor(), registry)
	assert.Equal(t, 2, out.MatchCount)
	assert.Equal(t, 1, out.MatchCountWithHC)
	assert.Equal(t, false, out.Value("generic_domain"))
}

func TestValues(t *testing.T) {
	expires := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	e := &records.RegistryEntity{
		ID: 7, NameFR: "Toitures Gamma", NameEN: "Gamma Roofing", City: "Laval",
		Modules: []string{"safety", "insurance"}, SubscriptionPriceCAD: 400, SubscriptionPriceUSD: 300,
		RegistrationStatus: records.StatusActive,
	}
	out := outcome.MatchOutcome{
		Index:         5,
		Decision:      matching.Decision{Kind: matching.SingleMatch, Candidate: matching.Candidate{Entity: e, NameScore: 97, AddressScore: 64}},
		Action:        action.AddQuestionnaire,
		ShowEntity:    true,
		Expiration:    &expires,
		Currency:      "USD",
		ListSeparator: ";",
	}

	values := out.Values()
	require.Len(t, values, len(outcome.AnalysisHeaders))
	assert.Equal(t, int64(7), values[outcome.ColumnCBXID])
	assert.Equal(t, "2026-12-31 00:00:00", values[outcome.ColumnExpiration])
	assert.Equal(t, "add_questionnaire", values[outcome.ColumnAction])
	assert.Equal(t, 6, values[outcome.ColumnIndex])
	assert.Equal(t, "Toitures Gamma", out.Value("cbx_contractor"))
	assert.Equal(t, "safety;insurance", out.Value("modules"))
	assert.Equal(t, 300.0, out.Value("cbx_subscription_fee"))
	assert.Equal(t, 97, out.Value("ratio_company"))
	assert.Equal(t, "", out.Value("upgrade_price"))
	assert.Nil(t, out.Value("no_such_column"))

	t.Run("hidden entity keeps scores", func(t *testing.T) {
		hidden := out
		hidden.ShowEntity = false
		assert.Equal(t, "", hidden.Value("cbx_id"))
		assert.Equal(t, "", hidden.Value("cbx_city"))
		assert.Equal(t, 97, hidden.Value("ratio_company"))
		assert.Equal(t, "Active", hidden.Value("registration_status"))
	})
}

func TestRenderAnalysis(t *testing.T) {
	e := &records.RegistryEntity{ID: 7, NameEN: "Gamma Roofing", Modules: []string{"safety", "insurance"}}
	other := &records.RegistryEntity{ID: 8, NameEN: "Gamma Roofs"}
	chosen := matching.Candidate{Entity: e, NameScore: 100, AddressScore: 90, ContactMatch: true}
	audit := []matching.AuditEntry{matching.NewAuditEntry(chosen), matching.NewAuditEntry(matching.Candidate{Entity: other, NameScore: 80})}

	t.Run("confident match lists every candidate", func(t *testing.T) {
		got := outcome.RenderAnalysis(matching.Decision{Kind: matching.SingleMatch, Candidate: chosen}, audit, ";")
		assert.True(t, strings.HasPrefix(got, ">>> SELECTED BEST MATCH: 7, Gamma Roofing"))
		assert.Contains(t, got, "--> CR100, AR90, CMtrue, DMfalse, HCC0, M[safety;insurance]\n\n>>> ALL CANDIDATES CONSIDERED:\n7, ")
		assert.Contains(t, got, "8, Gamma Roofs")
		assert.Equal(t, 3, strings.Count(got, "-->"))
	})

	t.Run("confident match alone", func(t *testing.T) {
		got := outcome.RenderAnalysis(matching.Decision{Kind: matching.SingleMatch, Candidate: chosen}, nil, ";")
		assert.True(t, strings.HasPrefix(got, "7, Gamma Roofing"))
		assert.Equal(t, 1, strings.Count(got, "-->"))
	})

	t.Run("ambiguous match has no header", func(t *testing.T) {
		got := outcome.RenderAnalysis(matching.Decision{Kind: matching.SingleMatch, Candidate: chosen, Ambiguous: true}, audit, ";")
		assert.NotContains(t, got, ">>>")
		assert.Equal(t, 2, strings.Count(got, "-->"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, outcome.RenderAnalysis(matching.Decision{}, nil, ";"))
	})
}
