package matching

import (
	"fmt"

	"github.com/agentstation/cbxmatch/pkg/config"
	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Kind is the kind of a selection decision.
type Kind int

// Decision kinds.
const (
	NoMatch Kind = iota
	SingleMatch
	ForcedMatch
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case SingleMatch:
		return "single_match"
	case ForcedMatch:
		return "forced_match"
	default:
		return "no_match"
	}
}

// Tier is the selection tier that produced a decision.
type Tier int

// Selection tiers, in the order they are tried.
const (
	TierNone Tier = iota
	TierPerfect
	TierHigh
	TierPostal
	TierCombined
	TierForced
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierHigh:
		return "high"
	case TierPostal:
		return "postal"
	case TierCombined:
		return "combined"
	case TierForced:
		return "forced"
	default:
		return "none"
	}
}

// Decision is the outcome of selecting among the candidates of one record.
type Decision struct {
	Kind Kind
	Tier Tier

	// Candidate is the chosen candidate; zero for NoMatch.
	Candidate Candidate

	// Ambiguous is set when the name is corroborated but the location is not.
	Ambiguous bool

	// Reason explains a NoMatch or a forced decision.
	Reason string
}

// Matched reports whether an entity was chosen.
func (d Decision) Matched() bool { return d.Kind != NoMatch }

// Entity returns the chosen entity, or nil.
func (d Decision) Entity() *records.RegistryEntity {
	if !d.Matched() {
		return nil
	}
	return d.Candidate.Entity
}

func noMatch(reason string) Decision {
	return Decision{Kind: NoMatch, Tier: TierNone, Reason: reason}
}

// Eligible returns the candidates whose name score reaches threshold, in order.
func Eligible(threshold int, candidates []Candidate) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.NameScore >= threshold {
			out = append(out, c)
		}
	}
	return out
}

// CombinedScore is the weighted score of the last selection tier.
func CombinedScore(c Candidate) float64 {
	return float64(c.RelationshipCount)*constants.CombinedRelationshipWeight +
		float64(c.NameScore)*0.3 +
		c.BusinessScore*0.3 +
		float64(c.AddressScore)*0.2
}

// Select picks at most one candidate. Eligible candidates are tried tier by
// tier: perfect names, high names, postal-confirmed names, then a weighted
// combination. Within a tier the first candidate with the highest sort key
// wins, so ties go to the earlier registry entry.
func Select(cfg config.Config, candidates []Candidate) Decision {
	eligible := Eligible(cfg.CompanyThreshold, candidates)
	if len(eligible) == 0 {
		return noMatch(fmt.Sprintf("no candidate reached company ratio %d", cfg.CompanyThreshold))
	}

	chosen, tier := pick(eligible)
	if chosen.NameScore < constants.MinimumNameScore {
		return noMatch(fmt.Sprintf("best candidate %d has company ratio %d", chosen.EntityID(), chosen.NameScore))
	}
	return Decision{
		Kind:      SingleMatch,
		Tier:      tier,
		Candidate: chosen,
		Ambiguous: chosen.NameScore >= constants.AmbiguousNameScore && chosen.AddressScore < constants.AmbiguousAddressScore,
	}
}

func pick(eligible []Candidate) (Candidate, Tier) {
	if perfect := filter(eligible, func(c Candidate) bool { return c.NameScore >= constants.PerfectNameScore }); len(perfect) > 0 {
		return best(perfect, func(c Candidate) []float64 {
			return []float64{flag(c.HasRelationship()), float64(c.RelationshipCount), flag(c.ContactMatch),
				flag(c.PostalMatch), float64(c.AddressScore), c.BusinessScore, float64(c.NameScore)}
		}), TierPerfect
	}
	if high := filter(eligible, func(c Candidate) bool { return c.NameScore >= constants.HighNameScore }); len(high) > 0 {
		return best(high, func(c Candidate) []float64 {
			return []float64{flag(c.HasRelationship()), float64(c.RelationshipCount), flag(c.ContactMatch),
				c.BusinessScore, float64(c.NameScore), float64(c.AddressScore)}
		}), TierHigh
	}
	if postal := filter(eligible, func(c Candidate) bool { return c.PostalMatch }); len(postal) > 0 {
		return best(postal, func(c Candidate) []float64 {
			return []float64{c.BusinessScore, float64(c.NameScore), float64(c.AddressScore)}
		}), TierPostal
	}
	return best(eligible, func(c Candidate) []float64 {
		return []float64{flag(c.HasRelationship()), CombinedScore(c)}
	}), TierCombined
}

func filter(cs []Candidate, keep func(Candidate) bool) []Candidate {
	var out []Candidate
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// best returns the first candidate with the lexicographically greatest key.
func best(cs []Candidate, key func(Candidate) []float64) Candidate {
	winner, winnerKey := cs[0], key(cs[0])
	for _, c := range cs[1:] {
		if k := key(c); greater(k, winnerKey) {
			winner, winnerKey = c, k
		}
	}
	return winner
}

func greater(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
