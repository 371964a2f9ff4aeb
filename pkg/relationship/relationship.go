// Package relationship decides whether a registry entity already works for
// the hiring client that submitted a contractor, and whether that contractor
// is qualified for it.
package relationship

import (
	"strings"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/normalize"
	"github.com/agentstation/cbxmatch/pkg/records"
	"github.com/agentstation/cbxmatch/pkg/similarity"
)

// Qualification is the qualification state of a relationship.
type Qualification int

// Qualification states.
const (
	Unknown Qualification = iota
	Qualified
	Expired
	Pending
)

// String implements fmt.Stringer.
func (q Qualification) String() string {
	switch q {
	case Qualified:
		return "qualified"
	case Expired:
		return "expired"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

var statuses = map[string]Qualification{
	"validated": Qualified,
	"validate":  Qualified,
	"valid":     Qualified,
	"approved":  Qualified,
	"approve":   Qualified,
	"qualified": Qualified,
	"active":    Qualified,

	"expired":  Expired,
	"exprired": Expired,
	"expire":   Expired,

	"not approved":     Pending,
	"not_approved":     Pending,
	"pending":          Pending,
	"pending approval": Pending,
	"under review":     Pending,
	"in progress":      Pending,
}

// ParseStatus maps a registry qualification status to a Qualification.
// Unrecognized statuses are Unknown.
func ParseStatus(s string) Qualification {
	return statuses[strings.ToLower(strings.TrimSpace(s))]
}

// Result is the relationship state of a matched entity.
type Result struct {
	// InRelationship is set when the hiring client is among the entity's
	// relationships.
	InRelationship bool

	// Client is the relationship name the hiring client matched.
	Client string

	// Status is the qualification of the first relationship named Client
	// that carries a recognized status.
	Status Qualification
}

// Qualified reports whether the contractor is qualified for the client.
func (r Result) Qualified() bool { return r.Status == Qualified }

// Resolve finds the hiring client among the entity's relationships and
// reads the qualification of the matching relationship.
func Resolve(client string, e records.RegistryEntity, generic []string) Result {
	matched, ok := MatchClient(client, e.RelationshipNames(), generic)
	if !ok {
		return Result{}
	}
	res := Result{InRelationship: true, Client: matched}
	for _, rel := range e.Relationships {
		if rel.Name != matched {
			continue
		}
		if q := ParseStatus(rel.Status); q != Unknown {
			res.Status = q
			break
		}
	}
	return res
}

// MatchClient returns the first name in names that refers to client. The
// rules are tried in order over the whole list: exact, case-insensitive,
// containment either way, then per name a fuzzy ratio on normalized names
// and an abbreviation match. Blank names never match.
func MatchClient(client string, names []string, generic []string) (string, bool) {
	client = strings.TrimSpace(client)
	if client == "" {
		return "", false
	}

	rules := []func(string) bool{
		func(name string) bool { return name == client },
		func(name string) bool { return strings.EqualFold(name, client) },
		func(name string) bool { return strings.Contains(name, client) || strings.Contains(client, name) },
	}
	for _, rule := range rules {
		for _, name := range names {
			if strings.TrimSpace(name) != "" && rule(name) {
				return name, true
			}
		}
	}

	normClient := normalize.Company(client, generic)
	if normClient == "" {
		return "", false
	}
	for _, name := range names {
		normName := normalize.Company(name, generic)
		if normName == "" {
			continue
		}
		if similarity.Ratio(normClient, normName) >= constants.HiringClientFuzzyScore {
			return name, true
		}
		if Abbreviates(normClient, normName) {
			return name, true
		}
	}
	return "", false
}

// Abbreviates reports whether one normalized name is likely an abbreviation
// of the other. Initials are taken from words longer than two letters; a
// one-word name may also spell the initials of every word of the other
// ("adm" for "aeroports de montreal").
func Abbreviates(a, b string) bool {
	if acronym(a, b) || acronym(b, a) {
		return true
	}
	ia, ib := initials(a, 3), initials(b, 3)
	if len(ia) < constants.AbbreviationMinLength || len(ib) < constants.AbbreviationMinLength {
		return false
	}
	return ia == ib ||
		strings.Contains(collapse(b), ia) ||
		strings.Contains(collapse(a), ib)
}

// acronym reports whether the one-word name short spells the initials of
// the words of long.
func acronym(short, long string) bool {
	if strings.Contains(short, " ") || len(short) < constants.AbbreviationMinLength {
		return false
	}
	if !strings.Contains(long, " ") {
		return false
	}
	return short == initials(long, 1) || short == initials(long, 3)
}

// initials concatenates the first letter of every word of at least minLen
// runes.
func initials(name string, minLen int) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		if len(r) >= minLen {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
