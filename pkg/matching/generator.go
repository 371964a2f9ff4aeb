package matching

import (
	"context"
	"slices"
	"strings"

	"github.com/agentstation/cbxmatch/pkg/config"
	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/logging"
	"github.com/agentstation/cbxmatch/pkg/normalize"
	"github.com/agentstation/cbxmatch/pkg/records"
	"github.com/agentstation/cbxmatch/pkg/similarity"
)

// placeholderNames are registry names too vague to show in an audit trail.
var placeholderNames = []string{"main department", "ontario", "montreal", "ver"}

// Generator produces candidates for hiring-client records against a fixed
// registry. It normalizes the registry once; it is safe for concurrent use.
type Generator struct {
	cfg      config.Config
	entities []prepared
	byID     map[int64]int
}

// prepared caches the normalized fields of one registry entity.
type prepared struct {
	entity  *records.RegistryEntity
	names   []string
	address string
	postal  string
	suite   []string
	domain  string
}

// query caches the normalized fields of one hiring-client record.
type query struct {
	record  records.HiringClientRecord
	company string
	address string
	postal  string
	suite   []string
	domain  string
}

// NewGenerator prepares registry for matching. The registry must not be
// modified while the Generator is in use.
func NewGenerator(cfg config.Config, registry []records.RegistryEntity) *Generator {
	g := &Generator{
		cfg:      cfg,
		entities: make([]prepared, len(registry)),
		byID:     make(map[int64]int, len(registry)),
	}
	for i := range registry {
		e := &registry[i]
		p := prepared{
			entity:  e,
			address: normalize.Address(e.Address),
			postal:  normalize.PostalCode(e.PostalCode),
		}
		for _, name := range []string{e.NameEN, e.NameFR, e.OldNames} {
			if n := normalize.Company(name, cfg.GenericNameWords); n != "" {
				p.names = append(p.names, n)
			}
		}
		p.suite = normalize.SuiteTokens(p.address)
		if d := normalize.EmailDomain(e.Email); d != "" {
			p.domain = normalize.RegistrableDomain(d)
		}
		g.entities[i] = p
		if _, dup := g.byID[e.ID]; !dup {
			g.byID[e.ID] = i
		}
	}
	return g
}

// Len returns the number of registry entities.
func (g *Generator) Len() int { return len(g.entities) }

// Lookup returns the entity with the given id.
func (g *Generator) Lookup(id int64) (*records.RegistryEntity, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.entities[i].entity, true
}

func (g *Generator) newQuery(hc records.HiringClientRecord) query {
	q := query{
		record:  hc,
		company: normalize.Company(hc.Company, g.cfg.GenericNameWords),
		address: normalize.Address(hc.Street),
		postal:  normalize.PostalCode(hc.PostalCode),
	}
	q.suite = normalize.SuiteTokens(q.address)
	if !g.cfg.IsGenericDomain(hc.Email) {
		q.domain = normalize.RegistrableDomain(normalize.EmailDomain(hc.Email))
	}
	return q
}

// Candidates returns, in registry order, every entity whose company name
// reaches the company threshold or contains (or is contained in) the
// record's name, with the audit entries of those worth a reviewer's look.
func (g *Generator) Candidates(hc records.HiringClientRecord) ([]Candidate, []AuditEntry) {
	q := g.newQuery(hc)
	if q.company == "" {
		return nil, nil
	}

	var candidates []Candidate
	var audit []AuditEntry
	for i := range g.entities {
		p := &g.entities[i]
		score, substring := g.nameScore(q.company, p.names)
		if score < g.cfg.CompanyThreshold && !substring {
			continue
		}
		c := g.evaluate(q, p)
		c.NameScore, c.NameSubstring = score, substring
		candidates = append(candidates, c)
		if score >= constants.AuditNameScore && meaningful(p.entity) {
			audit = append(audit, NewAuditEntry(c))
		}
	}
	return candidates, audit
}

// nameScore returns the best score of company over names and whether any
// name contains, or is contained in, company.
func (g *Generator) nameScore(company string, names []string) (int, bool) {
	best, substring := 0, false
	for _, name := range names {
		best = max(best, similarity.Score(company, name))
		if strings.Contains(name, company) || strings.Contains(company, name) {
			substring = true
		}
	}
	return best, substring
}

// evaluate computes every signal but the name score.
func (g *Generator) evaluate(q query, p *prepared) Candidate {
	e := p.entity
	c := Candidate{
		Entity:            e,
		AddressScore:      similarity.Score(q.address, p.address),
		ContactMatch:      contactMatch(q.record, *e),
		PostalMatch:       q.postal != "" && q.postal == p.postal,
		SuiteMatch:        intersects(q.suite, p.suite),
		DomainMatch:       q.domain != "" && q.domain == p.domain,
		LocationBonus:     LocationBonus(q.record, *e),
		RelationshipCount: e.RelationshipCount(),
		ModuleCount:       e.ModuleCount(),
	}
	c.AddressMatch = c.AddressScore >= g.cfg.AddressThreshold
	c.BusinessScore = BusinessScore(g.cfg.Weights, c)
	return c
}

// Force resolves the record's forced registry id. ok is false when the
// record has no forced id. A forced id that does not resolve yields NoMatch.
// A resolved entity gets perfect scores and keeps the record's own
// ambiguous flag.
func (g *Generator) Force(hc records.HiringClientRecord) (d Decision, ok bool) {
	raw := strings.TrimSpace(hc.ForceCBXID)
	if raw == "" {
		return Decision{}, false
	}
	id, err := records.ParseID(raw)
	if err != nil {
		return noMatch("forced id " + raw + " is not a registry id"), true
	}
	i, found := g.byID[id]
	if !found {
		return noMatch("forced id " + raw + " not found in registry"), true
	}

	c := g.evaluate(g.newQuery(hc), &g.entities[i])
	c.NameScore = constants.ForcedMatchScore
	c.AddressScore = constants.ForcedMatchScore
	c.AddressMatch = true
	return Decision{
		Kind:      ForcedMatch,
		Tier:      TierForced,
		Candidate: c,
		Ambiguous: hc.MarkedAmbiguous(),
		Reason:    "forced to " + raw,
	}, true
}

// Result is the matching outcome of one record.
type Result struct {
	Decision   Decision
	Candidates []Candidate
	Audit      []AuditEntry
}

// Match generates candidates for hc and selects among them, unless the
// record forces a registry id.
func (g *Generator) Match(ctx context.Context, hc records.HiringClientRecord) Result {
	log := logging.FromContext(ctx)
	candidates, audit := g.Candidates(hc)
	res := Result{Candidates: candidates, Audit: audit}

	if forced, ok := g.Force(hc); ok {
		if !forced.Matched() {
			log.Warn().Str("force_cbx_id", hc.ForceCBXID).Msg(forced.Reason)
		}
		res.Decision = forced
		return res
	}

	res.Decision = Select(g.cfg, candidates)
	if res.Decision.Matched() {
		log.Debug().
			Int64("cbx_id", res.Decision.Candidate.EntityID()).
			Stringer("tier", res.Decision.Tier).
			Int("ratio_company", res.Decision.Candidate.NameScore).
			Int("ratio_address", res.Decision.Candidate.AddressScore).
			Bool("ambiguous", res.Decision.Ambiguous).
			Int("candidates", len(candidates)).
			Msg("Selected registry entity")
	} else {
		log.Debug().Int("candidates", len(candidates)).Msg(res.Decision.Reason)
	}
	return res
}

// meaningful reports whether an entity carries enough data to be audited:
// a real company name, or at least an address or contact.
func meaningful(e *records.RegistryEntity) bool {
	name := strings.TrimSpace(e.NameEN)
	if name == "" {
		name = strings.TrimSpace(e.NameFR)
	}
	if len([]rune(name)) >= constants.MinMeaningfulNameLength && !slices.Contains(placeholderNames, strings.ToLower(name)) {
		return true
	}
	return e.Address != "" || e.Email != "" || e.FirstName != ""
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
