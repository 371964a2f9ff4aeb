// Package matching finds the registry entity an inbound contractor record
// refers to. A Generator scores every registry entity against a record and
// keeps plausible Candidates; Select then applies a tiered tie-break policy
// to pick at most one of them.
package matching

import (
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Candidate is a registry entity considered for one hiring-client record.
type Candidate struct {
	Entity *records.RegistryEntity

	// NameScore is the best company-name score over the entity's French,
	// English and former names.
	NameScore int

	// AddressScore is the score of the normalized street addresses.
	AddressScore int

	// BusinessScore breaks ties between otherwise similar candidates.
	BusinessScore float64

	// NameSubstring is set when one normalized name contains the other.
	NameSubstring bool

	// AddressMatch is set when AddressScore reaches the address threshold.
	AddressMatch bool

	ContactMatch bool
	PostalMatch  bool
	SuiteMatch   bool

	// DomainMatch is set when both contacts share a non-generic email domain.
	DomainMatch bool

	LocationBonus     int
	RelationshipCount int
	ModuleCount       int
}

// HasRelationship reports whether the entity works for any hiring client.
func (c Candidate) HasRelationship() bool { return c.RelationshipCount > 0 }

// EntityID returns the id of the candidate's entity.
func (c Candidate) EntityID() int64 {
	if c.Entity == nil {
		return 0
	}
	return c.Entity.ID
}

// AuditEntry records one entity that was close enough to be shown to a
// reviewer.
type AuditEntry struct {
	EntityID          int64
	Summary           string
	NameScore         int
	AddressScore      int
	ContactMatch      bool
	DomainMatch       bool
	RelationshipCount int
	Modules           []string
}

// NewAuditEntry describes c for the audit trail.
func NewAuditEntry(c Candidate) AuditEntry {
	return AuditEntry{
		EntityID:          c.Entity.ID,
		Summary:           c.Entity.Summary(),
		NameScore:         c.NameScore,
		AddressScore:      c.AddressScore,
		ContactMatch:      c.ContactMatch,
		DomainMatch:       c.DomainMatch,
		RelationshipCount: c.RelationshipCount,
		Modules:           c.Entity.Modules,
	}
}
