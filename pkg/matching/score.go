package matching

import (
	"strings"

	"github.com/agentstation/cbxmatch/pkg/config"
	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/normalize"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// BusinessScore weighs the business signals of a candidate. It only orders
// candidates that already passed the name threshold.
func BusinessScore(w config.Weights, c Candidate) float64 {
	score := float64(c.ModuleCount)*w.Module +
		min(float64(c.RelationshipCount)*w.Relationship, w.RelationshipCap) +
		float64(c.LocationBonus)*w.Location
	if c.ContactMatch {
		score += w.Contact
	}
	if c.PostalMatch {
		score += w.Postal
	}
	if c.SuiteMatch {
		score += w.Suite
	}
	return score
}

// LocationBonus rates how close two records are: same normalized street
// address, then same city, state or country, and a penalty when both give
// different countries. The first outcome that applies wins. Records without
// a street address get no bonus.
func LocationBonus(hc records.HiringClientRecord, e records.RegistryEntity) int {
	if strings.TrimSpace(hc.Street) == "" || strings.TrimSpace(e.Address) == "" {
		return 0
	}
	switch {
	case normalize.Address(hc.Street) == normalize.Address(e.Address):
		return constants.LocationSameAddress
	case sameText(hc.City, e.City):
		return constants.LocationSameCity
	case sameText(hc.State, e.State):
		return constants.LocationSameState
	case sameText(hc.Country, e.Country):
		return constants.LocationSameCountry
	case strings.TrimSpace(hc.Country) != "" && strings.TrimSpace(e.Country) != "":
		return constants.LocationCountryMismatch
	}
	return 0
}

// sameText compares two non-empty cells case-insensitively.
func sameText(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// contactMatch requires the same email and contact name on both sides.
func contactMatch(hc records.HiringClientRecord, e records.RegistryEntity) bool {
	return sameText(hc.Email, e.Email) &&
		strings.EqualFold(strings.TrimSpace(hc.FirstName), strings.TrimSpace(e.FirstName)) &&
		strings.EqualFold(strings.TrimSpace(hc.LastName), strings.TrimSpace(e.LastName))
}
