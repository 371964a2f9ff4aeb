package normalize

import (
	"slices"
	"strings"
)

// streetTerms translates French street types, directions and unit words to
// English. Keys are compared after accents are stripped.
var streetTerms = map[string]string{
	"rue":         "street",
	"chemin":      "road",
	"route":       "road",
	"blvd":        "boulevard",
	"boul":        "boulevard",
	"terrasse":    "terrace",
	"ouest":       "west",
	"o":           "west",
	"est":         "east",
	"e":           "east",
	"nord":        "north",
	"n":           "north",
	"sud":         "south",
	"s":           "south",
	"appartement": "apartment",
	"app":         "apartment",
	"batiment":    "building",
	"immeuble":    "building",
	"etage":       "floor",
	"bureau":      "office",
	"bur":         "office",
	"ste":         "suite",
}

// suiteKeywords maps unit keywords to their canonical form. Canonical
// keywords are moved to the end of a normalized address.
var suiteKeywords = map[string]string{
	"suite":     "suite",
	"appt":      "suite",
	"apartment": "apartment",
	"office":    "office",
	"ofc":       "office",
	"room":      "room",
	"rm":        "room",
	"unit":      "unit",
	"lot":       "lot",
	"porte":     "door",
	"door":      "door",
	"floor":     "floor",
	"niveau":    "floor",
	"level":     "floor",
}

// fillerWords carry no location information once translated.
var fillerWords = map[string]bool{"building": true}

// Address canonicalizes a street address: accents and punctuation removed,
// French terms translated, duplicate tokens dropped and unit keywords moved
// to the end so they can be intersected independently.
func Address(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	addr = StripAccents(strings.ToLower(addr))

	var words, units []string
	for _, tok := range tokens(addr) {
		if en, ok := streetTerms[tok]; ok {
			tok = en
		}
		if fillerWords[tok] {
			continue
		}
		if canon, ok := suiteKeywords[tok]; ok {
			if !slices.Contains(units, canon) {
				units = append(units, canon)
			}
			continue
		}
		if !slices.Contains(words, tok) {
			words = append(words, tok)
		}
	}
	return strings.Join(append(words, units...), " ")
}

// SuiteTokens returns the canonical unit keywords of a normalized address.
func SuiteTokens(normalized string) []string {
	var out []string
	for _, tok := range strings.Fields(normalized) {
		if canon, ok := suiteKeywords[tok]; ok && canon == tok && !slices.Contains(out, tok) {
			out = append(out, tok)
		}
	}
	return out
}
