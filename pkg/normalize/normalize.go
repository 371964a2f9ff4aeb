// Package normalize canonicalizes company names, street addresses and postal
// codes so that records typed by different people compare equal.
//
// Every function is pure and total: the empty string maps to the empty string
// and unknown tokens pass through unchanged.
package normalize

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var parenthetical = regexp.MustCompile(`\([^()]*\)`)

// legalSuffixes are always removed from company names, on top of the caller's generic words.
var legalSuffixes = []string{
	"inc", "ltd", "ltee", "co", "corp", "corporation", "company", "llc",
	"sarl", "sa", "plc", "enr", "industriel", "industriels",
	"service", "services", "solutions", "systems", "technologies", "installations",
}

// StripAccents decomposes s (NFKD) and drops combining marks.
func StripAccents(s string) string {
	// Transformers carry state, so each call builds its own chain.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NFC returns s in canonical composed form.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Company canonicalizes a company name. Generic words are removed on word
// boundaries; token order is preserved and repeated tokens are kept once.
func Company(name string, generic []string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(StripAccents(strings.ToLower(name)))
	name = parenthetical.ReplaceAllString(name, " ")

	drop := make(map[string]struct{}, len(generic)+len(legalSuffixes))
	for _, w := range legalSuffixes {
		drop[w] = struct{}{}
	}
	var phrases []string
	for _, w := range generic {
		switch toks := tokens(StripAccents(strings.ToLower(w))); len(toks) {
		case 0:
		case 1:
			drop[toks[0]] = struct{}{}
		default:
			phrases = append(phrases, " "+strings.Join(toks, " ")+" ")
		}
	}

	toks := tokens(name)
	for {
		next := cleanTokens(toks, drop, phrases)
		if len(next) == len(toks) {
			return strings.Join(next, " ")
		}
		toks = next
	}
}

// cleanTokens removes generic phrases and words and keeps the first
// occurrence of each remaining token.
func cleanTokens(toks []string, drop map[string]struct{}, phrases []string) []string {
	if len(phrases) > 0 {
		joined := " " + strings.Join(toks, " ") + " "
		for _, p := range phrases {
			for strings.Contains(joined, p) {
				joined = strings.ReplaceAll(joined, p, " ")
			}
		}
		toks = strings.Fields(joined)
	}

	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if _, ok := drop[tok]; ok {
			continue
		}
		if !slices.Contains(out, tok) {
			out = append(out, tok)
		}
	}
	return out
}

// PostalCode upper-cases a postal or ZIP code and keeps only A-Z and 0-9.
func PostalCode(code string) string {
	code = StripAccents(strings.ToUpper(strings.TrimSpace(code)))
	var b strings.Builder
	for _, r := range code {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tokens splits s on every rune that is neither a letter nor a digit.
func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
