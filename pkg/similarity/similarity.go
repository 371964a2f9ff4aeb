// Package similarity scores how alike two normalized strings are on a 0-100
// scale. Score combines a character ratio with token-sort, token-set and
// partial ratios and keeps the best of them, so that names differing only by
// word order, extra words or truncation still score high.
package similarity

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Score returns the maximum of Ratio, TokenSortRatio, TokenSetRatio and
// PartialRatio. A string contained in the other scores 100. Two empty
// strings are identical; an empty string against a non-empty one scores 0.
func Score(a, b string) int {
	if a == "" || b == "" {
		if a == b {
			return 100
		}
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 100
	}
	best := Ratio(a, b)
	for _, fn := range []func(string, string) int{TokenSortRatio, TokenSetRatio, PartialRatio} {
		if best == 100 {
			break
		}
		best = max(best, fn(a, b))
	}
	return best
}

// Ratio is the normalized edit similarity of a and b:
// 100 * (1 - distance / longest length), rounded.
func Ratio(a, b string) int {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}

// TokenSortRatio compares a and b after sorting their tokens.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the shared tokens of a and b with each side's
// shared-plus-remaining tokens, so a name that is a token subset of the
// other scores 100.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for _, t := range ta {
		if slices.Contains(tb, t) {
			shared = append(shared, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if !slices.Contains(ta, t) {
			onlyB = append(onlyB, t)
		}
	}

	sect := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := Ratio(combinedA, combinedB)
	if sect != "" {
		best = max(best, Ratio(sect, combinedA), Ratio(sect, combinedB))
	}
	return best
}

// PartialRatio slides the shorter string over the longer one and returns the
// best Ratio of any equally long window.
func PartialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		if len(rb) == 0 {
			return 100
		}
		return 0
	}

	short := string(ra)
	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		best = max(best, Ratio(short, string(rb[i:i+len(ra)])))
		if best == 100 {
			break
		}
	}
	return best
}

// tokenSet returns the sorted, de-duplicated tokens of s.
func tokenSet(s string) []string {
	toks := tokens(s)
	slices.Sort(toks)
	return slices.Compact(toks)
}

func sortedTokens(s string) string {
	toks := tokens(s)
	slices.Sort(toks)
	return strings.Join(toks, " ")
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
