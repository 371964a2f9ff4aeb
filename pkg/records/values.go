package records

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
)

// SmartBool interprets a spreadsheet flag cell. Only true, =true, yes,
// vraie, =vraie and 1 (any case) are true.
func SmartBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "=true", "yes", "vraie", "=vraie", "1":
		return true
	}
	return false
}

// extensionMarkers are tried in order; the first found splits the number.
var extensionMarkers = []string{"ext", "x", "poste", ",", "p"}

// SplitPhone separates a free-text phone number into its digits and the
// digits of its extension.
func SplitPhone(raw string) (number, extension string) {
	lower := asciiLower(raw)
	for _, marker := range extensionMarkers {
		if i := strings.Index(lower, marker); i >= 0 {
			extension = raw[i+len(marker):]
			raw = raw[:i]
			break
		}
	}
	return digits(raw), digits(extension)
}

// asciiLower lowers A-Z only, so byte offsets match the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// assessmentLevels maps free-text assessment levels to their numeric tier.
var assessmentLevels = map[string]int{
	"gold":   2,
	"silver": 2,
	"bronze": 1,
	"level3": 2,
	"level2": 2,
	"level1": 1,
	"3":      2,
	"2":      2,
	"1":      1,
}

// ParseAssessmentLevel returns 2 for gold/silver/level 2-3, 1 for
// bronze/level 1 and 0 for anything else.
func ParseAssessmentLevel(s string) int {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	return assessmentLevels[key]
}

// ParseExpirationDate parses a registry expiration date, trying DD/MM/YY and
// then DD/MM/YYYY. An empty cell yields ok=false and no error. An unparsable
// cell yields ok=false and a *errors.DataWarning; callers treat the date as absent.
func ParseExpirationDate(s string) (t time.Time, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range []string{constants.ExpirationDateShort, constants.ExpirationDateLong} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, errors.NewDataWarning(-1, "cbx_expiration_date", s, "could not parse expiration date")
}

// ParseAmount parses a price cell. An empty cell is zero.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.NewReplacer("$", "", " ", "", " ", "").Replace(s))
	if s == "" {
		return 0, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// ParseID parses a registry id. Spreadsheet exports sometimes render ids as
// floats ("1234.0"), which are accepted when integral.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, errors.NewValidationError("id", s, "not an integer id")
	}
	return int64(f), nil
}
