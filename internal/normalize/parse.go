package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// ErrMalformedRecord marks a raw row that cannot be normalized.
// Malformed rows are dropped and counted per reason; they never abort
// a batch.
var ErrMalformedRecord = errors.New("malformed record")

// roleAliases maps raw position strings (upper-cased) onto the fixed
// role set. Unknown strings are rejected, never guessed.
var roleAliases = map[string]domain.Role{
	"QB":   domain.RoleQB,
	"RB":   domain.RoleRB,
	"WR":   domain.RoleWR,
	"TE":   domain.RoleTE,
	"DEF":  domain.RoleDEF,
	"DST":  domain.RoleDEF,
	"D/ST": domain.RoleDEF,
}

// statusTokens are roster designations that mark a participant as not
// having played: injured reserve, physically unable, suspended, out,
// doubtful, questionable.
var statusTokens = map[string]struct{}{
	"IR":   {},
	"PUP":  {},
	"SUSP": {},
	"O":    {},
	"D":    {},
	"Q":    {},
	"OUT":  {},
	"DNP":  {},
}

// dashStats are the stat-line placeholders the source renders for rows
// without a played game.
var dashStats = map[string]struct{}{
	"-":      {},
	"--":     {},
	"\u2014": {},
}

// ParseRole maps a raw position string onto the fixed role set,
// case-insensitively. ok is false for unknown roles.
func ParseRole(s string) (domain.Role, bool) {
	role, ok := roleAliases[strings.ToUpper(strings.TrimSpace(s))]
	return role, ok
}

// ParseCost parses a currency-formatted salary string ("$24", "$1,150")
// into a non-negative number.
func ParseCost(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty cost", ErrMalformedRecord)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cost %q", ErrMalformedRecord, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative cost %q", ErrMalformedRecord, s)
	}
	return v, nil
}

// ParsePoints parses a signed numeric points string. ok is false when
// the string is blank or not numeric.
func ParsePoints(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseBaseline parses the season-average column. Returns nil when the
// value is blank or not numeric; a missing baseline is not an error.
func ParseBaseline(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// DidNotPlay reports whether the row explicitly marks the participant
// as not having played: a roster status token in the game context or
// stat line, or a dash-only stat line.
func DidNotPlay(row domain.RawRow) bool {
	if _, ok := dashStats[strings.TrimSpace(row.Stats)]; ok {
		return true
	}
	return hasStatusToken(row.Game) || hasStatusToken(row.Stats)
}

func hasStatusToken(s string) bool {
	for _, tok := range strings.Fields(strings.ToUpper(s)) {
		if _, ok := statusTokens[strings.Trim(tok, "()[]")]; ok {
			return true
		}
	}
	return false
}
