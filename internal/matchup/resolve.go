package matchup

import (
	"strings"
	"unicode"
)

// ResolveOpponent extracts the opposing team from a raw game context
// like "PHI@NYG", "Final PHI @ NYG 28-3" or "DAL vs WAS". ok is false
// when the context cannot be parsed or the record's own team does not
// appear in it.
func ResolveOpponent(gameContext, ownTeam string) (string, bool) {
	own := strings.ToUpper(strings.TrimSpace(ownTeam))
	if own == "" {
		return "", false
	}

	left, right, ok := splitSides(gameContext)
	if !ok {
		return "", false
	}
	a, okA := teamCode(left)
	b, okB := teamCode(right)
	if !okA || !okB {
		return "", false
	}

	switch own {
	case a:
		return b, true
	case b:
		return a, true
	default:
		return "", false
	}
}

// splitSides splits a game context on "@" or "vs" into away and home
// fragments.
func splitSides(s string) (string, string, bool) {
	if i := strings.Index(s, "@"); i >= 0 {
		return s[:i], s[i+1:], true
	}
	upper := strings.ToUpper(s)
	for _, sep := range []string{" VS. ", " VS "} {
		if i := strings.Index(upper, sep); i >= 0 {
			return s[:i], s[i+len(sep):], true
		}
	}
	return "", "", false
}

// skipTokens are 2-3 letter words that show up in game contexts but
// are never team codes: day abbreviations, kickoff fragments, clock
// states.
var skipTokens = map[string]struct{}{
	"VS": {}, "AT": {}, "OT": {}, "END": {}, "TBD": {},
	"AM": {}, "PM": {},
	"SUN": {}, "MON": {}, "TUE": {}, "WED": {}, "THU": {}, "FRI": {}, "SAT": {},
}

// teamCode picks the team abbreviation out of one side of a game
// context, skipping scores, kickoff times and status words.
func teamCode(side string) (string, bool) {
	for _, tok := range strings.Fields(strings.ToUpper(side)) {
		tok = strings.Trim(tok, "()[],.")
		if len(tok) < 2 || len(tok) > 3 {
			continue
		}
		if !alphaOnly(tok) {
			continue
		}
		if _, skip := skipTokens[tok]; skip {
			continue
		}
		return tok, true
	}
	return "", false
}

func alphaOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
