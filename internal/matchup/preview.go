package matchup

import (
	"fmt"
	"strings"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// GamePair is one scheduled game, away team at home team.
type GamePair struct {
	Away string
	Home string
}

// ParseGamePairs parses a comma-separated schedule like
// "PHI@NYG,DAL@CAR" into game pairs.
func ParseGamePairs(s string) ([]GamePair, error) {
	var pairs []GamePair
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		away, home, ok := strings.Cut(part, "@")
		if !ok {
			return nil, fmt.Errorf("game %q is not in AWAY@HOME form", part)
		}
		away = strings.ToUpper(strings.TrimSpace(away))
		home = strings.ToUpper(strings.TrimSpace(home))
		if away == "" || home == "" {
			return nil, fmt.Errorf("game %q is missing a team", part)
		}
		pairs = append(pairs, GamePair{Away: away, Home: home})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no games in %q", s)
	}
	return pairs, nil
}

// PreviewRow is one team-role cell of an upcoming-week preview.
type PreviewRow struct {
	Game          string   // "AWY @ HOM"
	Team          string   // team whose players this row rates
	Opponent      string   // defense they face
	Role          domain.Role
	OpponentRank  int      // opponent defensive rank for the role
	PointsAllowed float64  // opponent points allowed per game for the role
	Multiplier    *float64 // nil when the matchup is unavailable
	Rating        string
	Unavailable   bool
}

// BuildPreview rates both sides of each scheduled game for every role.
// Matchups missing from the table are included with the unavailable
// flag so gaps are visible in the output.
func BuildPreview(table *Table, curve Curve, pairs []GamePair) []PreviewRow {
	rows := make([]PreviewRow, 0, len(pairs)*2*len(domain.AllRoles()))
	for _, pair := range pairs {
		game := fmt.Sprintf("%s @ %s", pair.Away, pair.Home)
		sides := [2][2]string{{pair.Away, pair.Home}, {pair.Home, pair.Away}}
		for _, side := range sides {
			team, opponent := side[0], side[1]
			for _, role := range domain.AllRoles() {
				row := PreviewRow{Game: game, Team: team, Opponent: opponent, Role: role}
				entry, ok := table.Lookup(opponent, role)
				if !ok {
					row.Unavailable = true
					rows = append(rows, row)
					continue
				}
				mult, err := curve.Multiplier(entry.Rank, table.Teams(role))
				if err != nil {
					row.Unavailable = true
					rows = append(rows, row)
					continue
				}
				row.OpponentRank = entry.Rank
				row.PointsAllowed = entry.PointsAllowed
				row.Multiplier = &mult
				row.Rating = RatingFor(mult)
				rows = append(rows, row)
			}
		}
	}
	return rows
}
