package matchup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// ErrInvalidTable marks a strength table that is not a clean rank
// permutation per role.
var ErrInvalidTable = errors.New("invalid strength table")

// Table is an in-memory opponent strength lookup built from validated
// strength entries. Within each role the ranks form a permutation of
// 1..N where rank 1 is the toughest defense.
type Table struct {
	entries map[string]domain.OpponentStrengthEntry
	teams   map[domain.Role]int
}

// NewTable validates entries and builds the lookup. Each (team, role)
// pair may appear once, and the ranks within each role must cover
// 1..N exactly.
func NewTable(entries []domain.OpponentStrengthEntry) (*Table, error) {
	t := &Table{
		entries: make(map[string]domain.OpponentStrengthEntry, len(entries)),
		teams:   make(map[domain.Role]int),
	}
	ranksByRole := make(map[domain.Role][]int)

	for _, e := range entries {
		if !domain.ValidRole(e.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidTable, e.Role)
		}
		team := strings.ToUpper(strings.TrimSpace(e.Team))
		if team == "" {
			return nil, fmt.Errorf("%w: empty team", ErrInvalidTable)
		}
		key := tableKey(team, e.Role)
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("%w: duplicate entry for %s/%s", ErrInvalidTable, team, e.Role)
		}
		e.Team = team
		t.entries[key] = e
		ranksByRole[e.Role] = append(ranksByRole[e.Role], e.Rank)
	}

	for role, ranks := range ranksByRole {
		sort.Ints(ranks)
		for i, r := range ranks {
			if r != i+1 {
				return nil, fmt.Errorf("%w: role %s ranks are not a permutation of 1..%d",
					ErrInvalidTable, role, len(ranks))
			}
		}
		t.teams[role] = len(ranks)
	}
	return t, nil
}

// Lookup returns the strength entry for a team and role. ok is false
// when the table has no entry for the pair.
func (t *Table) Lookup(team string, role domain.Role) (domain.OpponentStrengthEntry, bool) {
	e, ok := t.entries[tableKey(strings.ToUpper(strings.TrimSpace(team)), role)]
	return e, ok
}

// Teams returns how many teams the table ranks for a role.
func (t *Table) Teams(role domain.Role) int {
	return t.teams[role]
}

// Len returns the total number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

func tableKey(team string, role domain.Role) string {
	return team + "|" + string(role)
}
