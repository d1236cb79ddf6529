package matchup

import (
	"errors"
	"testing"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

func validEntries() []domain.OpponentStrengthEntry {
	return []domain.OpponentStrengthEntry{
		{Team: "PHI", Role: domain.RoleQB, Rank: 1, PointsAllowed: 12.3},
		{Team: "NYG", Role: domain.RoleQB, Rank: 2, PointsAllowed: 16.8},
		{Team: "DAL", Role: domain.RoleQB, Rank: 3, PointsAllowed: 21.4},
		{Team: "PHI", Role: domain.RoleRB, Rank: 2, PointsAllowed: 19.1},
		{Team: "NYG", Role: domain.RoleRB, Rank: 3, PointsAllowed: 24.6},
		{Team: "DAL", Role: domain.RoleRB, Rank: 1, PointsAllowed: 15.0},
	}
}

func TestNewTable(t *testing.T) {
	table, err := NewTable(validEntries())
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if table.Len() != 6 {
		t.Errorf("expected 6 entries, got %d", table.Len())
	}
	if table.Teams(domain.RoleQB) != 3 {
		t.Errorf("expected 3 QB teams, got %d", table.Teams(domain.RoleQB))
	}
	if table.Teams(domain.RoleWR) != 0 {
		t.Errorf("expected 0 WR teams, got %d", table.Teams(domain.RoleWR))
	}

	e, ok := table.Lookup("phi", domain.RoleQB)
	if !ok {
		t.Fatal("lookup by lower-case team should hit")
	}
	if e.Rank != 1 || e.PointsAllowed != 12.3 {
		t.Errorf("unexpected entry %+v", e)
	}

	if _, ok := table.Lookup("SEA", domain.RoleQB); ok {
		t.Error("lookup for unranked team should miss")
	}
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	entries := validEntries()
	entries = append(entries, domain.OpponentStrengthEntry{Team: "phi", Role: domain.RoleQB, Rank: 4})

	if _, err := NewTable(entries); err == nil {
		t.Fatal("expected error for duplicate team/role")
	} else if !errors.Is(err, ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}

func TestNewTableRejectsBadRanks(t *testing.T) {
	cases := []struct {
		name    string
		entries []domain.OpponentStrengthEntry
	}{
		{
			"gap in ranks",
			[]domain.OpponentStrengthEntry{
				{Team: "PHI", Role: domain.RoleQB, Rank: 1},
				{Team: "NYG", Role: domain.RoleQB, Rank: 3},
			},
		},
		{
			"repeated rank",
			[]domain.OpponentStrengthEntry{
				{Team: "PHI", Role: domain.RoleQB, Rank: 1},
				{Team: "NYG", Role: domain.RoleQB, Rank: 1},
			},
		},
		{
			"zero rank",
			[]domain.OpponentStrengthEntry{
				{Team: "PHI", Role: domain.RoleQB, Rank: 0},
			},
		},
	}
	for _, c := range cases {
		if _, err := NewTable(c.entries); err == nil {
			t.Errorf("%s: expected error", c.name)
		} else if !errors.Is(err, ErrInvalidTable) {
			t.Errorf("%s: expected ErrInvalidTable, got %v", c.name, err)
		}
	}
}

func TestNewTableRejectsUnknownRole(t *testing.T) {
	entries := []domain.OpponentStrengthEntry{
		{Team: "PHI", Role: "K", Rank: 1},
	}
	if _, err := NewTable(entries); !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}
