package pipeline

import (
	"context"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/idhash"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
)

// FixtureWeek is the week the raw row fixtures belong to.
const FixtureWeek = 6

const (
	slateEarly = "sunday-early"
	slateLate  = "sunday-late"
)

// LoadFixtures populates the stores with demonstration data: two
// weeks of canonical records for the value study plus a full opponent
// strength table. Raw rows for a weekly run come from FixtureRawRows.
func LoadFixtures(ctx context.Context, records storage.CanonicalRecordStore, strength storage.StrengthEntryStore) error {
	if err := records.InsertBulk(ctx, FixtureCanonicalRecords()); err != nil {
		return err
	}
	return strength.InsertBulk(ctx, FixtureStrengthEntries())
}

func row(player, position, team, game, stats, salary, fppg, points, slate string) domain.RawRow {
	return domain.RawRow{
		Player:   player,
		Position: position,
		Team:     team,
		Game:     game,
		Stats:    stats,
		Salary:   salary,
		FPPG:     fppg,
		Points:   points,
		Slate:    slate,
		Week:     FixtureWeek,
		Day:      "Sunday",
	}
}

// FixtureRawRows returns one week of scraped rows as two overlapping
// slate views. The batch carries two duplicates (one with a cost
// conflict), one sat-out participant and three malformed rows, so a
// fixture run exercises every counter in the summary.
func FixtureRawRows() []domain.RawRow {
	return []domain.RawRow{
		// Early view
		row("Jalen Hurts", "QB", "PHI", "PHI @ NYG", "280 pass yds, 2 TD", "$34", "21.5", "24.6", slateEarly),
		row("Dak Prescott", "QB", "DAL", "DAL @ WAS", "310 pass yds, 3 TD", "$32", "19.8", "26.1", slateEarly),
		row("Jayden Daniels", "QB", "WAS", "DAL @ WAS", "255 pass yds, 2 TD", "$31", "19.2", "22.7", slateEarly),
		row("Russell Wilson", "QB", "NYG", "PHI @ NYG", "190 pass yds, 1 TD", "$25", "14.1", "11.3", slateEarly),
		row("Saquon Barkley", "RB", "PHI", "PHI @ NYG", "112 rush yds, 1 TD", "$33", "20.3", "19.7", slateEarly),
		row("Tony Pollard", "RB", "DAL", "DAL @ WAS", "85 rush yds", "$26", "14.6", "12.3", slateEarly),
		row("Brian Robinson", "RB", "WAS", "DAL @ WAS", "64 rush yds", "$22", "11.8", "8.9", slateEarly),
		row("A.J. Brown", "WR", "PHI", "PHI @ NYG", "6 rec, 95 yds, 1 TD", "$31", "18.7", "21.5", slateEarly),
		row("CeeDee Lamb", "WR", "DAL", "DAL @ WAS", "9 rec, 118 yds, 1 TD", "$33", "20.1", "24.8", slateEarly),
		row("Terry McLaurin", "WR", "WAS", "DAL @ WAS", "4 rec, 61 yds", "$24", "13.2", "10.1", slateEarly),
		row("Malik Nabers", "WR", "NYG", "PHI @ NYG", "8 rec, 88 yds", "$26", "15.1", "15.8", slateEarly),
		row("Dallas Goedert", "TE", "PHI", "PHI @ NYG", "5 rec, 58 yds", "$22", "11.9", "10.8", slateEarly),
		row("Jake Ferguson", "TE", "DAL", "DAL @ WAS", "3 rec, 34 yds", "$19", "9.4", "6.4", slateEarly),
		row("Eagles", "DEF", "PHI", "PHI @ NYG", "3 sacks, 2 INT", "$16", "8.2", "12.0", slateEarly),
		row("Cowboys", "DEF", "DAL", "DAL @ WAS", "2 sacks, 1 INT", "$15", "7.6", "8.0", slateEarly),
		// Malformed: unranked position, unparseable cost, blank score
		// without a sat-out marker.
		row("Jake Elliott", "K", "PHI", "PHI @ NYG", "3 FG", "$12", "8.1", "9.0", slateEarly),
		row("Jaylin Lane", "WR", "WAS", "DAL @ WAS", "2 rec, 18 yds", "N/A", "5.2", "3.1", slateEarly),
		row("Jahan Dotson", "WR", "PHI", "PHI @ NYG", "", "$18", "8.8", "", slateEarly),

		// Late view, overlapping the early one
		row("Brock Purdy", "QB", "SF", "SF @ SEA", "265 pass yds, 2 TD", "$30", "18.9", "21.4", slateLate),
		row("Tua Tagovailoa", "QB", "MIA", "MIA @ BUF", "240 pass yds, 1 TD", "$28", "17.2", "14.8", slateLate),
		// Duplicate of the early Barkley row with a stale cost
		row("Saquon Barkley", "RB", "PHI", "PHI @ NYG", "112 rush yds, 1 TD", "$32", "20.3", "19.7", slateLate),
		row("Christian McCaffrey", "RB", "SF", "SF @ SEA", "131 rush yds, 2 TD", "$36", "23.4", "28.9", slateLate),
		row("De'Von Achane", "RB", "MIA", "MIA @ BUF", "98 rush yds, 1 TD", "$29", "17.9", "17.2", slateLate),
		row("James Cook", "RB", "BUF", "MIA @ BUF", "77 rush yds, 1 TD", "$27", "15.3", "14.1", slateLate),
		// Exact duplicate of the early Brown row
		row("A.J. Brown", "WR", "PHI", "PHI @ NYG", "6 rec, 95 yds, 1 TD", "$31", "18.7", "21.5", slateLate),
		row("Deebo Samuel", "WR", "SF", "SF @ SEA", "5 rec, 72 yds", "$27", "15.8", "12.2", slateLate),
		row("DK Metcalf", "WR", "SEA", "SF @ SEA", "7 rec, 103 yds, 1 TD", "$28", "16.4", "20.3", slateLate),
		// Sat out: dash stats, status token, blank score
		row("Tyreek Hill", "WR", "MIA", "MIA @ BUF (Q)", "-", "$35", "22.6", "", slateLate),
		row("George Kittle", "TE", "SF", "SF @ SEA", "6 rec, 81 yds, 1 TD", "$25", "14.2", "20.1", slateLate),
		row("Dalton Kincaid", "TE", "BUF", "MIA @ BUF", "4 rec, 39 yds", "$20", "10.3", "7.9", slateLate),
		row("49ers", "DEF", "SF", "SF @ SEA", "4 sacks", "$17", "8.9", "9.0", slateLate),
		row("Bills", "DEF", "BUF", "MIA @ BUF", "1 sack, 1 INT", "$14", "6.8", "5.0", slateLate),
	}
}

func entry(team string, role domain.Role, rank int, allowed float64) *domain.OpponentStrengthEntry {
	return &domain.OpponentStrengthEntry{Team: team, Role: role, Rank: rank, PointsAllowed: allowed}
}

// FixtureStrengthEntries returns a full strength table for the eight
// fixture teams: a 1..8 rank permutation per role.
func FixtureStrengthEntries() []*domain.OpponentStrengthEntry {
	return []*domain.OpponentStrengthEntry{
		entry("SF", domain.RoleQB, 1, 13.8),
		entry("PHI", domain.RoleQB, 2, 15.1),
		entry("BUF", domain.RoleQB, 3, 16.4),
		entry("DAL", domain.RoleQB, 4, 17.9),
		entry("MIA", domain.RoleQB, 5, 19.2),
		entry("NYG", domain.RoleQB, 6, 20.8),
		entry("SEA", domain.RoleQB, 7, 22.5),
		entry("WAS", domain.RoleQB, 8, 24.6),

		entry("PHI", domain.RoleRB, 1, 16.2),
		entry("BUF", domain.RoleRB, 2, 18.1),
		entry("SF", domain.RoleRB, 3, 19.5),
		entry("WAS", domain.RoleRB, 4, 21.0),
		entry("DAL", domain.RoleRB, 5, 22.4),
		entry("SEA", domain.RoleRB, 6, 24.3),
		entry("MIA", domain.RoleRB, 7, 26.1),
		entry("NYG", domain.RoleRB, 8, 28.7),

		entry("BUF", domain.RoleWR, 1, 24.9),
		entry("SF", domain.RoleWR, 2, 27.3),
		entry("PHI", domain.RoleWR, 3, 29.6),
		entry("MIA", domain.RoleWR, 4, 31.2),
		entry("SEA", domain.RoleWR, 5, 33.8),
		entry("DAL", domain.RoleWR, 6, 35.4),
		entry("NYG", domain.RoleWR, 7, 38.1),
		entry("WAS", domain.RoleWR, 8, 41.5),

		entry("SF", domain.RoleTE, 1, 7.8),
		entry("DAL", domain.RoleTE, 2, 8.9),
		entry("PHI", domain.RoleTE, 3, 10.2),
		entry("NYG", domain.RoleTE, 4, 11.6),
		entry("BUF", domain.RoleTE, 5, 12.4),
		entry("WAS", domain.RoleTE, 6, 13.9),
		entry("MIA", domain.RoleTE, 7, 15.3),
		entry("SEA", domain.RoleTE, 8, 16.8),

		entry("PHI", domain.RoleDEF, 1, 14.2),
		entry("SF", domain.RoleDEF, 2, 15.8),
		entry("BUF", domain.RoleDEF, 3, 17.1),
		entry("DAL", domain.RoleDEF, 4, 18.6),
		entry("SEA", domain.RoleDEF, 5, 20.3),
		entry("MIA", domain.RoleDEF, 6, 21.9),
		entry("NYG", domain.RoleDEF, 7, 23.4),
		entry("WAS", domain.RoleDEF, 8, 26.0),
	}
}

func record(name string, role domain.Role, team string, cost, points float64, week int) *domain.CanonicalRecord {
	return &domain.CanonicalRecord{
		RecordID:     idhash.ComputeRecordID(name, role, week),
		Name:         name,
		Role:         role,
		Team:         team,
		Cost:         cost,
		Points:       points,
		SourceSlate:  slateEarly,
		Week:         week,
		Active:       true,
		Observations: 1,
	}
}

// FixtureCanonicalRecords returns two earlier weeks of reconciled
// records for the value study. The weeks deliberately precede
// FixtureWeek so a fixture weekly run never collides with them.
func FixtureCanonicalRecords() []*domain.CanonicalRecord {
	return []*domain.CanonicalRecord{
		// Week 4
		record("Jalen Hurts", domain.RoleQB, "PHI", 33, 22.1, 4),
		record("Dak Prescott", domain.RoleQB, "DAL", 31, 18.4, 4),
		record("Brock Purdy", domain.RoleQB, "SF", 29, 19.6, 4),
		record("Tua Tagovailoa", domain.RoleQB, "MIA", 28, 12.9, 4),
		record("Saquon Barkley", domain.RoleRB, "PHI", 32, 21.4, 4),
		record("Christian McCaffrey", domain.RoleRB, "SF", 35, 24.6, 4),
		record("Tony Pollard", domain.RoleRB, "DAL", 25, 10.8, 4),
		record("De'Von Achane", domain.RoleRB, "MIA", 28, 16.3, 4),
		record("James Cook", domain.RoleRB, "BUF", 26, 13.5, 4),
		record("A.J. Brown", domain.RoleWR, "PHI", 30, 17.8, 4),
		record("CeeDee Lamb", domain.RoleWR, "DAL", 32, 21.9, 4),
		record("Tyreek Hill", domain.RoleWR, "MIA", 36, 25.4, 4),
		record("DK Metcalf", domain.RoleWR, "SEA", 27, 14.2, 4),
		record("Deebo Samuel", domain.RoleWR, "SF", 26, 11.7, 4),
		record("Terry McLaurin", domain.RoleWR, "WAS", 23, 9.4, 4),
		record("Dallas Goedert", domain.RoleTE, "PHI", 21, 9.8, 4),
		record("George Kittle", domain.RoleTE, "SF", 24, 15.2, 4),
		record("Jake Ferguson", domain.RoleTE, "DAL", 18, 5.9, 4),
		record("Dalton Kincaid", domain.RoleTE, "BUF", 19, 8.6, 4),
		record("Eagles", domain.RoleDEF, "PHI", 15, 9.0, 4),
		record("49ers", domain.RoleDEF, "SF", 16, 11.0, 4),
		record("Bills", domain.RoleDEF, "BUF", 14, 6.0, 4),

		// Week 5
		record("Jalen Hurts", domain.RoleQB, "PHI", 34, 26.3, 5),
		record("Dak Prescott", domain.RoleQB, "DAL", 32, 20.7, 5),
		record("Brock Purdy", domain.RoleQB, "SF", 30, 17.2, 5),
		record("Tua Tagovailoa", domain.RoleQB, "MIA", 27, 15.6, 5),
		record("Saquon Barkley", domain.RoleRB, "PHI", 33, 18.9, 5),
		record("Christian McCaffrey", domain.RoleRB, "SF", 36, 27.1, 5),
		record("Tony Pollard", domain.RoleRB, "DAL", 26, 13.4, 5),
		record("De'Von Achane", domain.RoleRB, "MIA", 29, 19.8, 5),
		record("James Cook", domain.RoleRB, "BUF", 27, 11.2, 5),
		record("A.J. Brown", domain.RoleWR, "PHI", 31, 20.6, 5),
		record("CeeDee Lamb", domain.RoleWR, "DAL", 33, 23.4, 5),
		record("Tyreek Hill", domain.RoleWR, "MIA", 35, 21.8, 5),
		record("DK Metcalf", domain.RoleWR, "SEA", 28, 17.5, 5),
		record("Deebo Samuel", domain.RoleWR, "SF", 27, 13.9, 5),
		record("Terry McLaurin", domain.RoleWR, "WAS", 24, 11.3, 5),
		record("Dallas Goedert", domain.RoleTE, "PHI", 22, 11.4, 5),
		record("George Kittle", domain.RoleTE, "SF", 25, 18.7, 5),
		record("Jake Ferguson", domain.RoleTE, "DAL", 19, 7.3, 5),
		record("Dalton Kincaid", domain.RoleTE, "BUF", 20, 9.1, 5),
		record("Eagles", domain.RoleDEF, "PHI", 16, 12.0, 5),
		record("49ers", domain.RoleDEF, "SF", 17, 8.0, 5),
		record("Bills", domain.RoleDEF, "BUF", 15, 10.0, 5),
	}
}
