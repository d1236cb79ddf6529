package matchup

import (
	"math"
	"testing"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

func fullStrengthTable(t *testing.T) *Table {
	t.Helper()
	teams := []string{"PHI", "NYG", "DAL", "WAS"}
	var entries []domain.OpponentStrengthEntry
	for _, role := range domain.AllRoles() {
		for i, team := range teams {
			entries = append(entries, domain.OpponentStrengthEntry{
				Team:          team,
				Role:          role,
				Rank:          i + 1,
				PointsAllowed: 10 + float64(i)*4,
			})
		}
	}
	table, err := NewTable(entries)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table
}

func canonical(name string, role domain.Role, team, game string, points float64) domain.CanonicalRecord {
	return domain.CanonicalRecord{
		RecordID:    "id-" + name,
		Name:        name,
		Role:        role,
		Team:        team,
		GameContext: game,
		Cost:        20,
		Points:      points,
		Week:        6,
		Active:      true,
	}
}

func TestScoreAppliesMultiplier(t *testing.T) {
	s := NewScorer(fullStrengthTable(t), DefaultCurve())

	// PHI plays WAS; WAS is rank 4 of 4, weakest defense.
	out := s.Score(canonical("jalen hurts", domain.RoleQB, "PHI", "PHI@WAS", 20))
	if out.MatchupUnavailable {
		t.Fatal("matchup should resolve")
	}
	if out.Opponent != "WAS" {
		t.Errorf("expected opponent WAS, got %q", out.Opponent)
	}
	if out.OpponentRank != 4 {
		t.Errorf("expected rank 4, got %d", out.OpponentRank)
	}
	if out.Multiplier == nil || *out.Multiplier != 1.35 {
		t.Fatalf("expected multiplier 1.35, got %v", out.Multiplier)
	}
	if out.AdjustedPoints == nil || math.Abs(*out.AdjustedPoints-27) > 1e-9 {
		t.Errorf("expected adjusted 27, got %v", out.AdjustedPoints)
	}
	if out.Rating != domain.RatingSmash {
		t.Errorf("expected SMASH, got %q", out.Rating)
	}
}

func TestScoreToughestOpponent(t *testing.T) {
	s := NewScorer(fullStrengthTable(t), DefaultCurve())

	// NYG plays PHI; PHI is rank 1, toughest defense.
	out := s.Score(canonical("malik nabers", domain.RoleWR, "NYG", "PHI@NYG", 10))
	if out.Multiplier == nil || *out.Multiplier != 0.80 {
		t.Fatalf("expected multiplier 0.80, got %v", out.Multiplier)
	}
	if out.AdjustedPoints == nil || math.Abs(*out.AdjustedPoints-8) > 1e-9 {
		t.Errorf("expected adjusted 8, got %v", out.AdjustedPoints)
	}
	if out.Rating != domain.RatingAvoid {
		t.Errorf("expected AVOID, got %q", out.Rating)
	}
}

func TestScoreUnknownOpponentFlagsUnavailable(t *testing.T) {
	s := NewScorer(fullStrengthTable(t), DefaultCurve())

	// XYZ is not in the strength table. The record must come back
	// flagged, never silently neutral.
	out := s.Score(canonical("mystery wr", domain.RoleWR, "PHI", "PHI@XYZ", 12))
	if !out.MatchupUnavailable {
		t.Fatal("expected unavailable matchup")
	}
	if out.Multiplier != nil {
		t.Errorf("unavailable matchup must not carry a multiplier, got %v", *out.Multiplier)
	}
	if out.AdjustedPoints != nil {
		t.Errorf("unavailable matchup must not carry adjusted points, got %v", *out.AdjustedPoints)
	}
	if out.Rating != "" {
		t.Errorf("unavailable matchup must not carry a rating, got %q", out.Rating)
	}
	if out.Record.Points != 12 {
		t.Errorf("raw points must survive, got %v", out.Record.Points)
	}
}

func TestScoreUnparseableContextFlagsUnavailable(t *testing.T) {
	s := NewScorer(fullStrengthTable(t), DefaultCurve())

	out := s.Score(canonical("lost player", domain.RoleRB, "PHI", "", 9))
	if !out.MatchupUnavailable {
		t.Fatal("expected unavailable matchup for empty game context")
	}
}

func TestScoreAll(t *testing.T) {
	s := NewScorer(fullStrengthTable(t), DefaultCurve())

	records := []domain.CanonicalRecord{
		canonical("jalen hurts", domain.RoleQB, "PHI", "PHI@WAS", 20),
		canonical("mystery wr", domain.RoleWR, "PHI", "PHI@XYZ", 12),
		canonical("malik nabers", domain.RoleWR, "NYG", "PHI@NYG", 10),
	}
	res := s.ScoreAll(records)
	if len(res.Records) != 3 {
		t.Fatalf("expected 3 scored records, got %d", len(res.Records))
	}
	if res.Unavailable != 1 {
		t.Errorf("expected 1 unavailable, got %d", res.Unavailable)
	}
	// Input order preserved.
	for i, rec := range records {
		if res.Records[i].Record.RecordID != rec.RecordID {
			t.Errorf("position %d: expected %s, got %s", i, rec.RecordID, res.Records[i].Record.RecordID)
		}
	}
}

func TestRatingFor(t *testing.T) {
	cases := []struct {
		mult float64
		want string
	}{
		{1.35, domain.RatingSmash},
		{1.30, domain.RatingSmash},
		{1.25, domain.RatingGreat},
		{1.15, domain.RatingGood},
		{1.0, domain.RatingNeutral},
		{0.95, domain.RatingTough},
		{0.85, domain.RatingTough},
		{0.80, domain.RatingAvoid},
	}
	for _, c := range cases {
		if got := RatingFor(c.mult); got != c.want {
			t.Errorf("RatingFor(%v) = %q, want %q", c.mult, got, c.want)
		}
	}
}
