package matchup

import (
	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// Scorer applies matchup adjustments to canonical records using a
// strength table and a multiplier curve.
type Scorer struct {
	table *Table
	curve Curve
}

// NewScorer returns a scorer over the given table and curve.
func NewScorer(table *Table, curve Curve) *Scorer {
	return &Scorer{table: table, curve: curve}
}

// Result carries scored records plus the count of records whose
// matchup could not be resolved.
type Result struct {
	Records     []domain.MatchupAdjustedRecord
	Unavailable int
}

// Score adjusts one record. When the opponent cannot be resolved or is
// missing from the table, the record is returned with the unavailable
// flag set and no multiplier; an unknown matchup never scores as
// neutral.
func (s *Scorer) Score(rec domain.CanonicalRecord) domain.MatchupAdjustedRecord {
	out := domain.MatchupAdjustedRecord{Record: rec}

	opponent, ok := ResolveOpponent(rec.GameContext, rec.Team)
	if !ok {
		out.MatchupUnavailable = true
		return out
	}
	out.Opponent = opponent

	entry, ok := s.table.Lookup(opponent, rec.Role)
	if !ok {
		out.MatchupUnavailable = true
		return out
	}

	mult, err := s.curve.Multiplier(entry.Rank, s.table.Teams(rec.Role))
	if err != nil {
		out.MatchupUnavailable = true
		return out
	}

	adjusted := rec.Points * mult
	out.OpponentRank = entry.Rank
	out.Multiplier = &mult
	out.AdjustedPoints = &adjusted
	out.Rating = RatingFor(mult)
	return out
}

// ScoreAll adjusts a batch of records, preserving input order.
func (s *Scorer) ScoreAll(records []domain.CanonicalRecord) Result {
	res := Result{Records: make([]domain.MatchupAdjustedRecord, 0, len(records))}
	for _, rec := range records {
		scored := s.Score(rec)
		if scored.MatchupUnavailable {
			res.Unavailable++
		}
		res.Records = append(res.Records, scored)
	}
	return res
}

// RatingFor buckets a multiplier into a matchup rating.
func RatingFor(mult float64) string {
	switch {
	case mult >= 1.30:
		return domain.RatingSmash
	case mult >= 1.20:
		return domain.RatingGreat
	case mult >= 1.10:
		return domain.RatingGood
	case mult >= 1.00:
		return domain.RatingNeutral
	case mult >= 0.85:
		return domain.RatingTough
	default:
		return domain.RatingAvoid
	}
}
