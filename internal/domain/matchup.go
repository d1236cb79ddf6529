package domain

// OpponentStrengthEntry ranks one opponent team against one role.
// Rank 1 allows the fewest points to the role (toughest matchup),
// rank N the most (weakest).
type OpponentStrengthEntry struct {
	Team          string  // opponent team code
	Role          Role    // role the ranking applies to
	Rank          int     // 1..N, a permutation per role
	PointsAllowed float64 // average points allowed to the role
}

// MatchupAdjustedRecord is a CanonicalRecord with matchup-derived
// fields. Recomputed on every run, never the system of record.
type MatchupAdjustedRecord struct {
	Record CanonicalRecord

	Opponent           string   // resolved opponent team code, empty when unresolved
	OpponentRank       int      // 0 when unavailable
	Multiplier         *float64 // nil when matchup data is unavailable
	AdjustedPoints     *float64 // Points * Multiplier, nil when unavailable
	MatchupUnavailable bool     // opponent unresolved or absent from the table
	Rating             string   // SMASH..AVOID, empty when unavailable
}

// Matchup rating labels, from most to least favorable.
const (
	RatingSmash   = "SMASH"
	RatingGreat   = "GREAT"
	RatingGood    = "GOOD"
	RatingNeutral = "NEUTRAL"
	RatingTough   = "TOUGH"
	RatingAvoid   = "AVOID"
)
