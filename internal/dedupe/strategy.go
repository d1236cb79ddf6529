package dedupe

import (
	"fmt"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// Named ranking strategies selectable from configuration.
const (
	StrategyLargestSlate  = "largest-slate"
	StrategyHighestPoints = "highest-points"
)

// SlateCounts holds the number of input records per source slate,
// used to rank duplicates by slate size.
type SlateCounts map[string]int

// CountSlates tallies records per source slate for one batch.
func CountSlates(records []domain.ParticipantRecord) SlateCounts {
	counts := make(SlateCounts)
	for i := range records {
		counts[records[i].SourceSlate]++
	}
	return counts
}

// Ranking reports whether a should outrank b when collapsing an
// identity group. Implementations must impose a total order so the
// surviving record does not depend on input order.
type Ranking func(a, b *domain.ParticipantRecord, counts SlateCounts) bool

// LargestSlate prefers the record from the slate with the most rows,
// on the theory that the main slate carries the most complete data.
// Ties fall back to a record with a game context, then to the
// deterministic tie break.
func LargestSlate(a, b *domain.ParticipantRecord, counts SlateCounts) bool {
	if ca, cb := counts[a.SourceSlate], counts[b.SourceSlate]; ca != cb {
		return ca > cb
	}
	if ha, hb := a.GameContext != "", b.GameContext != ""; ha != hb {
		return ha
	}
	return tieBreak(a, b)
}

// HighestPoints prefers the record reporting the higher score, falling
// back to LargestSlate on ties.
func HighestPoints(a, b *domain.ParticipantRecord, counts SlateCounts) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return LargestSlate(a, b, counts)
}

// tieBreak is a total order over records so that ranking is
// deterministic even for byte-different records the strategies do not
// distinguish.
func tieBreak(a, b *domain.ParticipantRecord) bool {
	if a.SourceSlate != b.SourceSlate {
		return a.SourceSlate < b.SourceSlate
	}
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.GameContext != b.GameContext {
		return a.GameContext < b.GameContext
	}
	if a.Team != b.Team {
		return a.Team < b.Team
	}
	if a.Active != b.Active {
		return a.Active
	}
	return baselineLess(a.BaselineRate, b.BaselineRate)
}

func baselineLess(a, b *float64) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

// RankingFor resolves a configured strategy name to its ranking.
func RankingFor(name string) (Ranking, error) {
	switch name {
	case StrategyLargestSlate:
		return LargestSlate, nil
	case StrategyHighestPoints:
		return HighestPoints, nil
	default:
		return nil, fmt.Errorf("unknown dedupe strategy %q", name)
	}
}
