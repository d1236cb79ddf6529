// Package verify checks that a stored canonical dataset matches a
// fresh recomputation from the same raw rows. It is the reproducibility
// backstop: same input, same week, same records.
package verify

import (
	"math"
	"sort"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// FloatTolerance is the tolerance for float64 comparisons.
const FloatTolerance = 1e-9

// FieldDivergence represents a mismatch between stored and recomputed values.
type FieldDivergence struct {
	RecordID   string      // record whose field diverged
	Field      string      // field name
	Stored     interface{} // stored value
	Recomputed interface{} // freshly computed value
}

// Report contains the result of comparing two canonical datasets.
type Report struct {
	Total       int               // records compared
	Matched     int               // records with no divergence
	Divergent   int               // records with at least one divergence
	MissingIDs  []string          // record IDs present only in the stored set
	ExtraIDs    []string          // record IDs present only in the recomputed set
	Divergences []FieldDivergence // individual field mismatches
}

// Clean reports whether the datasets matched exactly.
func (r *Report) Clean() bool {
	return r.Divergent == 0 && len(r.MissingIDs) == 0 && len(r.ExtraIDs) == 0
}

// CompareRecords compares two canonical records field by field.
// Float fields use FloatTolerance.
func CompareRecords(stored, recomputed *domain.CanonicalRecord) []FieldDivergence {
	var divergences []FieldDivergence
	add := func(field string, s, c interface{}) {
		divergences = append(divergences, FieldDivergence{
			RecordID:   stored.RecordID,
			Field:      field,
			Stored:     s,
			Recomputed: c,
		})
	}

	if stored.Name != recomputed.Name {
		add("Name", stored.Name, recomputed.Name)
	}
	if stored.Role != recomputed.Role {
		add("Role", stored.Role, recomputed.Role)
	}
	if stored.Team != recomputed.Team {
		add("Team", stored.Team, recomputed.Team)
	}
	if stored.GameContext != recomputed.GameContext {
		add("GameContext", stored.GameContext, recomputed.GameContext)
	}
	if !floatsEqual(stored.Cost, recomputed.Cost) {
		add("Cost", stored.Cost, recomputed.Cost)
	}
	if !baselinesEqual(stored.BaselineRate, recomputed.BaselineRate) {
		add("BaselineRate", stored.BaselineRate, recomputed.BaselineRate)
	}
	if !floatsEqual(stored.Points, recomputed.Points) {
		add("Points", stored.Points, recomputed.Points)
	}
	if stored.SourceSlate != recomputed.SourceSlate {
		add("SourceSlate", stored.SourceSlate, recomputed.SourceSlate)
	}
	if stored.Week != recomputed.Week {
		add("Week", stored.Week, recomputed.Week)
	}
	if stored.Active != recomputed.Active {
		add("Active", stored.Active, recomputed.Active)
	}
	if stored.Observations != recomputed.Observations {
		add("Observations", stored.Observations, recomputed.Observations)
	}

	return divergences
}

// CompareDatasets compares two canonical datasets keyed by record ID.
func CompareDatasets(stored, recomputed []*domain.CanonicalRecord) *Report {
	storedByID := make(map[string]*domain.CanonicalRecord, len(stored))
	for _, r := range stored {
		storedByID[r.RecordID] = r
	}
	recomputedByID := make(map[string]*domain.CanonicalRecord, len(recomputed))
	for _, r := range recomputed {
		recomputedByID[r.RecordID] = r
	}

	report := &Report{}
	for id, s := range storedByID {
		c, ok := recomputedByID[id]
		if !ok {
			report.MissingIDs = append(report.MissingIDs, id)
			continue
		}
		report.Total++
		if div := CompareRecords(s, c); len(div) > 0 {
			report.Divergent++
			report.Divergences = append(report.Divergences, div...)
		} else {
			report.Matched++
		}
	}
	for id := range recomputedByID {
		if _, ok := storedByID[id]; !ok {
			report.ExtraIDs = append(report.ExtraIDs, id)
		}
	}

	sort.Strings(report.MissingIDs)
	sort.Strings(report.ExtraIDs)
	sort.Slice(report.Divergences, func(i, j int) bool {
		a, b := report.Divergences[i], report.Divergences[j]
		if a.RecordID != b.RecordID {
			return a.RecordID < b.RecordID
		}
		return a.Field < b.Field
	})

	return report
}

func floatsEqual(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}

func baselinesEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return floatsEqual(*a, *b)
}
