// Package dedupe collapses duplicate participant records within a
// single week into one canonical record per identity. Identity is the
// normalized name plus role; records for different weeks must never be
// collapsed together.
package dedupe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/idhash"
)

// ErrMixedWeeks marks an attempt to deduplicate a batch containing
// records stamped with a different week than the one requested.
var ErrMixedWeeks = errors.New("mixed weeks in dedupe batch")

// Deduper collapses one week's records using a configurable ranking.
type Deduper struct {
	rank Ranking
}

// Option customizes a Deduper.
type Option func(*Deduper)

// WithRanking overrides the ranking used to pick the surviving record
// in each identity group.
func WithRanking(r Ranking) Option {
	return func(d *Deduper) {
		if r != nil {
			d.rank = r
		}
	}
}

// New returns a Deduper using the largest-slate ranking unless
// overridden.
func New(opts ...Option) *Deduper {
	d := &Deduper{rank: LargestSlate}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result carries the canonical records plus collapse accounting.
type Result struct {
	Canonical  []domain.CanonicalRecord // one record per identity, ordered by role then name
	Duplicates int                      // records collapsed away
	Conflicts  int                      // collapsed records that disagreed on cost or points
}

// Deduplicate collapses records sharing an identity into one canonical
// record each. Every input record must carry the given week; the batch
// is rejected otherwise. Output order and surviving values are
// independent of input order.
func (d *Deduper) Deduplicate(records []domain.ParticipantRecord, week int) (Result, error) {
	groups := make(map[string][]*domain.ParticipantRecord)
	for i := range records {
		rec := &records[i]
		if rec.Week != week {
			return Result{}, fmt.Errorf("%w: record %q has week %d, want %d",
				ErrMixedWeeks, rec.Name, rec.Week, week)
		}
		key := idhash.IdentityKey(rec.Name, rec.Role)
		groups[key] = append(groups[key], rec)
	}

	counts := CountSlates(records)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	res := Result{Canonical: make([]domain.CanonicalRecord, 0, len(groups))}
	for _, key := range keys {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return d.rank(group[i], group[j], counts)
		})

		winner := group[0]
		for _, loser := range group[1:] {
			if loser.Cost != winner.Cost || loser.Points != winner.Points {
				res.Conflicts++
			}
		}
		res.Duplicates += len(group) - 1
		res.Canonical = append(res.Canonical, canonicalFrom(winner, len(group)))
	}

	sort.Slice(res.Canonical, func(i, j int) bool {
		a, b := &res.Canonical[i], &res.Canonical[j]
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		return a.Name < b.Name
	})
	return res, nil
}

func canonicalFrom(winner *domain.ParticipantRecord, observations int) domain.CanonicalRecord {
	return domain.CanonicalRecord{
		RecordID:     idhash.ComputeRecordID(winner.Name, winner.Role, winner.Week),
		Name:         winner.Name,
		Role:         winner.Role,
		Team:         winner.Team,
		GameContext:  winner.GameContext,
		Cost:         winner.Cost,
		BaselineRate: winner.BaselineRate,
		Points:       winner.Points,
		SourceSlate:  winner.SourceSlate,
		Week:         winner.Week,
		Active:       winner.Active,
		Observations: observations,
	}
}
