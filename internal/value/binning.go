// Package value studies how scoring relates to roster cost: records
// are grouped into fixed-width cost bins and polynomial models are fit
// to both the raw points and the per-bin means.
package value

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// ErrInvalidBinConfig marks a bin configuration that cannot partition
// a cost domain.
var ErrInvalidBinConfig = errors.New("invalid bin config")

// Domain is an explicit half-open cost range [Lo, Hi).
type Domain struct {
	Lo float64
	Hi float64
}

// BinConfig controls cost binning.
type BinConfig struct {
	// Width is the bin width in cost units.
	Width float64
	// MinSamples is the member count below which a bin is flagged low
	// confidence and excluded from best-bin selection.
	MinSamples int
	// Domain optionally fixes the cost range. When nil the range is
	// derived from the data, widened to whole bin widths.
	Domain *Domain
}

// Binner partitions records into cost bins.
type Binner struct {
	cfg BinConfig
}

// NewBinner validates the configuration and returns a binner.
func NewBinner(cfg BinConfig) (*Binner, error) {
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("%w: width %v must be positive", ErrInvalidBinConfig, cfg.Width)
	}
	if cfg.MinSamples < 1 {
		return nil, fmt.Errorf("%w: min samples %d must be at least 1", ErrInvalidBinConfig, cfg.MinSamples)
	}
	if cfg.Domain != nil && cfg.Domain.Lo >= cfg.Domain.Hi {
		return nil, fmt.Errorf("%w: domain [%v, %v) is empty", ErrInvalidBinConfig, cfg.Domain.Lo, cfg.Domain.Hi)
	}
	return &Binner{cfg: cfg}, nil
}

// BinningResult carries the populated bins plus placement accounting.
type BinningResult struct {
	Bins        []domain.ValueBin // contiguous, ascending by cost
	Active      int               // records eligible for binning
	InDomain    int               // records placed in a bin
	OutOfDomain int               // records whose cost fell outside the domain
	Best        *domain.ValueBin  // highest mean efficiency among confident bins, nil if none
}

// Bin partitions the active records into cost bins. Inactive records
// are skipped entirely; active records outside the domain are counted
// but not placed. Every active in-domain record lands in exactly one
// bin.
func (b *Binner) Bin(records []domain.CanonicalRecord) BinningResult {
	var res BinningResult

	active := make([]*domain.CanonicalRecord, 0, len(records))
	for i := range records {
		if records[i].Active {
			active = append(active, &records[i])
		}
	}
	res.Active = len(active)
	if len(active) == 0 {
		return res
	}

	lo, hi := b.bounds(active)
	edges := binEdges(lo, hi, b.cfg.Width)

	members := make([][]*domain.CanonicalRecord, len(edges)-1)
	for _, rec := range active {
		idx, ok := locate(edges, rec.Cost)
		if !ok {
			res.OutOfDomain++
			continue
		}
		members[idx] = append(members[idx], rec)
		res.InDomain++
	}

	res.Bins = make([]domain.ValueBin, len(members))
	for i := range members {
		res.Bins[i] = b.fillStats(edges[i], edges[i+1], members[i])
	}
	res.Best = bestBin(res.Bins)
	return res
}

// bounds returns the binning range: the configured domain when set,
// otherwise the observed cost range widened outward to whole bin
// widths so every record fits.
func (b *Binner) bounds(active []*domain.CanonicalRecord) (float64, float64) {
	if b.cfg.Domain != nil {
		return b.cfg.Domain.Lo, b.cfg.Domain.Hi
	}
	min, max := active[0].Cost, active[0].Cost
	for _, rec := range active[1:] {
		if rec.Cost < min {
			min = rec.Cost
		}
		if rec.Cost > max {
			max = rec.Cost
		}
	}
	w := b.cfg.Width
	lo := w * math.Floor(min/w)
	hi := w * (math.Floor(max/w) + 1)
	return lo, hi
}

// binEdges returns the edges of contiguous width-w bins covering
// [lo, hi). When the span is not a whole number of widths the final
// bin is narrower, clipped at hi. Edges are computed by
// multiplication, not accumulation, so rounding error cannot open a
// sliver bin next to hi.
func binEdges(lo, hi, w float64) []float64 {
	edges := []float64{lo}
	for i := 1; ; i++ {
		edge := lo + w*float64(i)
		if edge >= hi || hi-edge < w*1e-9 {
			break
		}
		edges = append(edges, edge)
	}
	edges = append(edges, hi)
	return edges
}

// locate finds the bin index holding cost, half-open on the right
// except that nothing at or past the final edge is placed.
func locate(edges []float64, cost float64) (int, bool) {
	if cost < edges[0] || cost >= edges[len(edges)-1] {
		return 0, false
	}
	idx := sort.SearchFloat64s(edges, cost)
	if edges[idx] > cost {
		idx--
	}
	return idx, true
}

func (b *Binner) fillStats(lo, hi float64, members []*domain.CanonicalRecord) domain.ValueBin {
	bin := domain.ValueBin{
		Lo:            lo,
		Hi:            hi,
		Count:         len(members),
		LowConfidence: len(members) < b.cfg.MinSamples,
	}
	if len(members) == 0 {
		bin.MeanPoints = math.NaN()
		bin.MeanCost = math.NaN()
		bin.MeanEfficiency = math.NaN()
		return bin
	}

	var sumPoints, sumCost float64
	for _, rec := range members {
		sumPoints += rec.Points
		sumCost += rec.Cost
		bin.Members = append(bin.Members, rec.RecordID)
	}
	sort.Strings(bin.Members)

	n := float64(len(members))
	bin.MeanPoints = sumPoints / n
	bin.MeanCost = sumCost / n
	if bin.MeanCost > 0 {
		bin.MeanEfficiency = bin.MeanPoints / bin.MeanCost
	} else {
		bin.MeanEfficiency = math.NaN()
	}
	return bin
}

// bestBin picks the confident bin with the highest mean efficiency.
// Ties go to the larger bin, then the cheaper one.
func bestBin(bins []domain.ValueBin) *domain.ValueBin {
	var best *domain.ValueBin
	for i := range bins {
		bin := &bins[i]
		if bin.LowConfidence || math.IsNaN(bin.MeanEfficiency) {
			continue
		}
		if best == nil || better(bin, best) {
			best = bin
		}
	}
	return best
}

func better(a, b *domain.ValueBin) bool {
	if a.MeanEfficiency != b.MeanEfficiency {
		return a.MeanEfficiency > b.MeanEfficiency
	}
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Lo < b.Lo
}
