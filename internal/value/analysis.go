package value

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// minBinnedFitBins is the fewest populated bins worth fitting a curve
// through. Below this every binned fit is reported invalid.
const minBinnedFitBins = 3

// AnalyzerConfig controls the value analysis.
type AnalyzerConfig struct {
	// Bin configures cost binning.
	Bin BinConfig
	// TopN caps the top-performer list per role. Roles absent from the
	// map, or mapped to 0, are unlimited.
	TopN map[domain.Role]int
}

// Analyzer runs the cost-versus-points study for one or more roles.
type Analyzer struct {
	cfg    AnalyzerConfig
	binner *Binner
}

// NewAnalyzer validates the configuration and returns an analyzer.
func NewAnalyzer(cfg AnalyzerConfig) (*Analyzer, error) {
	binner, err := NewBinner(cfg.Bin)
	if err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg, binner: binner}, nil
}

// CorrelationResult is the cost-points correlation for a role.
type CorrelationResult struct {
	R          float64  // Pearson correlation, NaN when undefined
	PValue     *float64 // two-sided p-value, nil when not computable
	SampleSize int
}

// HighPerformers tiers records by efficiency relative to the role.
type HighPerformers struct {
	MeanEfficiency   float64
	StddevEfficiency float64
	// Strong holds records at least one standard deviation above the
	// mean efficiency, Elite at least two. The tiers do not overlap.
	Strong []domain.CanonicalRecord
	Elite  []domain.CanonicalRecord
}

// RoleAnalysis is the full value study for one role.
type RoleAnalysis struct {
	Role        domain.Role
	Weeks       []int // distinct weeks in the sample, ascending
	Records     int   // records considered
	Active      int   // records with a played game
	Binning     BinningResult
	Fits        []domain.FitResult // all models at both granularities
	Correlation CorrelationResult
	High        HighPerformers
	Top         []domain.CanonicalRecord // top scorers, capped per config
	InvalidFits int
}

// AnalyzeRole studies one role's records. Records for other roles are
// ignored so callers can pass a mixed dataset.
func (a *Analyzer) AnalyzeRole(records []domain.CanonicalRecord, role domain.Role) RoleAnalysis {
	res := RoleAnalysis{Role: role}

	var filtered []domain.CanonicalRecord
	weekSet := make(map[int]struct{})
	for _, rec := range records {
		if rec.Role != role {
			continue
		}
		filtered = append(filtered, rec)
		weekSet[rec.Week] = struct{}{}
	}
	res.Records = len(filtered)
	for week := range weekSet {
		res.Weeks = append(res.Weeks, week)
	}
	sort.Ints(res.Weeks)

	res.Binning = a.binner.Bin(filtered)
	res.Active = res.Binning.Active

	var rawX, rawY []float64
	for _, rec := range filtered {
		if rec.Active {
			rawX = append(rawX, rec.Cost)
			rawY = append(rawY, rec.Points)
		}
	}

	var binX, binY []float64
	for _, bin := range res.Binning.Bins {
		if bin.Count > 0 {
			binX = append(binX, bin.Midpoint())
			binY = append(binY, bin.MeanPoints)
		}
	}

	res.Fits = append(res.Fits, a.fitAll(rawX, rawY, role, domain.GranularityRaw)...)
	if len(binX) >= minBinnedFitBins {
		res.Fits = append(res.Fits, a.fitAll(binX, binY, role, domain.GranularityBinned)...)
	} else {
		for _, model := range domain.AllModels() {
			res.Fits = append(res.Fits, domain.FitResult{
				Role:        role,
				Granularity: domain.GranularityBinned,
				Model:       model,
				SampleSize:  len(binX),
			})
		}
	}
	for _, fit := range res.Fits {
		if !fit.Valid {
			res.InvalidFits++
		}
	}

	r, pv, _ := Correlation(rawX, rawY)
	res.Correlation = CorrelationResult{R: r, PValue: pv, SampleSize: len(rawX)}

	res.High = highPerformers(filtered)
	res.Top = topByPoints(filtered, a.cfg.TopN[role])
	return res
}

// AnalyzeAll studies the given roles, in display order when roles is
// empty. Roles with no records are skipped.
func (a *Analyzer) AnalyzeAll(records []domain.CanonicalRecord, roles []domain.Role) []RoleAnalysis {
	if len(roles) == 0 {
		roles = domain.AllRoles()
	}
	analyses := make([]RoleAnalysis, 0, len(roles))
	for _, role := range roles {
		analysis := a.AnalyzeRole(records, role)
		if analysis.Records == 0 {
			continue
		}
		analyses = append(analyses, analysis)
	}
	return analyses
}

// fitAll fits every model family to one sample.
func (a *Analyzer) fitAll(xs, ys []float64, role domain.Role, gran domain.Granularity) []domain.FitResult {
	fits := make([]domain.FitResult, 0, len(domain.AllModels()))
	for _, model := range domain.AllModels() {
		fit, err := FitPolynomial(xs, ys, model)
		if err != nil {
			fit = domain.FitResult{Model: model, SampleSize: len(xs)}
		}
		fit.Role = role
		fit.Granularity = gran
		fits = append(fits, fit)
	}
	return fits
}

// highPerformers tiers active records by how far their efficiency sits
// above the role mean.
func highPerformers(records []domain.CanonicalRecord) HighPerformers {
	type scored struct {
		rec domain.CanonicalRecord
		eff float64
	}
	var pool []scored
	var effs []float64
	for _, rec := range records {
		if !rec.Active {
			continue
		}
		eff, ok := rec.Efficiency()
		if !ok {
			continue
		}
		pool = append(pool, scored{rec: rec, eff: eff})
		effs = append(effs, eff)
	}

	var high HighPerformers
	if len(effs) == 0 {
		return high
	}
	high.MeanEfficiency = stat.Mean(effs, nil)
	if len(effs) > 1 {
		high.StddevEfficiency = stat.StdDev(effs, nil)
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].eff != pool[j].eff {
			return pool[i].eff > pool[j].eff
		}
		return pool[i].rec.RecordID < pool[j].rec.RecordID
	})

	if high.StddevEfficiency <= 0 {
		return high
	}
	strongCut := high.MeanEfficiency + high.StddevEfficiency
	eliteCut := high.MeanEfficiency + 2*high.StddevEfficiency
	for _, s := range pool {
		switch {
		case s.eff >= eliteCut:
			high.Elite = append(high.Elite, s.rec)
		case s.eff >= strongCut:
			high.Strong = append(high.Strong, s.rec)
		}
	}
	return high
}

// topByPoints returns the highest-scoring active records, capped at n
// when n is positive.
func topByPoints(records []domain.CanonicalRecord, n int) []domain.CanonicalRecord {
	var top []domain.CanonicalRecord
	for _, rec := range records {
		if rec.Active {
			top = append(top, rec)
		}
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Points != top[j].Points {
			return top[i].Points > top[j].Points
		}
		return top[i].RecordID < top[j].RecordID
	})
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return top
}
