package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/matchup"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
	"github.com/mightenyip/yfd-py-analysis/internal/value"
)

// Generator produces report sections from stored data.
type Generator struct {
	recordStore storage.CanonicalRecordStore
	now         func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(recordStore storage.CanonicalRecordStore) *Generator {
	return &Generator{
		recordStore: recordStore,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Now returns the generator's current time.
func (g *Generator) Now() time.Time {
	return g.now()
}

// RoleStatsForWeek aggregates one week's stored records per role, in
// display order. Means cover active records; efficiency is the ratio
// of mean points to mean cost.
func (g *Generator) RoleStatsForWeek(ctx context.Context, week int) ([]RoleStatRow, error) {
	records, err := g.recordStore.GetByWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	type agg struct {
		records   int
		active    int
		sumPoints float64
		sumCost   float64
	}
	byRole := make(map[domain.Role]*agg)
	for _, r := range records {
		a := byRole[r.Role]
		if a == nil {
			a = &agg{}
			byRole[r.Role] = a
		}
		a.records++
		if r.Active {
			a.active++
			a.sumPoints += r.Points
			a.sumCost += r.Cost
		}
	}

	var rows []RoleStatRow
	for _, role := range domain.AllRoles() {
		a := byRole[role]
		if a == nil {
			continue
		}
		row := RoleStatRow{Role: role, Records: a.records, Active: a.active}
		if a.active > 0 {
			n := float64(a.active)
			row.MeanPoints = a.sumPoints / n
			row.MeanCost = a.sumCost / n
			if row.MeanCost > 0 {
				row.MeanEfficiency = row.MeanPoints / row.MeanCost
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BuildAdjustedRows flattens scored records into report rows,
// preserving input order.
func BuildAdjustedRows(scored []domain.MatchupAdjustedRecord) []AdjustedRow {
	rows := make([]AdjustedRow, 0, len(scored))
	for _, s := range scored {
		rows = append(rows, AdjustedRow{
			RecordID:     s.Record.RecordID,
			Name:         s.Record.Name,
			Role:         s.Record.Role,
			Team:         s.Record.Team,
			Opponent:     s.Opponent,
			Cost:         s.Record.Cost,
			Points:       s.Record.Points,
			OpponentRank: s.OpponentRank,
			Multiplier:   s.Multiplier,
			Adjusted:     s.AdjustedPoints,
			Rating:       s.Rating,
			Unavailable:  s.MatchupUnavailable,
			Active:       s.Record.Active,
			Week:         s.Record.Week,
		})
	}
	return rows
}

// TopAdjustedRows returns the n highest adjusted scores among
// available, active rows.
func TopAdjustedRows(rows []AdjustedRow, n int) []AdjustedRow {
	var top []AdjustedRow
	for _, r := range rows {
		if r.Unavailable || !r.Active || r.Adjusted == nil {
			continue
		}
		top = append(top, r)
	}
	sort.Slice(top, func(i, j int) bool {
		if *top[i].Adjusted != *top[j].Adjusted {
			return *top[i].Adjusted > *top[j].Adjusted
		}
		return top[i].RecordID < top[j].RecordID
	})
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// UnavailableNames lists the names whose matchup did not resolve,
// sorted.
func UnavailableNames(rows []AdjustedRow) []string {
	var names []string
	for _, r := range rows {
		if r.Unavailable {
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)
	return names
}

// QualityFromGate converts gate checks into a report section.
func QualityFromGate(checks []QualityCheckRow, verdict string) *QualitySection {
	return &QualitySection{Checks: checks, Verdict: verdict}
}

// ValueMeta carries the run identifiers stamped on a value report.
type ValueMeta struct {
	GeneratedAt time.Time
	RunID       string
	DataVersion string
	Weeks       []int
	BinWidth    float64
}

// BuildValueReport converts role analyses into a value report.
func BuildValueReport(analyses []value.RoleAnalysis, meta ValueMeta) *ValueReport {
	report := &ValueReport{
		GeneratedAt: meta.GeneratedAt,
		RunID:       meta.RunID,
		DataVersion: meta.DataVersion,
		Weeks:       meta.Weeks,
		BinWidth:    meta.BinWidth,
	}
	for i := range analyses {
		report.Roles = append(report.Roles, buildRoleSection(&analyses[i]))
	}
	return report
}

func buildRoleSection(a *value.RoleAnalysis) RoleValueSection {
	s := RoleValueSection{
		Role:        a.Role,
		Records:     a.Records,
		Active:      a.Active,
		InDomain:    a.Binning.InDomain,
		OutOfDomain: a.Binning.OutOfDomain,
		HighMean:    a.High.MeanEfficiency,
		HighStddev:  a.High.StddevEfficiency,
	}

	for _, bin := range a.Binning.Bins {
		s.Bins = append(s.Bins, binRow(bin))
	}
	if a.Binning.Best != nil {
		row := binRow(*a.Binning.Best)
		s.Best = &row
	}

	for _, fit := range a.Fits {
		row := FitRow{
			Granularity:  fit.Granularity,
			Model:        fit.Model,
			SampleSize:   fit.SampleSize,
			Coefficients: fit.Coefficients,
			RSquared:     fit.RSquared,
			PValue:       fit.PValue,
			Valid:        fit.Valid,
		}
		if fit.Valid {
			row.Quality = value.FitQualityLabel(fit.RSquared)
		}
		s.Fits = append(s.Fits, row)
	}

	s.Correlation = &CorrelationRow{
		R:          a.Correlation.R,
		PValue:     a.Correlation.PValue,
		SampleSize: a.Correlation.SampleSize,
	}

	s.Elite = performerRows(a.High.Elite)
	s.Strong = performerRows(a.High.Strong)
	s.Top = performerRows(a.Top)
	return s
}

func binRow(bin domain.ValueBin) BinRow {
	return BinRow{
		Lo:             bin.Lo,
		Hi:             bin.Hi,
		Count:          bin.Count,
		MeanPoints:     bin.MeanPoints,
		MeanCost:       bin.MeanCost,
		MeanEfficiency: bin.MeanEfficiency,
		LowConfidence:  bin.LowConfidence,
	}
}

func performerRows(records []domain.CanonicalRecord) []PerformerRow {
	rows := make([]PerformerRow, 0, len(records))
	for _, rec := range records {
		eff, _ := rec.Efficiency()
		rows = append(rows, PerformerRow{
			Name:       rec.Name,
			Team:       rec.Team,
			Cost:       rec.Cost,
			Points:     rec.Points,
			Efficiency: eff,
			Week:       rec.Week,
		})
	}
	return rows
}

// BuildPreviewReport converts preview rows into a report.
func BuildPreviewReport(rows []matchup.PreviewRow, week int, generatedAt time.Time) *PreviewReport {
	report := &PreviewReport{GeneratedAt: generatedAt, Week: week}
	for _, row := range rows {
		report.Rows = append(report.Rows, PreviewRow{
			Game:          row.Game,
			Team:          row.Team,
			Opponent:      row.Opponent,
			Role:          row.Role,
			OpponentRank:  row.OpponentRank,
			PointsAllowed: row.PointsAllowed,
			Multiplier:    row.Multiplier,
			Rating:        row.Rating,
			Unavailable:   row.Unavailable,
		})
	}
	return report
}
