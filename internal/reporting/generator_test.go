package reporting

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/memory"
	"github.com/mightenyip/yfd-py-analysis/internal/value"
)

func setupRecordStore(t *testing.T) *memory.CanonicalRecordStore {
	ctx := context.Background()
	store := memory.NewCanonicalRecordStore()

	records := []*domain.CanonicalRecord{
		{RecordID: "r1", Name: "alpha", Role: domain.RoleQB, Team: "PHI", Cost: 30, Points: 24, Week: 6, Active: true, Observations: 1},
		{RecordID: "r2", Name: "bravo", Role: domain.RoleQB, Team: "NYG", Cost: 25, Points: 15, Week: 6, Active: true, Observations: 1},
		{RecordID: "r3", Name: "charlie", Role: domain.RoleWR, Team: "DAL", Cost: 20, Points: 12, Week: 6, Active: true, Observations: 1},
		{RecordID: "r4", Name: "delta", Role: domain.RoleWR, Team: "WAS", Cost: 15, Points: 0, Week: 6, Active: false, Observations: 1},
	}
	for _, r := range records {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert record failed: %v", err)
		}
	}
	return store
}

func TestRoleStatsForWeek_Aggregates(t *testing.T) {
	ctx := context.Background()
	generator := NewGenerator(setupRecordStore(t))

	rows, err := generator.RoleStatsForWeek(ctx, 6)
	if err != nil {
		t.Fatalf("RoleStatsForWeek failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 role rows, got %d", len(rows))
	}

	// Display order: QB before WR
	qb := rows[0]
	if qb.Role != domain.RoleQB {
		t.Fatalf("Expected first row QB, got %s", qb.Role)
	}
	if qb.Records != 2 || qb.Active != 2 {
		t.Errorf("Expected QB records 2 active 2, got %d/%d", qb.Records, qb.Active)
	}
	if qb.MeanPoints != 19.5 {
		t.Errorf("Expected QB mean points 19.5, got %v", qb.MeanPoints)
	}
	if qb.MeanCost != 27.5 {
		t.Errorf("Expected QB mean cost 27.5, got %v", qb.MeanCost)
	}
	if want := 19.5 / 27.5; qb.MeanEfficiency != want {
		t.Errorf("Expected QB efficiency %v, got %v", want, qb.MeanEfficiency)
	}

	// Inactive records count toward Records but not the means
	wr := rows[1]
	if wr.Role != domain.RoleWR {
		t.Fatalf("Expected second row WR, got %s", wr.Role)
	}
	if wr.Records != 2 || wr.Active != 1 {
		t.Errorf("Expected WR records 2 active 1, got %d/%d", wr.Records, wr.Active)
	}
	if wr.MeanPoints != 12 || wr.MeanCost != 20 {
		t.Errorf("Expected WR means 12/20, got %v/%v", wr.MeanPoints, wr.MeanCost)
	}
	if wr.MeanEfficiency != 0.6 {
		t.Errorf("Expected WR efficiency 0.6, got %v", wr.MeanEfficiency)
	}
}

func TestRoleStatsForWeek_EmptyWeek(t *testing.T) {
	ctx := context.Background()
	generator := NewGenerator(setupRecordStore(t))

	rows, err := generator.RoleStatsForWeek(ctx, 5)
	if err != nil {
		t.Fatalf("RoleStatsForWeek failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows for empty week, got %d", len(rows))
	}
}

func TestGenerator_WithClock(t *testing.T) {
	fixedTime := time.Date(2025, 10, 12, 18, 0, 0, 0, time.UTC)
	generator := NewGenerator(memory.NewCanonicalRecordStore()).WithClock(func() time.Time {
		return fixedTime
	})

	if !generator.Now().Equal(fixedTime) {
		t.Errorf("Expected Now %v, got %v", fixedTime, generator.Now())
	}
}

func sampleScored() []domain.MatchupAdjustedRecord {
	mult := 1.35
	adj := 32.4
	multMid := 1.0
	adjMid := 15.0
	return []domain.MatchupAdjustedRecord{
		{
			Record: domain.CanonicalRecord{
				RecordID: "r1", Name: "alpha", Role: domain.RoleQB, Team: "PHI",
				Cost: 30, Points: 24, Week: 6, Active: true,
			},
			Opponent: "WAS", OpponentRank: 8, Multiplier: &mult, AdjustedPoints: &adj,
			Rating: domain.RatingSmash,
		},
		{
			Record: domain.CanonicalRecord{
				RecordID: "r2", Name: "bravo", Role: domain.RoleQB, Team: "NYG",
				Cost: 25, Points: 15, Week: 6, Active: true,
			},
			Opponent: "DAL", OpponentRank: 4, Multiplier: &multMid, AdjustedPoints: &adjMid,
			Rating: domain.RatingNeutral,
		},
		{
			Record: domain.CanonicalRecord{
				RecordID: "r3", Name: "zeta", Role: domain.RoleWR, Team: "XYZ",
				Cost: 20, Points: 12, Week: 6, Active: true,
			},
			MatchupUnavailable: true,
		},
	}
}

func TestBuildAdjustedRows_PreservesOrder(t *testing.T) {
	rows := BuildAdjustedRows(sampleScored())

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].RecordID != "r1" || rows[1].RecordID != "r2" || rows[2].RecordID != "r3" {
		t.Errorf("Expected input order r1,r2,r3, got %s,%s,%s",
			rows[0].RecordID, rows[1].RecordID, rows[2].RecordID)
	}
	if rows[0].Rating != domain.RatingSmash {
		t.Errorf("Expected rating SMASH, got %q", rows[0].Rating)
	}
	if rows[0].Adjusted == nil || *rows[0].Adjusted != 32.4 {
		t.Errorf("Expected adjusted 32.4, got %v", rows[0].Adjusted)
	}
	if !rows[2].Unavailable {
		t.Error("Expected r3 unavailable")
	}
	if rows[2].Multiplier != nil || rows[2].Adjusted != nil {
		t.Error("Unavailable row should carry nil multiplier and adjusted")
	}
	if rows[2].Points != 12 {
		t.Errorf("Raw points should survive an unavailable matchup, got %v", rows[2].Points)
	}
}

func TestTopAdjustedRows_SortsAndFilters(t *testing.T) {
	rows := BuildAdjustedRows(sampleScored())

	// An inactive row must not rank even with a high adjusted score
	big := 99.0
	one := 1.0
	rows = append(rows, AdjustedRow{
		RecordID: "r4", Name: "bench", Role: domain.RoleWR,
		Multiplier: &one, Adjusted: &big, Active: false,
	})

	top := TopAdjustedRows(rows, 10)
	if len(top) != 2 {
		t.Fatalf("Expected 2 rankable rows, got %d", len(top))
	}
	if top[0].RecordID != "r1" || top[1].RecordID != "r2" {
		t.Errorf("Expected order r1,r2, got %s,%s", top[0].RecordID, top[1].RecordID)
	}

	capped := TopAdjustedRows(rows, 1)
	if len(capped) != 1 || capped[0].RecordID != "r1" {
		t.Errorf("Expected cap to keep r1 only, got %v", capped)
	}

	uncapped := TopAdjustedRows(rows, 0)
	if len(uncapped) != 2 {
		t.Errorf("Expected zero cap to mean unlimited, got %d", len(uncapped))
	}
}

func TestUnavailableNames_Sorted(t *testing.T) {
	rows := []AdjustedRow{
		{Name: "zeta", Unavailable: true},
		{Name: "alpha", Unavailable: false},
		{Name: "miller", Unavailable: true},
	}

	names := UnavailableNames(rows)
	if len(names) != 2 {
		t.Fatalf("Expected 2 names, got %d", len(names))
	}
	if names[0] != "miller" || names[1] != "zeta" {
		t.Errorf("Expected sorted [miller zeta], got %v", names)
	}
}

func sampleAnalysis() value.RoleAnalysis {
	pv := 0.002
	return value.RoleAnalysis{
		Role:    domain.RoleWR,
		Weeks:   []int{5, 6},
		Records: 10,
		Active:  9,
		Binning: value.BinningResult{
			Active:   9,
			InDomain: 8,
			Bins: []domain.ValueBin{
				{Lo: 10, Hi: 20, Count: 5, MeanPoints: 9, MeanCost: 15, MeanEfficiency: 0.6},
				{Lo: 20, Hi: 30, Count: 3, MeanPoints: 21, MeanCost: 24, MeanEfficiency: 0.875},
				{Lo: 30, Hi: 40, Count: 1, MeanPoints: 30, MeanCost: 35, MeanEfficiency: 30.0 / 35, LowConfidence: true},
			},
			OutOfDomain: 1,
			Best:        &domain.ValueBin{Lo: 20, Hi: 30, Count: 3, MeanPoints: 21, MeanCost: 24, MeanEfficiency: 0.875},
		},
		Fits: []domain.FitResult{
			{
				Role: domain.RoleWR, Granularity: domain.GranularityRaw, Model: domain.ModelLinear,
				Coefficients: []float64{1.5, 0.8}, RSquared: 0.85, PValue: &pv, SampleSize: 9, Valid: true,
			},
			{
				Role: domain.RoleWR, Granularity: domain.GranularityBinned, Model: domain.ModelCubic,
				SampleSize: 3, Valid: false,
			},
		},
		Correlation: value.CorrelationResult{R: 0.91, PValue: &pv, SampleSize: 9},
		High: value.HighPerformers{
			MeanEfficiency:   0.62,
			StddevEfficiency: 0.11,
			Elite: []domain.CanonicalRecord{
				{RecordID: "e1", Name: "spike", Team: "PHI", Cost: 22, Points: 28, Week: 6, Active: true},
			},
		},
		Top: []domain.CanonicalRecord{
			{RecordID: "t1", Name: "spike", Team: "PHI", Cost: 22, Points: 28, Week: 6, Active: true},
			{RecordID: "t2", Name: "steady", Team: "DAL", Cost: 24, Points: 21, Week: 5, Active: true},
		},
		InvalidFits: 1,
	}
}

func TestBuildValueReport_MapsAnalysis(t *testing.T) {
	meta := ValueMeta{
		GeneratedAt: time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC),
		RunID:       "run-1",
		DataVersion: "abc123",
		Weeks:       []int{5, 6},
		BinWidth:    10,
	}
	report := BuildValueReport([]value.RoleAnalysis{sampleAnalysis()}, meta)

	if report.RunID != "run-1" || report.DataVersion != "abc123" {
		t.Errorf("Metadata not carried: %+v", report)
	}
	if len(report.Roles) != 1 {
		t.Fatalf("Expected 1 role section, got %d", len(report.Roles))
	}

	s := report.Roles[0]
	if s.Role != domain.RoleWR {
		t.Errorf("Expected role WR, got %s", s.Role)
	}
	if s.Records != 10 || s.Active != 9 || s.InDomain != 8 || s.OutOfDomain != 1 {
		t.Errorf("Counts not carried: %+v", s)
	}
	if len(s.Bins) != 3 {
		t.Fatalf("Expected 3 bins, got %d", len(s.Bins))
	}
	if !s.Bins[2].LowConfidence {
		t.Error("Expected third bin flagged low confidence")
	}
	if s.Best == nil || s.Best.Lo != 20 || s.Best.Hi != 30 {
		t.Errorf("Expected best bin [20,30), got %+v", s.Best)
	}

	if len(s.Fits) != 2 {
		t.Fatalf("Expected 2 fits, got %d", len(s.Fits))
	}
	if s.Fits[0].Quality != "Excellent" {
		t.Errorf("Expected quality Excellent for R^2 0.85, got %q", s.Fits[0].Quality)
	}
	if s.Fits[1].Quality != "" {
		t.Errorf("Invalid fit should carry no quality label, got %q", s.Fits[1].Quality)
	}

	if s.Correlation == nil || s.Correlation.R != 0.91 {
		t.Errorf("Correlation not carried: %+v", s.Correlation)
	}
	if len(s.Elite) != 1 || s.Elite[0].Name != "spike" {
		t.Errorf("Elite tier not carried: %+v", s.Elite)
	}
	if want := 28.0 / 22.0; len(s.Elite) == 1 && s.Elite[0].Efficiency != want {
		t.Errorf("Expected elite efficiency %v, got %v", want, s.Elite[0].Efficiency)
	}
	if len(s.Top) != 2 {
		t.Errorf("Expected 2 top scorers, got %d", len(s.Top))
	}
}

func sampleWeeklyReport() *WeeklyReport {
	mult := 1.35
	adj := 32.4
	return &WeeklyReport{
		GeneratedAt: time.Date(2025, 10, 12, 18, 0, 0, 0, time.UTC),
		Week:        6,
		RunID:       "run-1",
		DataVersion: "abc123",
		Summary: RunSummaryRow{
			RowsIn:              30,
			Malformed:           2,
			MalformedReasons:    map[string]int{"unknown_role": 1, "bad_cost": 1},
			DuplicatesCollapsed: 3,
			Conflicts:           1,
			Canonical:           25,
			Active:              23,
			Inactive:            2,
			Scored:              25,
			MatchupUnavailable:  1,
		},
		Quality: &QualitySection{
			Checks: []QualityCheckRow{
				{Name: "malformed_share", Threshold: "<= 10%", Actual: "6.7% (2 of 30)", Pass: true},
			},
			Verdict: "PUBLISH",
		},
		RoleStats: []RoleStatRow{
			{Role: domain.RoleQB, Records: 5, Active: 5, MeanPoints: 18.2, MeanCost: 28.4, MeanEfficiency: 0.6408},
		},
		TopAdjusted: []AdjustedRow{
			{
				RecordID: "r1", Name: "alpha", Role: domain.RoleQB, Team: "PHI", Opponent: "WAS",
				Cost: 30, Points: 24, OpponentRank: 8, Multiplier: &mult, Adjusted: &adj,
				Rating: domain.RatingSmash, Active: true, Week: 6,
			},
		},
		Unavailable: []string{"zeta"},
	}
}

func TestRenderWeeklyMarkdown_Format(t *testing.T) {
	md := RenderWeeklyMarkdown(sampleWeeklyReport())

	requiredSections := []string{
		"# Week 6 Report",
		"Run: run-1 | Data Version: abc123",
		"## Run Summary",
		"### Malformed Rows by Reason",
		"| bad_cost | 1 |",
		"## Quality Gate",
		"**Verdict: PUBLISH**",
		"## Role Summary",
		"## Top Adjusted Scores",
		"| alpha | QB | PHI | WAS | 8 |",
		"## Unresolved Matchups",
		"- zeta",
	}
	for _, section := range requiredSections {
		if !strings.Contains(md, section) {
			t.Errorf("Markdown missing section: %s", section)
		}
	}

	if !strings.Contains(md, "1.3500") {
		t.Error("Markdown should render the multiplier at report precision")
	}
}

func TestRenderValueMarkdown_Format(t *testing.T) {
	meta := ValueMeta{
		GeneratedAt: time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC),
		RunID:       "run-1",
		DataVersion: "abc123",
		Weeks:       []int{5, 6},
		BinWidth:    10,
	}
	report := BuildValueReport([]value.RoleAnalysis{sampleAnalysis()}, meta)

	md := RenderValueMarkdown(report)

	requiredSections := []string{
		"# Value Report",
		"Weeks: 5, 6",
		"## WR",
		"### Cost Bins",
		"Best value bin: [20.0000, 30.0000)",
		"### Model Fits",
		"insufficient sample",
		"Cost-points correlation:",
		"### High Performers",
		"| Elite | spike | PHI |",
		"### Top Scorers",
	}
	for _, section := range requiredSections {
		if !strings.Contains(md, section) {
			t.Errorf("Markdown missing section: %s", section)
		}
	}
}

func TestRenderValueMarkdown_NoBestBin(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.Binning.Best = nil
	report := BuildValueReport([]value.RoleAnalysis{analysis}, ValueMeta{})

	md := RenderValueMarkdown(report)
	if !strings.Contains(md, "No bin met the confidence floor") {
		t.Error("Markdown should state when no bin is confident")
	}
}

func TestRenderAdjustedCSV_Format(t *testing.T) {
	rows := BuildAdjustedRows(sampleScored())
	out := RenderAdjustedCSV(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "record_id,name,role,team,opponent") {
		t.Errorf("CSV header is incorrect: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "r1,alpha,QB,PHI,WAS,30.000000,24.000000,8,1.350000,32.400000,SMASH,false,true,6") {
		t.Errorf("Unexpected first row: %s", lines[1])
	}

	// Unavailable rows carry empty rank, multiplier and adjusted columns
	if !strings.HasPrefix(lines[3], "r3,zeta,WR,XYZ,,20.000000,12.000000,,,,,true,true,6") {
		t.Errorf("Unexpected unavailable row: %s", lines[3])
	}
}

func TestRenderBinsCSV_MarksBest(t *testing.T) {
	report := BuildValueReport([]value.RoleAnalysis{sampleAnalysis()}, ValueMeta{})
	out := RenderBinsCSV(report.Roles)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "role,bin_lo,bin_hi") {
		t.Errorf("CSV header is incorrect: %s", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",false") || !strings.HasSuffix(lines[2], ",true") {
		t.Errorf("Best bin flag misplaced:\n%s\n%s", lines[1], lines[2])
	}
	if !strings.Contains(lines[3], ",true,false") {
		t.Errorf("Low-confidence bin should not be best: %s", lines[3])
	}
}

func TestRenderFitsCSV_InvalidFitHasEmptyStats(t *testing.T) {
	report := BuildValueReport([]value.RoleAnalysis{sampleAnalysis()}, ValueMeta{})
	out := RenderFitsCSV(report.Roles)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "WR,RAW,LINEAR,9,true,0.850000") {
		t.Errorf("Unexpected valid fit row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "WR,BINNED,CUBIC,3,false,,") {
		t.Errorf("Invalid fit should carry empty statistics: %s", lines[2])
	}
}

func TestRenderMarkdown_NaNRendersAsDash(t *testing.T) {
	if got := fmtFloat(math.NaN()); got != "-" {
		t.Errorf("Expected NaN to render as -, got %q", got)
	}
	if got := csvFloat(math.NaN()); got != "" {
		t.Errorf("Expected NaN to render empty in CSV, got %q", got)
	}
	if got := fmtOptFloat(nil); got != "-" {
		t.Errorf("Expected nil to render as -, got %q", got)
	}
}
