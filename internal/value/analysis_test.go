package value

import (
	"fmt"
	"testing"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

func analyzerRecords() []domain.CanonicalRecord {
	// Two weeks of WR data with a roughly linear cost-points shape,
	// plus one QB that must not leak into WR analysis.
	var records []domain.CanonicalRecord
	for week := 5; week <= 6; week++ {
		for i := 0; i < 10; i++ {
			cost := 10 + float64(i)*3
			rec := activeRec(fmt.Sprintf("wr-w%d-%02d", week, i), cost, cost*0.8)
			rec.Week = week
			records = append(records, rec)
		}
	}
	qb := activeRec("qb-one", 30, 22)
	qb.Role = domain.RoleQB
	records = append(records, qb)
	return records
}

func mustAnalyzer(t *testing.T, cfg AnalyzerConfig) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(cfg)
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	return a
}

func TestAnalyzeRole(t *testing.T) {
	a := mustAnalyzer(t, AnalyzerConfig{Bin: BinConfig{Width: 5, MinSamples: 2}})

	res := a.AnalyzeRole(analyzerRecords(), domain.RoleWR)
	if res.Role != domain.RoleWR {
		t.Errorf("expected WR analysis, got %s", res.Role)
	}
	if res.Records != 20 {
		t.Errorf("expected 20 records, got %d", res.Records)
	}
	if res.Active != 20 {
		t.Errorf("expected 20 active, got %d", res.Active)
	}
	if len(res.Weeks) != 2 || res.Weeks[0] != 5 || res.Weeks[1] != 6 {
		t.Errorf("expected weeks [5 6], got %v", res.Weeks)
	}

	// Three models at two granularities.
	if len(res.Fits) != 6 {
		t.Fatalf("expected 6 fits, got %d", len(res.Fits))
	}
	var raw, binned int
	for _, fit := range res.Fits {
		switch fit.Granularity {
		case domain.GranularityRaw:
			raw++
		case domain.GranularityBinned:
			binned++
		}
		if fit.Role != domain.RoleWR {
			t.Errorf("fit carries role %s", fit.Role)
		}
		if !fit.Valid {
			t.Errorf("%s/%s fit should be valid", fit.Granularity, fit.Model)
		}
	}
	if raw != 3 || binned != 3 {
		t.Errorf("expected 3 raw and 3 binned fits, got %d and %d", raw, binned)
	}

	// Perfectly linear data: the linear raw fit is near-exact.
	for _, fit := range res.Fits {
		if fit.Granularity == domain.GranularityRaw && fit.Model == domain.ModelLinear {
			if fit.RSquared < 0.999 {
				t.Errorf("linear raw fit R-squared = %v", fit.RSquared)
			}
		}
	}

	if res.Correlation.SampleSize != 20 {
		t.Errorf("expected correlation over 20 samples, got %d", res.Correlation.SampleSize)
	}
	if res.Correlation.R < 0.999 {
		t.Errorf("expected strong correlation, got %v", res.Correlation.R)
	}
}

func TestAnalyzeRoleFewBins(t *testing.T) {
	// A wide bin swallows everything: only one populated bin, so every
	// binned fit must come back invalid while raw fits still run.
	a := mustAnalyzer(t, AnalyzerConfig{Bin: BinConfig{Width: 1000, MinSamples: 2}})

	res := a.AnalyzeRole(analyzerRecords(), domain.RoleWR)
	for _, fit := range res.Fits {
		switch fit.Granularity {
		case domain.GranularityBinned:
			if fit.Valid {
				t.Errorf("binned %s fit should be invalid with one bin", fit.Model)
			}
		case domain.GranularityRaw:
			if !fit.Valid {
				t.Errorf("raw %s fit should stay valid", fit.Model)
			}
		}
	}
	if res.InvalidFits != 3 {
		t.Errorf("expected 3 invalid fits, got %d", res.InvalidFits)
	}
}

func TestAnalyzeRoleTopN(t *testing.T) {
	a := mustAnalyzer(t, AnalyzerConfig{
		Bin:  BinConfig{Width: 5, MinSamples: 2},
		TopN: map[domain.Role]int{domain.RoleWR: 3},
	})

	res := a.AnalyzeRole(analyzerRecords(), domain.RoleWR)
	if len(res.Top) != 3 {
		t.Fatalf("expected top 3, got %d", len(res.Top))
	}
	for i := 1; i < len(res.Top); i++ {
		if res.Top[i].Points > res.Top[i-1].Points {
			t.Fatal("top list not sorted by points")
		}
	}

	// Uncapped role keeps everything.
	uncapped := mustAnalyzer(t, AnalyzerConfig{Bin: BinConfig{Width: 5, MinSamples: 2}})
	if res := uncapped.AnalyzeRole(analyzerRecords(), domain.RoleWR); len(res.Top) != 20 {
		t.Errorf("expected 20 uncapped top records, got %d", len(res.Top))
	}
}

func TestHighPerformerTiers(t *testing.T) {
	a := mustAnalyzer(t, AnalyzerConfig{Bin: BinConfig{Width: 5, MinSamples: 2}})

	// Nineteen records at efficiency 1.0 and one far outlier. The
	// outlier lands beyond two standard deviations.
	var records []domain.CanonicalRecord
	for i := 0; i < 19; i++ {
		records = append(records, activeRec(fmt.Sprintf("base-%02d", i), 20, 20))
	}
	records = append(records, activeRec("outlier", 10, 60))

	res := a.AnalyzeRole(records, domain.RoleWR)
	if len(res.High.Elite) != 1 || res.High.Elite[0].RecordID != "outlier" {
		t.Fatalf("expected the outlier in the elite tier, got %+v", res.High.Elite)
	}
	for _, rec := range res.High.Strong {
		if rec.RecordID == "outlier" {
			t.Error("elite record duplicated in strong tier")
		}
	}
}

func TestAnalyzeAll(t *testing.T) {
	a := mustAnalyzer(t, AnalyzerConfig{Bin: BinConfig{Width: 5, MinSamples: 2}})

	analyses := a.AnalyzeAll(analyzerRecords(), nil)
	if len(analyses) != 2 {
		t.Fatalf("expected 2 roles with data, got %d", len(analyses))
	}
	// Display order puts QB before WR.
	if analyses[0].Role != domain.RoleQB || analyses[1].Role != domain.RoleWR {
		t.Errorf("unexpected role order: %s, %s", analyses[0].Role, analyses[1].Role)
	}

	only := a.AnalyzeAll(analyzerRecords(), []domain.Role{domain.RoleWR})
	if len(only) != 1 || only[0].Role != domain.RoleWR {
		t.Fatalf("expected WR only, got %d analyses", len(only))
	}
}
