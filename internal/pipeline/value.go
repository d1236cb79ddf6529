package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/reporting"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/csvfile"
	"github.com/mightenyip/yfd-py-analysis/internal/value"
)

// ValuePipeline runs the cost-versus-points study over stored records
// and writes the value report artifacts.
type ValuePipeline struct {
	recordStore storage.CanonicalRecordStore
	analyzer    *value.Analyzer
	binWidth    float64
	outputDir   string
	clock       func() time.Time
	log         zerolog.Logger
}

// ValueOptions configures a value pipeline.
type ValueOptions struct {
	RecordStore storage.CanonicalRecordStore
	Analyzer    value.AnalyzerConfig
	OutputDir   string
	Logger      zerolog.Logger
}

// NewValue validates the analyzer configuration and creates a value
// pipeline.
func NewValue(opts ValueOptions) (*ValuePipeline, error) {
	analyzer, err := value.NewAnalyzer(opts.Analyzer)
	if err != nil {
		return nil, err
	}
	return &ValuePipeline{
		recordStore: opts.RecordStore,
		analyzer:    analyzer,
		binWidth:    opts.Analyzer.Bin.Width,
		outputDir:   opts.OutputDir,
		clock:       func() time.Time { return time.Now().UTC() },
		log:         opts.Logger,
	}, nil
}

// WithClock sets a custom clock function for deterministic output.
func (p *ValuePipeline) WithClock(clock func() time.Time) *ValuePipeline {
	p.clock = clock
	return p
}

// ValueRunResult carries the run identifiers and accounting.
type ValueRunResult struct {
	RunID       string
	DataVersion string
	Summary     ValueSummary
	ReportPath  string
}

// Run studies the stored records of the given weeks (all weeks when
// empty) for the given roles (all roles when empty) and writes three
// artifacts to the output directory:
//   - value_report.md
//   - value_bins.csv
//   - value_fits.csv
func (p *ValuePipeline) Run(ctx context.Context, weeks []int, roles []domain.Role) (*ValueRunResult, error) {
	stored, err := p.recordStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	records := filterWeeks(stored, weeks)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no stored records to analyze", ErrInputUnavailable)
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, err
	}

	runID := uuid.NewString()

	analyses := p.analyzer.AnalyzeAll(records, roles)

	// The data version covers exactly the records analyzed.
	var buf bytes.Buffer
	ptrs := make([]*domain.CanonicalRecord, len(records))
	for i := range records {
		ptrs[i] = &records[i]
	}
	if err := csvfile.WriteCanonical(&buf, ptrs); err != nil {
		return nil, err
	}

	meta := reporting.ValueMeta{
		GeneratedAt: p.clock(),
		RunID:       runID,
		DataVersion: shortHash(buf.Bytes()),
		Weeks:       distinctWeeks(records),
		BinWidth:    p.binWidth,
	}
	report := reporting.BuildValueReport(analyses, meta)

	reportPath := filepath.Join(p.outputDir, "value_report.md")
	if err := os.WriteFile(reportPath, []byte(reporting.RenderValueMarkdown(report)), 0644); err != nil {
		return nil, err
	}
	binsPath := filepath.Join(p.outputDir, "value_bins.csv")
	if err := os.WriteFile(binsPath, []byte(reporting.RenderBinsCSV(report.Roles)), 0644); err != nil {
		return nil, err
	}
	fitsPath := filepath.Join(p.outputDir, "value_fits.csv")
	if err := os.WriteFile(fitsPath, []byte(reporting.RenderFitsCSV(report.Roles)), 0644); err != nil {
		return nil, err
	}

	summary := ValueSummary{
		Weeks:   meta.Weeks,
		Roles:   len(analyses),
		Records: len(records),
	}
	for i := range analyses {
		summary.Active += analyses[i].Active
		summary.InDomain += analyses[i].Binning.InDomain
		summary.OutOfDomain += analyses[i].Binning.OutOfDomain
		summary.InvalidFits += analyses[i].InvalidFits
	}
	summary.LogTo(p.log)

	return &ValueRunResult{
		RunID:       runID,
		DataVersion: meta.DataVersion,
		Summary:     summary,
		ReportPath:  reportPath,
	}, nil
}

// filterWeeks keeps records belonging to the given weeks. An empty
// week list keeps everything.
func filterWeeks(stored []*domain.CanonicalRecord, weeks []int) []domain.CanonicalRecord {
	keep := make(map[int]struct{}, len(weeks))
	for _, w := range weeks {
		keep[w] = struct{}{}
	}
	out := make([]domain.CanonicalRecord, 0, len(stored))
	for _, r := range stored {
		if len(keep) > 0 {
			if _, ok := keep[r.Week]; !ok {
				continue
			}
		}
		out = append(out, *r)
	}
	return out
}

func distinctWeeks(records []domain.CanonicalRecord) []int {
	seen := make(map[int]struct{})
	var weeks []int
	for _, r := range records {
		if _, ok := seen[r.Week]; ok {
			continue
		}
		seen[r.Week] = struct{}{}
		weeks = append(weeks, r.Week)
	}
	sort.Ints(weeks)
	return weeks
}
