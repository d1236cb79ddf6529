// Package pipeline orchestrates the end-to-end runs: normalization,
// duplicate collapse, storage, matchup scoring, the quality gate and
// report generation.
package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mightenyip/yfd-py-analysis/internal/dedupe"
	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/matchup"
	"github.com/mightenyip/yfd-py-analysis/internal/normalize"
	"github.com/mightenyip/yfd-py-analysis/internal/quality"
	"github.com/mightenyip/yfd-py-analysis/internal/reporting"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/csvfile"
)

// ErrInputUnavailable reports that a run had nothing to process.
var ErrInputUnavailable = errors.New("input unavailable")

// topAdjustedCount caps the top-scores table of the weekly report.
const topAdjustedCount = 15

// WeeklyPipeline runs one week end to end and writes the report
// artifacts.
type WeeklyPipeline struct {
	recordStore   storage.CanonicalRecordStore
	strengthStore storage.StrengthEntryStore
	curve         matchup.Curve
	gate          *quality.Gate
	deduper       *dedupe.Deduper
	outputDir     string
	clock         func() time.Time
	log           zerolog.Logger
}

// WeeklyOptions configures a weekly pipeline.
type WeeklyOptions struct {
	RecordStore   storage.CanonicalRecordStore
	StrengthStore storage.StrengthEntryStore

	// Curve overrides the default multiplier curve when non-nil.
	Curve *matchup.Curve
	// Gate overrides the default quality thresholds when non-nil.
	Gate *quality.Gate
	// Ranking overrides the largest-slate duplicate ranking when
	// non-nil.
	Ranking dedupe.Ranking

	OutputDir string
	Logger    zerolog.Logger
}

// NewWeekly creates a weekly pipeline.
func NewWeekly(opts WeeklyOptions) *WeeklyPipeline {
	curve := matchup.DefaultCurve()
	if opts.Curve != nil {
		curve = *opts.Curve
	}
	gate := opts.Gate
	if gate == nil {
		gate = quality.NewGate()
	}
	return &WeeklyPipeline{
		recordStore:   opts.RecordStore,
		strengthStore: opts.StrengthStore,
		curve:         curve,
		gate:          gate,
		deduper:       dedupe.New(dedupe.WithRanking(opts.Ranking)),
		outputDir:     opts.OutputDir,
		clock:         func() time.Time { return time.Now().UTC() },
		log:           opts.Logger,
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *WeeklyPipeline) WithClock(clock func() time.Time) *WeeklyPipeline {
	p.clock = clock
	return p
}

// RunResult carries the run identifiers and accounting.
type RunResult struct {
	RunID       string
	DataVersion string
	Summary     Summary
	Verdict     string
	ReportPath  string
}

// Run executes one week's pipeline over raw rows and writes three
// artifacts to the output directory:
//   - week<N>_canonical.csv
//   - week<N>_adjusted.csv
//   - week<N>_report.md
//
// The data version is the hash of the canonical CSV, so two runs over
// the same input report the same version.
func (p *WeeklyPipeline) Run(ctx context.Context, rows []domain.RawRow, week int) (*RunResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no raw rows for week %d", ErrInputUnavailable, week)
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	generatedAt := p.clock()

	normRes := normalize.NewEngine(p.log).NormalizeRows(rows, week)

	dedupRes, err := p.deduper.Deduplicate(normRes.Records, week)
	if err != nil {
		return nil, err
	}

	stored := make([]*domain.CanonicalRecord, len(dedupRes.Canonical))
	for i := range dedupRes.Canonical {
		stored[i] = &dedupRes.Canonical[i]
	}
	if err := p.recordStore.InsertBulk(ctx, stored); err != nil {
		return nil, fmt.Errorf("store canonical records: %w", err)
	}

	entries, err := p.strengthStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: opponent strength table is empty", ErrInputUnavailable)
	}
	table, err := matchup.NewTable(derefEntries(entries))
	if err != nil {
		return nil, err
	}
	scoreRes := matchup.NewScorer(table, p.curve).ScoreAll(dedupRes.Canonical)

	// The canonical CSV is written once and doubles as the data
	// version source.
	var buf bytes.Buffer
	if err := csvfile.WriteCanonical(&buf, stored); err != nil {
		return nil, err
	}
	dataVersion := shortHash(buf.Bytes())

	canonicalPath := filepath.Join(p.outputDir, fmt.Sprintf("week%d_canonical.csv", week))
	if err := os.WriteFile(canonicalPath, buf.Bytes(), 0644); err != nil {
		return nil, err
	}

	adjRows := reporting.BuildAdjustedRows(scoreRes.Records)
	adjPath := filepath.Join(p.outputDir, fmt.Sprintf("week%d_adjusted.csv", week))
	if err := os.WriteFile(adjPath, []byte(reporting.RenderAdjustedCSV(adjRows)), 0644); err != nil {
		return nil, err
	}

	active := 0
	for i := range dedupRes.Canonical {
		if dedupRes.Canonical[i].Active {
			active++
		}
	}
	summary := Summary{
		Week:                week,
		RowsIn:              len(rows),
		Malformed:           normRes.Malformed,
		MalformedReasons:    normRes.Reasons,
		DuplicatesCollapsed: dedupRes.Duplicates,
		Conflicts:           dedupRes.Conflicts,
		Canonical:           len(dedupRes.Canonical),
		Active:              active,
		Inactive:            len(dedupRes.Canonical) - active,
		Scored:              len(scoreRes.Records),
		MatchupUnavailable:  scoreRes.Unavailable,
	}

	gateRes := p.gate.Evaluate(quality.Input{
		RowsIn:             summary.RowsIn,
		Malformed:          summary.Malformed,
		Canonical:          summary.Canonical,
		Active:             summary.Active,
		Scored:             summary.Scored,
		MatchupUnavailable: summary.MatchupUnavailable,
	})

	roleStats, err := reporting.NewGenerator(p.recordStore).
		WithClock(p.clock).
		RoleStatsForWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	report := &reporting.WeeklyReport{
		GeneratedAt: generatedAt,
		Week:        week,
		RunID:       runID,
		DataVersion: dataVersion,
		Summary: reporting.RunSummaryRow{
			RowsIn:              summary.RowsIn,
			Malformed:           summary.Malformed,
			MalformedReasons:    summary.MalformedReasons,
			DuplicatesCollapsed: summary.DuplicatesCollapsed,
			Conflicts:           summary.Conflicts,
			Canonical:           summary.Canonical,
			Active:              summary.Active,
			Inactive:            summary.Inactive,
			Scored:              summary.Scored,
			MatchupUnavailable:  summary.MatchupUnavailable,
		},
		Quality:     qualitySection(gateRes),
		RoleStats:   roleStats,
		TopAdjusted: reporting.TopAdjustedRows(adjRows, topAdjustedCount),
		Unavailable: reporting.UnavailableNames(adjRows),
	}
	reportPath := filepath.Join(p.outputDir, fmt.Sprintf("week%d_report.md", week))
	if err := os.WriteFile(reportPath, []byte(reporting.RenderWeeklyMarkdown(report)), 0644); err != nil {
		return nil, err
	}

	summary.LogTo(p.log)

	return &RunResult{
		RunID:       runID,
		DataVersion: dataVersion,
		Summary:     summary,
		Verdict:     gateRes.Verdict,
		ReportPath:  reportPath,
	}, nil
}

// shortHash returns the first 12 hex characters of the SHA256 of data.
func shortHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:12]
}

func derefEntries(entries []*domain.OpponentStrengthEntry) []domain.OpponentStrengthEntry {
	out := make([]domain.OpponentStrengthEntry, len(entries))
	for i, e := range entries {
		out[i] = *e
	}
	return out
}

func qualitySection(res *quality.Result) *reporting.QualitySection {
	checks := make([]reporting.QualityCheckRow, len(res.Checks))
	for i, c := range res.Checks {
		checks[i] = reporting.QualityCheckRow{
			Name:      c.Name,
			Threshold: c.Threshold,
			Actual:    c.Actual,
			Pass:      c.Pass,
		}
	}
	return &reporting.QualitySection{Checks: checks, Verdict: res.Verdict}
}
