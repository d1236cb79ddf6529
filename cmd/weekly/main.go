// Package main runs one week end to end: normalize scraped rows,
// collapse duplicates, score matchups and write the week's artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mightenyip/yfd-py-analysis/internal/config"
	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/logging"
	"github.com/mightenyip/yfd-py-analysis/internal/pipeline"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/csvfile"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/memory"
	"github.com/mightenyip/yfd-py-analysis/internal/verify"
)

func main() {
	rowsPath := flag.String("rows", "", "Scraped rows CSV for the week")
	strengthPath := flag.String("strength", "", "Opponent strength table CSV")
	week := flag.Int("week", 0, "Week number the rows belong to")
	configPath := flag.String("config", "", "Config file (YAML); defaults and YFD_ env vars apply regardless")
	outputDir := flag.String("output-dir", "", "Output directory (overrides config)")
	useFixtures := flag.Bool("use-fixtures", false, "Run on built-in demo data instead of input files")
	runVerify := flag.Bool("verify", false, "Re-read the written canonical CSV and compare it against the stored records")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if *useFixtures && *week == 0 {
		*week = pipeline.FixtureWeek
	}
	if !*useFixtures && (*rowsPath == "" || *strengthPath == "") {
		fmt.Fprintln(os.Stderr, "Error: -rows and -strength are required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use -use-fixtures to run with demo data instead")
		os.Exit(1)
	}
	if *week <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -week must be a positive week number")
		os.Exit(1)
	}
	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}

	ctx := context.Background()

	recordStore := memory.NewCanonicalRecordStore()
	strengthStore := memory.NewStrengthEntryStore()

	rows, err := loadInput(ctx, strengthStore, *useFixtures, *rowsPath, *strengthPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load input")
	}

	curve, err := cfg.Curve()
	if err != nil {
		log.Fatal().Err(err).Msg("build multiplier curve")
	}
	ranking, err := cfg.Ranking()
	if err != nil {
		log.Fatal().Err(err).Msg("resolve dedupe strategy")
	}

	p := pipeline.NewWeekly(pipeline.WeeklyOptions{
		RecordStore:   recordStore,
		StrengthStore: strengthStore,
		Curve:         &curve,
		Gate:          cfg.Gate(),
		Ranking:       ranking,
		OutputDir:     *outputDir,
		Logger:        log,
	})

	result, err := p.Run(ctx, rows, *week)
	if err != nil {
		log.Fatal().Err(err).Int("week", *week).Msg("weekly run failed")
	}

	if *runVerify {
		if err := verifyRun(ctx, recordStore, *outputDir, *week); err != nil {
			log.Fatal().Err(err).Msg("verification failed")
		}
		fmt.Println("Verification passed: stored records match the written canonical CSV")
	}

	fmt.Printf("Week %d run %s (data version %s) finished with verdict %s:\n",
		*week, result.RunID, result.DataVersion, result.Verdict)
	fmt.Printf("  - %s/week%d_canonical.csv\n", *outputDir, *week)
	fmt.Printf("  - %s/week%d_adjusted.csv\n", *outputDir, *week)
	fmt.Printf("  - %s\n", result.ReportPath)
}

// loadInput fills the strength store and returns the raw rows, either
// from the built-in fixtures or from the input files.
func loadInput(ctx context.Context, strength storage.StrengthEntryStore, useFixtures bool, rowsPath, strengthPath string) ([]domain.RawRow, error) {
	if useFixtures {
		if err := strength.InsertBulk(ctx, pipeline.FixtureStrengthEntries()); err != nil {
			return nil, err
		}
		return pipeline.FixtureRawRows(), nil
	}

	entries, err := csvfile.LoadStrengthTable(strengthPath)
	if err != nil {
		return nil, err
	}
	if err := strength.InsertBulk(ctx, entries); err != nil {
		return nil, err
	}
	return csvfile.LoadRawRows(rowsPath)
}

// verifyRun re-reads the canonical CSV written by the run and compares
// it against the records the store holds for the week.
func verifyRun(ctx context.Context, records storage.CanonicalRecordStore, outputDir string, week int) error {
	path := filepath.Join(outputDir, fmt.Sprintf("week%d_canonical.csv", week))
	fromFile, err := csvfile.LoadCanonical(path)
	if err != nil {
		return err
	}
	stored, err := records.GetByWeek(ctx, week)
	if err != nil {
		return err
	}

	report := verify.CompareDatasets(stored, fromFile)
	if !report.Clean() {
		return fmt.Errorf("%d divergent, %d missing, %d extra of %d records",
			report.Divergent, len(report.MissingIDs), len(report.ExtraIDs), report.Total)
	}
	return nil
}
