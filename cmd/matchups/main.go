// Package main previews an upcoming week: it rates every role of both
// sides of each scheduled game against the opponent strength table.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mightenyip/yfd-py-analysis/internal/config"
	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/logging"
	"github.com/mightenyip/yfd-py-analysis/internal/matchup"
	"github.com/mightenyip/yfd-py-analysis/internal/pipeline"
	"github.com/mightenyip/yfd-py-analysis/internal/reporting"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/csvfile"
)

// fixturePairs schedules every team of the fixture strength table.
const fixturePairs = "PHI@NYG,DAL@WAS,SF@SEA,MIA@BUF"

func main() {
	strengthPath := flag.String("strength", "", "Opponent strength table CSV")
	pairsArg := flag.String("pairs", "", "Scheduled games as AWAY@HOME, comma separated")
	week := flag.Int("week", 0, "Week the preview is for")
	configPath := flag.String("config", "", "Config file (YAML); defaults and YFD_ env vars apply regardless")
	outputDir := flag.String("output-dir", "", "Output directory (overrides config)")
	useFixtures := flag.Bool("use-fixtures", false, "Run on built-in demo data instead of input files")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if *useFixtures {
		if *week == 0 {
			*week = pipeline.FixtureWeek + 1
		}
		if *pairsArg == "" {
			*pairsArg = fixturePairs
		}
	}
	if !*useFixtures && *strengthPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -strength is required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use -use-fixtures to run with demo data instead")
		os.Exit(1)
	}
	if *pairsArg == "" {
		fmt.Fprintln(os.Stderr, "Error: -pairs is required (for example PHI@NYG,DAL@WAS)")
		os.Exit(1)
	}
	if *week <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -week must be a positive week number")
		os.Exit(1)
	}
	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}

	pairs, err := matchup.ParseGamePairs(*pairsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	entries, err := loadEntries(*useFixtures, *strengthPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load strength table")
	}
	table, err := matchup.NewTable(entries)
	if err != nil {
		log.Fatal().Err(err).Msg("build strength table")
	}
	curve, err := cfg.Curve()
	if err != nil {
		log.Fatal().Err(err).Msg("build multiplier curve")
	}

	rows := matchup.BuildPreview(table, curve, pairs)
	report := reporting.BuildPreviewReport(rows, *week, time.Now().UTC())

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("create output directory")
	}
	mdPath := filepath.Join(*outputDir, fmt.Sprintf("week%d_preview.md", *week))
	if err := os.WriteFile(mdPath, []byte(reporting.RenderPreviewMarkdown(report)), 0644); err != nil {
		log.Fatal().Err(err).Msg("write preview markdown")
	}
	csvPath := filepath.Join(*outputDir, fmt.Sprintf("week%d_preview.csv", *week))
	if err := os.WriteFile(csvPath, []byte(reporting.RenderPreviewCSV(report.Rows)), 0644); err != nil {
		log.Fatal().Err(err).Msg("write preview CSV")
	}

	unavailable := 0
	for _, row := range rows {
		if row.Unavailable {
			unavailable++
		}
	}
	fmt.Printf("Week %d preview rated %d matchups (%d unavailable):\n", *week, len(rows), unavailable)
	fmt.Printf("  - %s\n", mdPath)
	fmt.Printf("  - %s\n", csvPath)
}

// loadEntries returns the strength entries from the built-in fixtures
// or from a CSV file.
func loadEntries(useFixtures bool, path string) ([]domain.OpponentStrengthEntry, error) {
	ptrs := pipeline.FixtureStrengthEntries()
	if !useFixtures {
		var err error
		ptrs, err = csvfile.LoadStrengthTable(path)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]domain.OpponentStrengthEntry, len(ptrs))
	for i, e := range ptrs {
		entries[i] = *e
	}
	return entries, nil
}
