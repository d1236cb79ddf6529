// Package main runs the cost-versus-points study over stored canonical
// records and writes the value report artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mightenyip/yfd-py-analysis/internal/config"
	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/logging"
	"github.com/mightenyip/yfd-py-analysis/internal/pipeline"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/csvfile"
	"github.com/mightenyip/yfd-py-analysis/internal/storage/memory"
)

func main() {
	canonicalPaths := flag.String("canonical", "", "Comma-separated canonical record CSVs, one per week")
	roleFilter := flag.String("roles", "", "Comma-separated roles to study (default all)")
	weekFilter := flag.String("weeks", "", "Comma-separated weeks to study (default all)")
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

	if !*useFixtures && *canonicalPaths == "" {
		fmt.Fprintln(os.Stderr, "Error: -canonical is required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use -use-fixtures to run with demo data instead")
		os.Exit(1)
	}
	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}

	roles, err := parseRoles(*roleFilter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	weeks, err := parseWeeks(*weekFilter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	recordStore := memory.NewCanonicalRecordStore()
	if err := loadRecords(ctx, recordStore, *useFixtures, *canonicalPaths); err != nil {
		log.Fatal().Err(err).Msg("load canonical records")
	}

	p, err := pipeline.NewValue(pipeline.ValueOptions{
		RecordStore: recordStore,
		Analyzer:    cfg.AnalyzerConfig(),
		OutputDir:   *outputDir,
		Logger:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configure value pipeline")
	}

	result, err := p.Run(ctx, weeks, roles)
	if err != nil {
		log.Fatal().Err(err).Msg("value run failed")
	}

	fmt.Printf("Value run %s (data version %s) studied %d records across %d roles:\n",
		result.RunID, result.DataVersion, result.Summary.Records, result.Summary.Roles)
	fmt.Printf("  - %s\n", result.ReportPath)
	fmt.Printf("  - %s/value_bins.csv\n", *outputDir)
	fmt.Printf("  - %s/value_fits.csv\n", *outputDir)
}

// loadRecords fills the record store from the built-in fixtures or from
// one or more canonical CSVs.
func loadRecords(ctx context.Context, records storage.CanonicalRecordStore, useFixtures bool, paths string) error {
	if useFixtures {
		return records.InsertBulk(ctx, pipeline.FixtureCanonicalRecords())
	}

	for _, path := range strings.Split(paths, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		loaded, err := csvfile.LoadCanonical(path)
		if err != nil {
			return err
		}
		if err := records.InsertBulk(ctx, loaded); err != nil {
			return fmt.Errorf("store %s: %w", path, err)
		}
	}
	return nil
}

func parseRoles(s string) ([]domain.Role, error) {
	if strings.TrimSpace(s) == "" {
		return domain.AllRoles(), nil
	}
	var roles []domain.Role
	for _, part := range strings.Split(s, ",") {
		role := domain.Role(strings.ToUpper(strings.TrimSpace(part)))
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("unknown role %q", part)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func parseWeeks(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var weeks []int
	for _, part := range strings.Split(s, ",") {
		week, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || week <= 0 {
			return nil, fmt.Errorf("week %q is not a positive number", part)
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}
