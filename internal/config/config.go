// Package config loads the runtime configuration from defaults, an
// optional YAML file and YFD_-prefixed environment variables, in that
// order of precedence.
package config

import (
	"github.com/mightenyip/yfd-py-analysis/internal/dedupe"
	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/matchup"
	"github.com/mightenyip/yfd-py-analysis/internal/quality"
	"github.com/mightenyip/yfd-py-analysis/internal/value"
)

// Config is the full runtime configuration.
type Config struct {
	// LogLevel is the minimum level that is emitted.
	LogLevel string `koanf:"log_level" default:"info" validate:"oneof=trace debug info warn error"`
	// LogFormat selects console or JSON log output.
	LogFormat string `koanf:"log_format" default:"console" validate:"oneof=console json"`
	// OutputDir is where run artifacts are written.
	OutputDir string `koanf:"output_dir" default:"output" validate:"required"`

	Matchup MatchupConfig `koanf:"matchup"`
	Value   ValueConfig   `koanf:"value"`
	Dedupe  DedupeConfig  `koanf:"dedupe"`
	Quality QualityConfig `koanf:"quality"`
}

// MatchupConfig shapes the opponent multiplier curve.
type MatchupConfig struct {
	// MinMultiplier applies against the toughest opponent.
	MinMultiplier float64 `koanf:"min_multiplier" default:"0.80" validate:"gt=0,lte=1"`
	// MaxMultiplier applies against the weakest opponent.
	MaxMultiplier float64 `koanf:"max_multiplier" default:"1.35" validate:"gte=1"`
	// ToughBreakpoint is the percentile below which opponents are
	// penalized; WeakBreakpoint the percentile above which they are
	// rewarded. Between the two the multiplier is flat at 1.0.
	ToughBreakpoint float64 `koanf:"tough_breakpoint" default:"0.25" validate:"gt=0,lt=1"`
	WeakBreakpoint  float64 `koanf:"weak_breakpoint" default:"0.75" validate:"gt=0,lt=1,gtfield=ToughBreakpoint"`
}

// ValueConfig shapes the cost-versus-points study.
type ValueConfig struct {
	// BinWidth is the cost bin width in salary units.
	BinWidth float64 `koanf:"bin_width" default:"5" validate:"gt=0"`
	// MinBinSamples is the fewest records a bin needs before its stats
	// are trusted.
	MinBinSamples int `koanf:"min_bin_samples" default:"2" validate:"gte=1"`

	// Per-role caps on the top-scorer lists. Zero means unlimited.
	TopQB  int `koanf:"top_qb" default:"25" validate:"gte=0"`
	TopRB  int `koanf:"top_rb" default:"65" validate:"gte=0"`
	TopWR  int `koanf:"top_wr" default:"90" validate:"gte=0"`
	TopTE  int `koanf:"top_te" default:"45" validate:"gte=0"`
	TopDEF int `koanf:"top_def" default:"0" validate:"gte=0"`
}

// DedupeConfig selects the duplicate-collapse strategy.
type DedupeConfig struct {
	Strategy string `koanf:"strategy" default:"largest-slate" validate:"oneof=largest-slate highest-points"`
}

// QualityConfig sets the publish-gate thresholds for weekly runs.
type QualityConfig struct {
	MaxMalformedShare   float64 `koanf:"max_malformed_share" default:"0.10" validate:"gte=0,lte=1"`
	MinActive           int     `koanf:"min_active" default:"10" validate:"gte=0"`
	MaxUnavailableShare float64 `koanf:"max_unavailable_share" default:"0.25" validate:"gte=0,lte=1"`
}

// Curve builds the matchup multiplier curve from the configured shape.
func (c *Config) Curve() (matchup.Curve, error) {
	return matchup.NewCurve(
		c.Matchup.MinMultiplier,
		c.Matchup.MaxMultiplier,
		c.Matchup.ToughBreakpoint,
		c.Matchup.WeakBreakpoint,
	)
}

// AnalyzerConfig builds the value-analysis settings.
func (c *Config) AnalyzerConfig() value.AnalyzerConfig {
	return value.AnalyzerConfig{
		Bin: value.BinConfig{
			Width:      c.Value.BinWidth,
			MinSamples: c.Value.MinBinSamples,
		},
		TopN: map[domain.Role]int{
			domain.RoleQB:  c.Value.TopQB,
			domain.RoleRB:  c.Value.TopRB,
			domain.RoleWR:  c.Value.TopWR,
			domain.RoleTE:  c.Value.TopTE,
			domain.RoleDEF: c.Value.TopDEF,
		},
	}
}

// Ranking resolves the configured dedupe strategy.
func (c *Config) Ranking() (dedupe.Ranking, error) {
	return dedupe.RankingFor(c.Dedupe.Strategy)
}

// Gate builds the quality gate from the configured thresholds.
func (c *Config) Gate() *quality.Gate {
	return &quality.Gate{
		MaxMalformedShare:   c.Quality.MaxMalformedShare,
		MinActive:           c.Quality.MinActive,
		MaxUnavailableShare: c.Quality.MaxUnavailableShare,
	}
}
