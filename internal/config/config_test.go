package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "output", cfg.OutputDir)

	assert.Equal(t, 0.80, cfg.Matchup.MinMultiplier)
	assert.Equal(t, 1.35, cfg.Matchup.MaxMultiplier)
	assert.Equal(t, 0.25, cfg.Matchup.ToughBreakpoint)
	assert.Equal(t, 0.75, cfg.Matchup.WeakBreakpoint)

	assert.Equal(t, 5.0, cfg.Value.BinWidth)
	assert.Equal(t, 2, cfg.Value.MinBinSamples)
	assert.Equal(t, 25, cfg.Value.TopQB)
	assert.Equal(t, 90, cfg.Value.TopWR)
	assert.Equal(t, 0, cfg.Value.TopDEF)

	assert.Equal(t, "largest-slate", cfg.Dedupe.Strategy)

	assert.Equal(t, 0.10, cfg.Quality.MaxMalformedShare)
	assert.Equal(t, 10, cfg.Quality.MinActive)
	assert.Equal(t, 0.25, cfg.Quality.MaxUnavailableShare)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `log_level: debug
matchup:
  max_multiplier: 1.5
value:
  bin_width: 10
  top_qb: 12
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1.5, cfg.Matchup.MaxMultiplier)
	assert.Equal(t, 10.0, cfg.Value.BinWidth)
	assert.Equal(t, 12, cfg.Value.TopQB)

	// Keys the file does not mention keep their defaults.
	assert.Equal(t, 0.80, cfg.Matchup.MinMultiplier)
	assert.Equal(t, "largest-slate", cfg.Dedupe.Strategy)
}

func TestLoad_FileFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0644))
	t.Setenv("YFD_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("YFD_LOG_FORMAT", "json")
	t.Setenv("YFD_MATCHUP__MIN_MULTIPLIER", "0.7")
	t.Setenv("YFD_QUALITY__MIN_ACTIVE", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 0.7, cfg.Matchup.MinMultiplier)
	assert.Equal(t, 3, cfg.Quality.MinActive)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0644))
	t.Setenv("YFD_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, loaded, cfg)
}

func TestLoad_RejectsOutOfRangeMultiplier(t *testing.T) {
	t.Setenv("YFD_MATCHUP__MIN_MULTIPLIER", "1.4")
	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_RejectsInvertedBreakpoints(t *testing.T) {
	t.Setenv("YFD_MATCHUP__TOUGH_BREAKPOINT", "0.8")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	t.Setenv("YFD_DEDUPE__STRATEGY", "newest")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Curve(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	curve, err := cfg.Curve()
	require.NoError(t, err)

	toughest, err := curve.Multiplier(1, 32)
	require.NoError(t, err)
	assert.InDelta(t, 0.80, toughest, 1e-9)

	weakest, err := curve.Multiplier(32, 32)
	require.NoError(t, err)
	assert.InDelta(t, 1.35, weakest, 1e-9)
}

func TestConfig_AnalyzerConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	ac := cfg.AnalyzerConfig()
	assert.Equal(t, 5.0, ac.Bin.Width)
	assert.Equal(t, 2, ac.Bin.MinSamples)
	assert.Equal(t, 25, ac.TopN[domain.RoleQB])
	assert.Equal(t, 65, ac.TopN[domain.RoleRB])
	assert.Equal(t, 0, ac.TopN[domain.RoleDEF])
}

func TestConfig_Ranking(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	ranking, err := cfg.Ranking()
	require.NoError(t, err)
	assert.NotNil(t, ranking)
}

func TestConfig_Gate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	gate := cfg.Gate()
	assert.Equal(t, 0.10, gate.MaxMalformedShare)
	assert.Equal(t, 10, gate.MinActive)
	assert.Equal(t, 0.25, gate.MaxUnavailableShare)
}
