package reporting

import (
	"time"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// GeneratorVersion identifies the report generator. Bumped when the
// report layout or computation changes.
const GeneratorVersion = "1.0.0"

// WeeklyReport represents one week's scoring report.
type WeeklyReport struct {
	// Metadata
	GeneratedAt time.Time
	Week        int
	RunID       string
	DataVersion string // sha256 of the canonical CSV artifact

	// Run accounting
	Summary RunSummaryRow

	// Quality gate outcome
	Quality *QualitySection

	// Per-role aggregates
	RoleStats []RoleStatRow

	// Highest adjusted scores of the week
	TopAdjusted []AdjustedRow

	// Names whose matchup could not be resolved
	Unavailable []string
}

// RunSummaryRow carries the per-run counters.
type RunSummaryRow struct {
	RowsIn              int
	Malformed           int
	MalformedReasons    map[string]int
	DuplicatesCollapsed int
	Conflicts           int
	Canonical           int
	Active              int
	Inactive            int
	Scored              int
	MatchupUnavailable  int
}

// QualitySection contains the gate checks and verdict.
type QualitySection struct {
	Checks  []QualityCheckRow
	Verdict string
}

// QualityCheckRow represents one gate criterion.
type QualityCheckRow struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// RoleStatRow aggregates one role for one week. Means cover active
// records only.
type RoleStatRow struct {
	Role           domain.Role
	Records        int
	Active         int
	MeanPoints     float64
	MeanCost       float64
	MeanEfficiency float64 // mean points over mean cost
}

// AdjustedRow is one matchup-adjusted record.
type AdjustedRow struct {
	RecordID     string
	Name         string
	Role         domain.Role
	Team         string
	Opponent     string
	Cost         float64
	Points       float64
	OpponentRank int
	Multiplier   *float64 // nil when the matchup is unavailable
	Adjusted     *float64
	Rating       string
	Unavailable  bool
	Active       bool
	Week         int
}

// ValueReport represents the cost-versus-points study.
type ValueReport struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string
	DataVersion string
	Weeks       []int
	BinWidth    float64

	// Per-role sections in display order
	Roles []RoleValueSection
}

// RoleValueSection is one role's slice of the value report.
type RoleValueSection struct {
	Role        domain.Role
	Records     int
	Active      int
	InDomain    int
	OutOfDomain int

	Bins []BinRow
	Best *BinRow

	Fits        []FitRow
	Correlation *CorrelationRow

	// Efficiency tiers
	HighMean   float64
	HighStddev float64
	Elite      []PerformerRow
	Strong     []PerformerRow

	// Top scorers, capped per configuration
	Top []PerformerRow
}

// BinRow is one cost bin.
type BinRow struct {
	Lo             float64
	Hi             float64
	Count          int
	MeanPoints     float64
	MeanCost       float64
	MeanEfficiency float64
	LowConfidence  bool
}

// FitRow is one fitted model.
type FitRow struct {
	Granularity  domain.Granularity
	Model        domain.ModelFamily
	SampleSize   int
	Coefficients []float64 // ascending powers, nil for invalid fits
	RSquared     float64
	PValue       *float64
	Quality      string // R-squared grade, empty for invalid fits
	Valid        bool
}

// CorrelationRow is the cost-points correlation for a role.
type CorrelationRow struct {
	R          float64
	PValue     *float64
	SampleSize int
}

// PerformerRow is one record in a performer list.
type PerformerRow struct {
	Name       string
	Team       string
	Cost       float64
	Points     float64
	Efficiency float64
	Week       int
}

// PreviewReport rates the matchups of an upcoming slate.
type PreviewReport struct {
	GeneratedAt time.Time
	Week        int
	Rows        []PreviewRow
}

// PreviewRow is one team-role matchup of the preview.
type PreviewRow struct {
	Game          string
	Team          string
	Opponent      string
	Role          domain.Role
	OpponentRank  int
	PointsAllowed float64
	Multiplier    *float64
	Rating        string
	Unavailable   bool
}
