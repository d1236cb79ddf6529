// Package quality gates a weekly run on its data health before the
// artifacts are treated as publishable.
package quality

import "fmt"

// Verdicts for a weekly run.
const (
	VerdictPublish = "PUBLISH"
	VerdictHold    = "HOLD"
)

// Criterion is one evaluated check.
type Criterion struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// Input carries the run counters the gate inspects.
type Input struct {
	RowsIn             int
	Malformed          int
	Canonical          int
	Active             int
	Scored             int
	MatchupUnavailable int
}

// Result is the gate outcome: the individual checks plus the verdict.
// The verdict is HOLD if any check fails.
type Result struct {
	Checks  []Criterion
	Verdict string
}

// Gate evaluates run health against configurable thresholds.
type Gate struct {
	// MaxMalformedShare is the highest tolerable fraction of input rows
	// dropped as malformed.
	MaxMalformedShare float64
	// MinActive is the smallest publishable number of active records.
	MinActive int
	// MaxUnavailableShare is the highest tolerable fraction of scored
	// records with an unresolved matchup.
	MaxUnavailableShare float64
}

// NewGate returns a gate with the default thresholds.
func NewGate() *Gate {
	return &Gate{
		MaxMalformedShare:   0.10,
		MinActive:           10,
		MaxUnavailableShare: 0.25,
	}
}

// Evaluate checks one run's counters. All checks always run so the
// report shows every failure, not just the first.
func (g *Gate) Evaluate(input Input) *Result {
	checks := make([]Criterion, 3)

	malformedShare := 0.0
	if input.RowsIn > 0 {
		malformedShare = float64(input.Malformed) / float64(input.RowsIn)
	}
	checks[0] = Criterion{
		Name:      "Malformed rows",
		Threshold: fmt.Sprintf("<= %.0f%%", g.MaxMalformedShare*100),
		Actual:    fmt.Sprintf("%.1f%% (%d of %d)", malformedShare*100, input.Malformed, input.RowsIn),
		Pass:      malformedShare <= g.MaxMalformedShare,
	}

	checks[1] = Criterion{
		Name:      "Active records",
		Threshold: fmt.Sprintf(">= %d", g.MinActive),
		Actual:    fmt.Sprintf("%d", input.Active),
		Pass:      input.Active >= g.MinActive,
	}

	unavailableShare := 0.0
	if input.Scored > 0 {
		unavailableShare = float64(input.MatchupUnavailable) / float64(input.Scored)
	}
	checks[2] = Criterion{
		Name:      "Matchup coverage",
		Threshold: fmt.Sprintf("<= %.0f%% unavailable", g.MaxUnavailableShare*100),
		Actual:    fmt.Sprintf("%.1f%% (%d of %d)", unavailableShare*100, input.MatchupUnavailable, input.Scored),
		Pass:      unavailableShare <= g.MaxUnavailableShare,
	}

	verdict := VerdictPublish
	for _, c := range checks {
		if !c.Pass {
			verdict = VerdictHold
			break
		}
	}

	return &Result{Checks: checks, Verdict: verdict}
}
