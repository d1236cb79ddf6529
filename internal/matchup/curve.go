// Package matchup scores canonical records against opponent defensive
// strength. Opponent rank is mapped through a piecewise-linear curve to
// a scoring multiplier; records whose opponent cannot be resolved are
// flagged unavailable rather than silently passed through.
package matchup

import (
	"errors"
	"fmt"
)

// ErrInvalidCurve marks a curve configuration that cannot produce
// sane multipliers.
var ErrInvalidCurve = errors.New("invalid multiplier curve")

// Curve maps an opponent's percentile rank to a scoring multiplier.
// Percentile 0 is the toughest opponent and maps to Min; percentile 1
// is the weakest and maps to Max. Between the breakpoints the
// multiplier is flat at 1.0.
type Curve struct {
	// Min is the multiplier against the toughest opponent, in (0, 1].
	Min float64
	// Max is the multiplier against the weakest opponent, at least 1.
	Max float64
	// ToughBreak is the percentile below which opponents are penalized.
	ToughBreak float64
	// WeakBreak is the percentile above which opponents are rewarded.
	WeakBreak float64
}

// NewCurve validates and returns a multiplier curve.
func NewCurve(min, max, toughBreak, weakBreak float64) (Curve, error) {
	if min <= 0 || min > 1 {
		return Curve{}, fmt.Errorf("%w: min multiplier %v outside (0, 1]", ErrInvalidCurve, min)
	}
	if max < 1 {
		return Curve{}, fmt.Errorf("%w: max multiplier %v below 1", ErrInvalidCurve, max)
	}
	if toughBreak <= 0 || toughBreak >= 1 {
		return Curve{}, fmt.Errorf("%w: tough breakpoint %v outside (0, 1)", ErrInvalidCurve, toughBreak)
	}
	if weakBreak <= 0 || weakBreak >= 1 {
		return Curve{}, fmt.Errorf("%w: weak breakpoint %v outside (0, 1)", ErrInvalidCurve, weakBreak)
	}
	if toughBreak >= weakBreak {
		return Curve{}, fmt.Errorf("%w: tough breakpoint %v not below weak breakpoint %v",
			ErrInvalidCurve, toughBreak, weakBreak)
	}
	return Curve{Min: min, Max: max, ToughBreak: toughBreak, WeakBreak: weakBreak}, nil
}

// DefaultCurve returns the standard curve: 0.80 against the toughest
// opponent, 1.35 against the weakest, flat through the middle half.
func DefaultCurve() Curve {
	c, err := NewCurve(0.80, 1.35, 0.25, 0.75)
	if err != nil {
		panic(err)
	}
	return c
}

// Multiplier computes the scoring multiplier for an opponent ranked
// rank out of teams, where rank 1 is the toughest defense. teams must
// be at least 2 so the percentile is well defined.
func (c Curve) Multiplier(rank, teams int) (float64, error) {
	if teams < 2 {
		return 0, fmt.Errorf("%w: need at least 2 teams, got %d", ErrInvalidCurve, teams)
	}
	if rank < 1 || rank > teams {
		return 0, fmt.Errorf("%w: rank %d outside 1..%d", ErrInvalidCurve, rank, teams)
	}

	p := float64(rank-1) / float64(teams-1)
	switch {
	case p < c.ToughBreak:
		return c.Min + (1-c.Min)*(p/c.ToughBreak), nil
	case p > c.WeakBreak:
		return 1 + (c.Max-1)*((p-c.WeakBreak)/(1-c.WeakBreak)), nil
	default:
		return 1.0, nil
	}
}
