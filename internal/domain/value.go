package domain

// Granularity selects which data a model was fitted on.
type Granularity string

const (
	GranularityRaw    Granularity = "RAW"    // per-record cost/points pairs
	GranularityBinned Granularity = "BINNED" // bin midpoint / bin mean pairs
)

// ModelFamily identifies one polynomial model of points versus cost.
type ModelFamily string

const (
	ModelLinear    ModelFamily = "LINEAR"
	ModelQuadratic ModelFamily = "QUADRATIC"
	ModelCubic     ModelFamily = "CUBIC"
)

// AllModels returns the fitted model families in ascending degree order.
func AllModels() []ModelFamily {
	return []ModelFamily{ModelLinear, ModelQuadratic, ModelCubic}
}

// Degree returns the polynomial degree of the model family.
func (m ModelFamily) Degree() int {
	switch m {
	case ModelQuadratic:
		return 2
	case ModelCubic:
		return 3
	default:
		return 1
	}
}

// ValueBin is one contiguous cost band [Lo, Hi) with aggregate
// statistics over the active records inside it. Statistics of an empty
// bin are NaN, never zero.
type ValueBin struct {
	Lo             float64  // inclusive lower cost edge
	Hi             float64  // exclusive upper cost edge
	Count          int      // active records in the bin
	MeanPoints     float64  // NaN when Count == 0
	MeanCost       float64  // NaN when Count == 0
	MeanEfficiency float64  // MeanPoints / MeanCost, NaN when undefined
	Members        []string // record IDs, sorted
	LowConfidence  bool     // Count below the configured minimum
}

// Midpoint returns the center of the bin's cost range.
func (b *ValueBin) Midpoint() float64 {
	return (b.Lo + b.Hi) / 2
}

// FitResult is one polynomial fit of points as a function of cost.
type FitResult struct {
	Role         Role
	Granularity  Granularity
	Model        ModelFamily
	Coefficients []float64 // ascending order: c0 + c1*x + c2*x^2 + ...
	RSquared     float64   // coefficient of determination
	PValue       *float64  // two-sided t test on the highest-order coefficient, nil when not computable
	SampleSize   int       // points the fit was requested over
	Valid        bool      // false when SampleSize does not exceed the parameter count
}
