package stats

import (
	"math"
	"slices"

	mstats "github.com/aclements/go-moremath/stats"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return mstats.Mean(values)
}

// StdDev returns the sample standard deviation (n-1 denominator) of values.
// Fewer than two values have no spread and yield 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd := mstats.StdDev(values)
	if math.IsNaN(sd) {
		return 0
	}
	return sd
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// QuantileSorted returns the p-quantile of an ascending slice using linear interpolation
// between closest ranks (Hyndman & Fan type 7).
func QuantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 || n < 2 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*(h-float64(lo))
}

// Breakpoints returns the classes-1 interior quantiles that split values into classes
// groups of equal probability mass. The input is not modified.
func Breakpoints(values []float64, classes int) []float64 {
	if len(values) == 0 || classes < 2 {
		return nil
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	out := make([]float64, classes-1)
	for i := 1; i < classes; i++ {
		out[i-1] = QuantileSorted(sorted, float64(i)/float64(classes))
	}
	return out
}
