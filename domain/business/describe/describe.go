package describe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary struct with the descriptive statistics of a sample
// + Count: amount of values
// + Mean: arithmetic mean
// + Std: sample standard deviation (n-1 denominator). Zero for a single value
// + Min, Max: extreme values
// + Q25, Q50, Q75: quartiles with linear interpolation between order statistics
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"25%"`
	Q50   float64 `json:"50%"`
	Q75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// Describe returns the summary of values. An empty sample gives a zero Summary.
// values is not modified.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 || math.IsNaN(std) {
		std = 0
	}

	return Summary{
		Count: len(sorted),
		Mean:  mean,
		Std:   std,
		Min:   floats.Min(sorted),
		Q25:   Quantile(0.25, sorted),
		Q50:   Quantile(0.50, sorted),
		Q75:   Quantile(0.75, sorted),
		Max:   floats.Max(sorted),
	}
}

// Quantile returns the p-quantile of an ascending sorted sample, interpolating linearly
// between the order statistics at floor and ceil of p*(n-1)
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	position := p * float64(n-1)
	lower := int(math.Floor(position))
	upper := int(math.Ceil(position))
	if lower < 0 {
		lower = 0
	}
	if upper > n-1 {
		upper = n - 1
	}

	fraction := position - float64(lower)
	return sorted[lower] + fraction*(sorted[upper]-sorted[lower])
}

// Mean returns the arithmetic mean and false when values is empty
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}
